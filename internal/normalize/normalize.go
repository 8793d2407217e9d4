// Package normalize cleans raw cell and CSV text into canonical scalar values:
// trimmed strings, decimal amounts and calendar dates. Every function here is
// total: malformed input yields the documented sentinel (empty string, zero
// amount, empty date), never an error. Materiality is the importer's call.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"rkaneko/payrecon/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// specialSpaces maps Unicode space variants that show up in spreadsheet
// exports onto a plain ASCII space.
var specialSpaces = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ", // en space
	" ", " ", // em space
	" ", " ", // line separator
	" ", " ", // paragraph separator
	"　", " ", // ideographic space
)

// CleanString normalizes raw text: trims, strips one layer of wrapping double
// quotes, unescapes doubled quotes, collapses special space characters to
// ASCII space and trims again.
func CleanString(v string) string {
	s := strings.TrimSpace(v)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, `""`, `"`)
	s = specialSpaces.Replace(s)
	return strings.TrimSpace(s)
}

// CleanCell renders a store cell as normalized text. Empty cells yield "".
func CleanCell(c models.CellValue) string {
	if c.IsEmpty() {
		return ""
	}
	return CleanString(c.AsText())
}

var amountChars = regexp.MustCompile(`[^0-9.\-]`)

// CleanAmount parses an amount out of arbitrary text, stripping currency
// symbols, thousands separators and other decoration first. Unparsable input
// yields zero; callers that did not expect a zero should surface the raw
// value in their diagnostics, since zero is ambiguous between "explicitly
// zero" and "unparsable".
func CleanAmount(v string) decimal.Decimal {
	s := strings.TrimSpace(v)
	if s == "" {
		return decimal.Zero
	}
	s = amountChars.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.WithField("value", v).Debug("amount did not parse, normalizing to zero")
		return decimal.Zero
	}
	return d
}

// AmountFromCell extracts a decimal amount from a store cell, reusing the
// numeric value when the store already holds one.
func AmountFromCell(c models.CellValue) decimal.Decimal {
	switch c.Kind {
	case models.CellNumber:
		return c.Number
	case models.CellText:
		return CleanAmount(c.Text)
	default:
		return decimal.Zero
	}
}

const (
	minYear = 1900
	maxYear = 2100
)

// generalDateFormats are tried, in order, for input that is neither ISO nor
// slash-separated. Mirrors the shapes seen in exported spreadsheet data.
var generalDateFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006.01.02",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"20060102",
	"2006年1月2日",
}

// NormalizeDate parses heterogeneous date text into a canonical date.
// Strict ISO input passes through; slash-separated input (including 2-digit
// years) is reassembled and validated; anything else goes through a general
// format sweep. All failure paths return the empty sentinel, never today's
// date and never an error.
func NormalizeDate(v string) models.Date {
	s := CleanString(v)
	if s == "" {
		return models.EmptyDate()
	}

	if t, err := time.Parse(models.DateLayoutISO, s); err == nil {
		return dateInRange(t)
	}

	if d := parseSlashDate(s); !d.IsEmpty() {
		return d
	}

	for _, format := range generalDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return dateInRange(t)
		}
	}

	log.WithField("value", v).Debug("date did not parse, normalizing to empty")
	return models.EmptyDate()
}

// DateFromCell extracts a canonical date from a store cell.
func DateFromCell(c models.CellValue) models.Date {
	switch c.Kind {
	case models.CellDate:
		return c.Date
	case models.CellText:
		return NormalizeDate(c.Text)
	default:
		return models.EmptyDate()
	}
}

// parseSlashDate handles YYYY/MM/DD and YY/MM/DD, zero-padding month and day.
// 2-digit years are completed with the current century.
func parseSlashDate(s string) models.Date {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return models.EmptyDate()
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.EmptyDate()
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.EmptyDate()
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return models.EmptyDate()
	}

	if year < 100 {
		century := time.Now().Year() / 100 * 100
		year += century
	}
	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 || day > 31 {
		return models.EmptyDate()
	}
	return models.NewDate(year, time.Month(month), day)
}

func dateInRange(t time.Time) models.Date {
	if t.Year() < minYear || t.Year() > maxYear {
		return models.EmptyDate()
	}
	return models.DateFromTime(t)
}

// YearMonth derives the YYYY-MM period key from a date, or "" when the date
// is empty.
func YearMonth(d models.Date) string {
	return d.YearMonth()
}
