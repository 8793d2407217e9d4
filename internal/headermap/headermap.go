// Package headermap maps arbitrary incoming CSV header rows onto canonical
// field names. Matching proceeds per field through three stages (exact
// synonym, case-insensitive substring, keyword fallback) and the first hit
// wins. A column claimed by one field is never reassigned to a later one.
package headermap

import (
	"strings"

	"rkaneko/payrecon/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CanonicalFields returns the full canonical field list for an import kind,
// in CSV column order.
func CanonicalFields(kind models.ImportKind) []string {
	switch kind {
	case models.KindPayments:
		return []string{FieldID, FieldSubject, FieldProjectName, FieldPayee, FieldPayeeCode, FieldAmount, FieldPaymentDate, FieldStatus}
	case models.KindExpenses:
		return []string{FieldID, FieldProjectName, FieldPayee, FieldPayeeCode, FieldAmount, FieldPaymentDate, FieldStatus}
	case models.KindMasters:
		return []string{FieldID, FieldProjectName, FieldPayee, FieldPayeeCode, FieldAmount, FieldPaymentType, FieldStartDate, FieldEndDate, FieldBroadcastDays, FieldBroadcastCount, FieldNotes}
	}
	return nil
}

// RequiredFields returns the fields whose absence from the header row aborts
// an import of the given kind.
func RequiredFields(kind models.ImportKind) []string {
	switch kind {
	case models.KindPayments, models.KindExpenses:
		return []string{FieldProjectName, FieldPayee, FieldAmount, FieldPaymentDate}
	case models.KindMasters:
		// paymentType defaults to 月額固定 when absent, so only the three
		// identifying fields are hard requirements.
		return []string{FieldProjectName, FieldPayee, FieldAmount}
	}
	return nil
}

// Mapper resolves header rows against synonym and keyword tables. The tables
// are fixed at construction; there is no runtime mutation.
type Mapper struct {
	synonyms map[string][]string
	keywords map[string][]string
}

// NewMapper builds a Mapper with the built-in tables.
func NewMapper() *Mapper {
	return &Mapper{synonyms: defaultSynonyms, keywords: defaultKeywords}
}

// NewMapperWithTables builds a Mapper with explicit tables, typically merged
// from a YAML override file via LoadSynonymFile.
func NewMapperWithTables(synonyms, keywords map[string][]string) *Mapper {
	return &Mapper{synonyms: synonyms, keywords: keywords}
}

// Mapping is the result of resolving a header row: column index per canonical
// field, plus the fields that could not be mapped at all.
type Mapping struct {
	Columns map[string]int
	Missing []string
}

// Column returns the mapped column index for a field, or -1.
func (m Mapping) Column(field string) int {
	if i, ok := m.Columns[field]; ok {
		return i
	}
	return -1
}

// Has reports whether a field was mapped.
func (m Mapping) Has(field string) bool {
	_, ok := m.Columns[field]
	return ok
}

// MapHeaders resolves each canonical field against the header row. Fields are
// processed in the given order; once a field claims a column index, later
// fields skip that index even if they would match it.
func (m *Mapper) MapHeaders(headers []string, canonicalFields []string) Mapping {
	result := Mapping{Columns: make(map[string]int, len(canonicalFields))}
	claimed := make(map[int]bool, len(headers))

	for _, field := range canonicalFields {
		idx := m.matchField(headers, field, claimed)
		if idx < 0 {
			result.Missing = append(result.Missing, field)
			continue
		}
		result.Columns[field] = idx
		claimed[idx] = true
		log.WithFields(logrus.Fields{
			"field":  field,
			"header": headers[idx],
			"column": idx,
		}).Debug("Header mapped")
	}
	return result
}

func (m *Mapper) matchField(headers []string, field string, claimed map[int]bool) int {
	names := m.synonyms[field]
	if len(names) == 0 {
		names = []string{field}
	}

	// Stage 1: exact match against the synonym table.
	for i, h := range headers {
		if claimed[i] {
			continue
		}
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}

	// Stage 2: case-insensitive substring either direction, plus
	// whitespace-stripped equality. Blank headers match nothing.
	for i, h := range headers {
		if claimed[i] || strings.TrimSpace(h) == "" {
			continue
		}
		hl := strings.ToLower(h)
		for _, name := range names {
			nl := strings.ToLower(name)
			if strings.Contains(hl, nl) || strings.Contains(nl, hl) {
				return i
			}
			if stripSpaces(hl) == stripSpaces(nl) {
				return i
			}
		}
	}

	// Stage 3: keyword fallback.
	for i, h := range headers {
		if claimed[i] || strings.TrimSpace(h) == "" {
			continue
		}
		hl := strings.ToLower(h)
		for _, kw := range m.keywords[field] {
			kl := strings.ToLower(kw)
			if strings.Contains(hl, kl) || strings.Contains(kl, hl) {
				return i
			}
		}
	}

	return -1
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '　' {
			return -1
		}
		return r
	}, s)
}
