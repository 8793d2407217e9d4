package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CellKind tags the variants of CellValue.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// CellValue is the tagged union used at the store boundary. Spreadsheet-style
// storage hands back strings, numbers and dates interchangeably for the same
// column; carrying the tag lets the normalizer switch on it explicitly instead
// of duck-typing.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Date   Date
}

// Row is one record as stored, a positional sequence of cells.
type Row []CellValue

// EmptyCell returns the empty variant.
func EmptyCell() CellValue {
	return CellValue{Kind: CellEmpty}
}

// TextCell wraps a string value.
func TextCell(s string) CellValue {
	if s == "" {
		return EmptyCell()
	}
	return CellValue{Kind: CellText, Text: s}
}

// NumberCell wraps a decimal value.
func NumberCell(d decimal.Decimal) CellValue {
	return CellValue{Kind: CellNumber, Number: d}
}

// DateCell wraps a date value. Empty dates collapse to the empty variant.
func DateCell(d Date) CellValue {
	if d.IsEmpty() {
		return EmptyCell()
	}
	return CellValue{Kind: CellDate, Date: d}
}

// IsEmpty reports whether the cell holds no value.
func (c CellValue) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// AsText renders the cell as a string: numbers in decimal form, dates in ISO
// form, empty as "".
func (c CellValue) AsText() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Number.String()
	case CellDate:
		return c.Date.String()
	default:
		return ""
	}
}

// Cell returns the positional cell, or the empty variant past the end of the
// row. Short rows from partially filled sheets are routine, not errors.
func (r Row) Cell(i int) CellValue {
	if i < 0 || i >= len(r) {
		return EmptyCell()
	}
	return r[i]
}

// CellFromTime wraps a timestamp-bearing cell (createdAt columns).
func CellFromTime(t time.Time) CellValue {
	return DateCell(DateFromTime(t))
}
