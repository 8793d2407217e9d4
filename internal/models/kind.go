package models

import "fmt"

// ImportKind selects which table a CSV import or export targets.
type ImportKind string

const (
	KindPayments ImportKind = "payments"
	KindExpenses ImportKind = "expenses"
	KindMasters  ImportKind = "masters"
)

// ParseImportKind validates a raw kind string from a CLI flag or URL path.
func ParseImportKind(raw string) (ImportKind, error) {
	switch ImportKind(raw) {
	case KindPayments, KindExpenses, KindMasters:
		return ImportKind(raw), nil
	}
	return "", fmt.Errorf("unknown data kind %q (want payments, expenses or masters)", raw)
}

// Table returns the store table name for the kind.
func (k ImportKind) Table() string {
	return string(k)
}
