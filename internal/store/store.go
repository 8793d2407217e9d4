// Package store provides the persistent record store behind imports and
// reconciliation. The contract is whole-table reads and writes over
// positional rows, and every implementation serializes mutating calls: the
// matching engine's mark-payment-consumed step is not safe under interleaved
// writers.
package store

import (
	"github.com/sirupsen/logrus"

	"rkaneko/payrecon/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Store is the collaborator contract required by the importer, matcher and
// generator.
type Store interface {
	// GetTable returns all rows of the named table.
	GetTable(name string) ([]models.Row, error)

	// SetTable replaces the named table's contents atomically.
	SetTable(name string, rows []models.Row) error

	// AppendRows adds rows to the end of the named table.
	AppendRows(name string, rows []models.Row) error

	// ClearTable removes all rows from the named table.
	ClearTable(name string) error

	// GenerateID returns a new unique record identifier. IDs are never
	// reused.
	GenerateID() string
}
