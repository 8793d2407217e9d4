package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/reconerror"
)

// columnSpec describes one stored column: its SQL name and the cell variant
// it round-trips through. Amounts are stored as TEXT in decimal form so no
// precision is lost; dates are stored as ISO text.
type columnSpec struct {
	name string
	kind models.CellKind
}

var tableSpecs = map[string][]columnSpec{
	models.TablePayments: {
		{"id", models.CellText},
		{"subject", models.CellText},
		{"project_name", models.CellText},
		{"payee", models.CellText},
		{"payee_code", models.CellText},
		{"amount", models.CellNumber},
		{"payment_date", models.CellDate},
		{"status", models.CellText},
		{"created_at", models.CellDate},
	},
	models.TableExpenses: {
		{"id", models.CellText},
		{"project_name", models.CellText},
		{"payee", models.CellText},
		{"payee_code", models.CellText},
		{"amount", models.CellNumber},
		{"payment_date", models.CellDate},
		{"status", models.CellText},
		{"source_type", models.CellText},
		{"master_id", models.CellText},
		{"created_at", models.CellDate},
	},
	models.TableMasters: {
		{"id", models.CellText},
		{"project_name", models.CellText},
		{"payee", models.CellText},
		{"payee_code", models.CellText},
		{"amount", models.CellNumber},
		{"payment_type", models.CellText},
		{"start_date", models.CellDate},
		{"end_date", models.CellDate},
		{"broadcast_days", models.CellText},
		{"broadcast_count", models.CellNumber},
		{"notes", models.CellText},
	},
}

// migrations returns the schema statements, one statement per string.
func migrations() []string {
	stmts := make([]string, 0, len(tableSpecs))
	for _, table := range []string{models.TablePayments, models.TableExpenses, models.TableMasters} {
		cols := make([]string, 0, len(tableSpecs[table]))
		for _, c := range tableSpecs[table] {
			cols = append(cols, fmt.Sprintf("%s TEXT", c.name))
		}
		stmts = append(stmts, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (rowpos INTEGER PRIMARY KEY AUTOINCREMENT, %s)",
			table, strings.Join(cols, ", ")))
	}
	return stmts
}

// SQLiteStore persists record tables in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if necessary creates) the database at path and runs
// the schema migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &reconerror.StoreError{Op: "open", Table: path, Err: err}
	}
	// The store contract requires mutating calls to be serialized; a single
	// connection makes SQLite do that for us.
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, &reconerror.StoreError{Op: "migrate", Table: path, Err: err}
		}
	}
	log.WithField("path", path).Debug("SQLite store opened")
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetTable returns all rows of the named table in insertion order.
func (s *SQLiteStore) GetTable(name string) ([]models.Row, error) {
	spec, err := specFor(name)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowpos", columnList(spec), name)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, &reconerror.StoreError{Op: "get", Table: name, Err: err}
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.WithError(err).Warn("Failed to close result set")
		}
	}()

	var result []models.Row
	for rows.Next() {
		values := make([]sql.NullString, len(spec))
		ptrs := make([]any, len(spec))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &reconerror.StoreError{Op: "scan", Table: name, Err: err}
		}
		row := make(models.Row, len(spec))
		for i, v := range values {
			row[i] = cellFromStored(spec[i].kind, v)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &reconerror.StoreError{Op: "get", Table: name, Err: err}
	}
	return result, nil
}

// SetTable replaces the table's contents in one transaction.
func (s *SQLiteStore) SetTable(name string, newRows []models.Row) error {
	spec, err := specFor(name)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &reconerror.StoreError{Op: "set", Table: name, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", name)); err != nil {
		return &reconerror.StoreError{Op: "set", Table: name, Err: err}
	}
	if err := insertRows(tx, name, spec, newRows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &reconerror.StoreError{Op: "set", Table: name, Err: err}
	}
	return nil
}

// AppendRows adds rows to the end of the table in one transaction.
func (s *SQLiteStore) AppendRows(name string, newRows []models.Row) error {
	spec, err := specFor(name)
	if err != nil {
		return err
	}
	if len(newRows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &reconerror.StoreError{Op: "append", Table: name, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRows(tx, name, spec, newRows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &reconerror.StoreError{Op: "append", Table: name, Err: err}
	}
	return nil
}

// ClearTable removes every row of the named table.
func (s *SQLiteStore) ClearTable(name string) error {
	if _, err := specFor(name); err != nil {
		return err
	}
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", name)); err != nil {
		return &reconerror.StoreError{Op: "clear", Table: name, Err: err}
	}
	return nil
}

// GenerateID returns a random UUID string.
func (s *SQLiteStore) GenerateID() string {
	return uuid.NewString()
}

func insertRows(tx *sql.Tx, name string, spec []columnSpec, newRows []models.Row) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(spec)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, columnList(spec), placeholders))
	if err != nil {
		return &reconerror.StoreError{Op: "insert", Table: name, Err: err}
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.WithError(err).Warn("Failed to close statement")
		}
	}()

	for _, row := range newRows {
		args := make([]any, len(spec))
		for i := range spec {
			cell := row.Cell(i)
			if cell.IsEmpty() {
				args[i] = nil
			} else {
				args[i] = cell.AsText()
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return &reconerror.StoreError{Op: "insert", Table: name, Err: err}
		}
	}
	return nil
}

func specFor(name string) ([]columnSpec, error) {
	spec, ok := tableSpecs[name]
	if !ok {
		return nil, &reconerror.StoreError{Op: "resolve", Table: name,
			Err: fmt.Errorf("unknown table")}
	}
	return spec, nil
}

func columnList(spec []columnSpec) string {
	names := make([]string, len(spec))
	for i, c := range spec {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

// cellFromStored rebuilds a typed cell from its stored text form according to
// the column's declared kind.
func cellFromStored(kind models.CellKind, v sql.NullString) models.CellValue {
	if !v.Valid || v.String == "" {
		return models.EmptyCell()
	}
	switch kind {
	case models.CellNumber:
		d, err := decimal.NewFromString(v.String)
		if err != nil {
			return models.TextCell(v.String)
		}
		return models.NumberCell(d)
	case models.CellDate:
		var date models.Date
		_ = date.UnmarshalText([]byte(v.String))
		if date.IsEmpty() {
			return models.TextCell(v.String)
		}
		return models.DateCell(date)
	default:
		return models.TextCell(v.String)
	}
}
