package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkaneko/payrecon/internal/models"
)

// openStores builds one of each store implementation so the contract tests
// run against both.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "payrecon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func sampleRow(id string) models.Row {
	return models.PaymentRecord{
		ID:          id,
		Subject:     "広告放送料",
		ProjectName: "番組A",
		Payee:       "局A",
		PayeeCode:   "C001",
		Amount:      decimal.RequireFromString("50000.5"),
		PaymentDate: models.NewDate(2024, 1, 15),
		Status:      models.StatusUnprocessed,
	}.ToRow()
}

func TestStoreEmptyTable(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			rows, err := st.GetTable(models.TablePayments)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestStoreSetAndGet(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SetTable(models.TablePayments, []models.Row{sampleRow("PAY1")}))

			rows, err := st.GetTable(models.TablePayments)
			require.NoError(t, err)
			require.Len(t, rows, 1)

			p := models.PaymentFromRow(rows[0])
			assert.Equal(t, "PAY1", p.ID)
			assert.Equal(t, "局A", p.Payee)
			assert.True(t, p.Amount.Equal(decimal.RequireFromString("50000.5")))
			assert.Equal(t, "2024-01-15", p.PaymentDate.String())
		})
	}
}

func TestStoreSetReplaces(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SetTable(models.TablePayments, []models.Row{sampleRow("PAY1"), sampleRow("PAY2")}))
			require.NoError(t, st.SetTable(models.TablePayments, []models.Row{sampleRow("PAY3")}))

			rows, err := st.GetTable(models.TablePayments)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "PAY3", models.PaymentFromRow(rows[0]).ID)
		})
	}
}

func TestStoreAppendPreservesOrder(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				id := fmt.Sprintf("PAY%d", i)
				require.NoError(t, st.AppendRows(models.TablePayments, []models.Row{sampleRow(id)}))
			}

			rows, err := st.GetTable(models.TablePayments)
			require.NoError(t, err)
			require.Len(t, rows, 5)
			for i, row := range rows {
				assert.Equal(t, fmt.Sprintf("PAY%d", i), models.PaymentFromRow(row).ID)
			}
		})
	}
}

func TestStoreAppendEmpty(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.AppendRows(models.TablePayments, nil))
			rows, err := st.GetTable(models.TablePayments)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestStoreClear(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.AppendRows(models.TablePayments, []models.Row{sampleRow("PAY1")}))
			require.NoError(t, st.ClearTable(models.TablePayments))

			rows, err := st.GetTable(models.TablePayments)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestStoreTablesIndependent(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.AppendRows(models.TablePayments, []models.Row{sampleRow("PAY1")}))

			rows, err := st.GetTable(models.TableExpenses)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestStoreGenerateID(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			seen := make(map[string]bool)
			for i := 0; i < 100; i++ {
				id := st.GenerateID()
				assert.NotEmpty(t, id)
				assert.False(t, seen[id])
				seen[id] = true
			}
		})
	}
}

func TestStoreEmptyCellsRoundTrip(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			// Expense with no payee code, no master reference, no created-at.
			e := models.ExpenseRecord{
				ID:          "EXP1",
				ProjectName: "番組A",
				Payee:       "局A",
				Amount:      decimal.RequireFromString("50000"),
				PaymentDate: models.NewDate(2024, 1, 31),
				Status:      models.StatusUnprocessed,
				SourceType:  "import",
			}
			require.NoError(t, st.AppendRows(models.TableExpenses, []models.Row{e.ToRow()}))

			rows, err := st.GetTable(models.TableExpenses)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.True(t, rows[0].Cell(models.ExpenseColPayeeCode).IsEmpty())
			assert.True(t, rows[0].Cell(models.ExpenseColMasterID).IsEmpty())

			back := models.ExpenseFromRow(rows[0])
			assert.Empty(t, back.PayeeCode)
			assert.Empty(t, back.MasterID)
		})
	}
}

func TestSQLiteUnknownTable(t *testing.T) {
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "payrecon.db"))
	require.NoError(t, err)
	defer func() { _ = sq.Close() }()

	_, err = sq.GetTable("nope")
	assert.Error(t, err)
	assert.Error(t, sq.SetTable("nope", nil))
	assert.Error(t, sq.ClearTable("nope"))
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payrecon.db")

	sq, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, sq.AppendRows(models.TablePayments, []models.Row{sampleRow("PAY1")}))
	require.NoError(t, sq.Close())

	sq, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = sq.Close() }()

	rows, err := sq.GetTable(models.TablePayments)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PAY1", models.PaymentFromRow(rows[0]).ID)
}

func TestMemoryStoreCopiesRows(t *testing.T) {
	st := NewMemoryStore()
	row := sampleRow("PAY1")
	require.NoError(t, st.SetTable(models.TablePayments, []models.Row{row}))

	// Mutating the caller's slice must not affect stored data.
	row[models.PaymentColID] = models.TextCell("MUTATED")

	rows, err := st.GetTable(models.TablePayments)
	require.NoError(t, err)
	assert.Equal(t, "PAY1", models.PaymentFromRow(rows[0]).ID)

	// And mutating a returned row must not affect the next read.
	rows[0][models.PaymentColID] = models.TextCell("MUTATED")
	rows, err = st.GetTable(models.TablePayments)
	require.NoError(t, err)
	assert.Equal(t, "PAY1", models.PaymentFromRow(rows[0]).ID)
}
