package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

func TestSummarizeEmpty(t *testing.T) {
	s, err := Summarize(store.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Payments.Total)
	assert.Equal(t, 0, s.Expenses.Total)
	assert.Equal(t, 0, s.Masters.Total)
}

func TestSummarizeCountsByStatus(t *testing.T) {
	st := store.NewMemoryStore()

	mk := func(id string, status models.Status) models.Row {
		return models.PaymentRecord{
			ID:          id,
			ProjectName: "番組",
			Payee:       "局",
			Amount:      decimal.RequireFromString("100"),
			PaymentDate: models.NewDate(2024, 1, 15),
			Status:      status,
		}.ToRow()
	}
	require.NoError(t, st.SetTable(models.TablePayments, []models.Row{
		mk("P1", models.StatusUnprocessed),
		mk("P2", models.StatusUnprocessed),
		mk("P3", models.StatusMatched),
	}))

	s, err := Summarize(st)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Payments.Total)
	assert.Equal(t, 2, s.Payments.ByStatus[string(models.StatusUnprocessed)])
	assert.Equal(t, 1, s.Payments.ByStatus[string(models.StatusMatched)])
}
