package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkaneko/payrecon/internal/importer"
	"rkaneko/payrecon/internal/matcher"
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

func TestSampleCSVImports(t *testing.T) {
	for _, kind := range []models.ImportKind{models.KindPayments, models.KindExpenses, models.KindMasters} {
		t.Run(string(kind), func(t *testing.T) {
			st := store.NewMemoryStore()
			report, err := importer.New(st).ImportCSV(CSV(kind), kind, importer.Options{})
			require.NoError(t, err)
			assert.Equal(t, 2, report.ImportedCount)
			assert.Equal(t, 0, report.ErrorCount)
		})
	}
}

func TestSeedReconciles(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, Seed(st))

	// The demo dataset is matching-ready: every expense finds its payment.
	report, err := matcher.NewReconciler(st).Run()
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalExpenses)
	assert.Equal(t, 3, report.FullyMatched)
}
