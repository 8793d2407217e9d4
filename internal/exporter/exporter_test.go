package exporter

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkaneko/payrecon/internal/importer"
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

func TestExportPayments(t *testing.T) {
	st := store.NewMemoryStore()
	p := models.PaymentRecord{
		ID:          "PAY001",
		Subject:     "広告放送料",
		ProjectName: "番組A",
		Payee:       "株式会社サンプル",
		PayeeCode:   "C001",
		Amount:      decimal.RequireFromString("50000"),
		PaymentDate: models.NewDate(2024, 1, 15),
		Status:      models.StatusUnprocessed,
	}
	require.NoError(t, st.SetTable(models.TablePayments, []models.Row{p.ToRow()}))

	out, err := New(st).ExportCSV(models.KindPayments)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,件名,案件名,支払い先,支払い先コード,金額,支払日,状態", lines[0])
	assert.Contains(t, lines[1], "PAY001")
	assert.Contains(t, lines[1], "50000")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[1], "未処理")
}

func TestExportEmptyTable(t *testing.T) {
	st := store.NewMemoryStore()
	out, err := New(st).ExportCSV(models.KindPayments)
	require.NoError(t, err)

	// Headers only.
	assert.Equal(t, "ID,件名,案件名,支払い先,支払い先コード,金額,支払日,状態",
		strings.TrimRight(out, "\n"))
}

func TestExportUnknownKind(t *testing.T) {
	_, err := New(store.NewMemoryStore()).ExportCSV(models.ImportKind("vendors"))
	assert.Error(t, err)
}

func TestExportEmptyDate(t *testing.T) {
	st := store.NewMemoryStore()
	m := models.MasterRecord{
		ID:          "MAS001",
		ProjectName: "番組A",
		Payee:       "局A",
		Amount:      decimal.RequireFromString("80000"),
		PaymentType: models.PaymentTypeMonthly,
		StartDate:   models.NewDate(2024, 1, 1),
	}
	require.NoError(t, st.SetTable(models.TableMasters, []models.Row{m.ToRow()}))

	out, err := New(st).ExportCSV(models.KindMasters)
	require.NoError(t, err)
	// The open-ended contract exports a blank 終了日, not a zero timestamp.
	assert.NotContains(t, out, "0001")
	assert.Contains(t, out, "2024-01-01")
}

func TestExportReimportRoundTrip(t *testing.T) {
	src := store.NewMemoryStore()
	payments := []models.PaymentRecord{
		{
			ID:          "PAY001",
			Subject:     "広告放送料",
			ProjectName: "ラジオCM番組A",
			Payee:       "株式会社サンプル",
			PayeeCode:   "COMP001",
			Amount:      decimal.RequireFromString("50000"),
			PaymentDate: models.NewDate(2024, 1, 15),
			Status:      models.StatusMatched,
		},
		{
			ID:          "PAY002",
			Subject:     "制作費, 追加分",
			ProjectName: "番組B",
			Payee:       "制作会社\"X\"",
			PayeeCode:   "COMP002",
			Amount:      decimal.RequireFromString("120000.5"),
			PaymentDate: models.NewDate(2024, 2, 29),
			Status:      models.StatusUnprocessed,
		},
	}
	rows := make([]models.Row, len(payments))
	for i, p := range payments {
		rows[i] = p.ToRow()
	}
	require.NoError(t, src.SetTable(models.TablePayments, rows))

	out, err := New(src).ExportCSV(models.KindPayments)
	require.NoError(t, err)

	dst := store.NewMemoryStore()
	report, err := importer.New(dst).ImportCSV(out, models.KindPayments, importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, 0, report.ErrorCount)

	got, err := dst.GetTable(models.TablePayments)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i, row := range got {
		want := payments[i]
		back := models.PaymentFromRow(row)
		assert.Equal(t, want.ID, back.ID)
		assert.Equal(t, want.Subject, back.Subject)
		assert.Equal(t, want.ProjectName, back.ProjectName)
		assert.Equal(t, want.Payee, back.Payee)
		assert.Equal(t, want.PayeeCode, back.PayeeCode)
		assert.True(t, want.Amount.Equal(back.Amount))
		assert.True(t, want.PaymentDate.Equal(back.PaymentDate))
		assert.Equal(t, want.Status, back.Status)
	}
}

func TestExportMastersRoundTrip(t *testing.T) {
	src := store.NewMemoryStore()
	m := models.MasterRecord{
		ID:             "MAS001",
		ProjectName:    "番組A",
		Payee:          "局A",
		PayeeCode:      "C001",
		Amount:         decimal.RequireFromString("80000"),
		PaymentType:    models.PaymentTypeCountBased,
		StartDate:      models.NewDate(2024, 1, 1),
		EndDate:        models.NewDate(2024, 6, 30),
		BroadcastDays:  "火水木",
		BroadcastCount: 20,
		Notes:          "5ヶ月契約",
	}
	require.NoError(t, src.SetTable(models.TableMasters, []models.Row{m.ToRow()}))

	out, err := New(src).ExportCSV(models.KindMasters)
	require.NoError(t, err)

	dst := store.NewMemoryStore()
	_, err = importer.New(dst).ImportCSV(out, models.KindMasters, importer.Options{})
	require.NoError(t, err)

	got, err := dst.GetTable(models.TableMasters)
	require.NoError(t, err)
	require.Len(t, got, 1)
	back := models.MasterFromRow(got[0])
	assert.Equal(t, models.PaymentTypeCountBased, back.PaymentType)
	assert.Equal(t, 20, back.BroadcastCount)
	assert.Equal(t, "火水木", back.BroadcastDays)
	assert.Equal(t, "5ヶ月契約", back.Notes)
	assert.True(t, m.EndDate.Equal(back.EndDate))
}
