// Package exporter renders store tables back into canonical CSV text. The
// canonical headers are the Japanese labels carried as struct tags; dates
// serialize as YYYY-MM-DD and amounts in plain decimal form, so an exported
// file re-imports field-for-field.
package exporter

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

type paymentCSV struct {
	ID          string          `csv:"ID"`
	Subject     string          `csv:"件名"`
	ProjectName string          `csv:"案件名"`
	Payee       string          `csv:"支払い先"`
	PayeeCode   string          `csv:"支払い先コード"`
	Amount      decimal.Decimal `csv:"金額"`
	PaymentDate models.Date     `csv:"支払日"`
	Status      string          `csv:"状態"`
}

type expenseCSV struct {
	ID          string          `csv:"ID"`
	ProjectName string          `csv:"案件名"`
	Payee       string          `csv:"支払い先"`
	PayeeCode   string          `csv:"支払い先コード"`
	Amount      decimal.Decimal `csv:"金額"`
	PaymentDate models.Date     `csv:"支払日"`
	Status      string          `csv:"状態"`
}

type masterCSV struct {
	ID             string          `csv:"ID"`
	ProjectName    string          `csv:"案件名"`
	Payee          string          `csv:"支払い先"`
	PayeeCode      string          `csv:"支払い先コード"`
	Amount         decimal.Decimal `csv:"金額"`
	PaymentType    string          `csv:"種別"`
	StartDate      models.Date     `csv:"開始日"`
	EndDate        models.Date     `csv:"終了日"`
	BroadcastDays  string          `csv:"放送曜日"`
	BroadcastCount int             `csv:"回数"`
	Notes          string          `csv:"備考"`
}

// Exporter renders tables from a record store.
type Exporter struct {
	store store.Store
}

// New builds an Exporter over the given store.
func New(st store.Store) *Exporter {
	return &Exporter{store: st}
}

// ExportCSV returns the named table as CSV text with canonical headers.
func (e *Exporter) ExportCSV(kind models.ImportKind) (string, error) {
	rows, err := e.store.GetTable(kind.Table())
	if err != nil {
		return "", err
	}

	var out string
	switch kind {
	case models.KindPayments:
		records := make([]paymentCSV, len(rows))
		for i, row := range rows {
			p := models.PaymentFromRow(row)
			records[i] = paymentCSV{
				ID:          p.ID,
				Subject:     p.Subject,
				ProjectName: p.ProjectName,
				Payee:       p.Payee,
				PayeeCode:   p.PayeeCode,
				Amount:      p.Amount,
				PaymentDate: p.PaymentDate,
				Status:      string(p.Status),
			}
		}
		out, err = gocsv.MarshalString(&records)
	case models.KindExpenses:
		records := make([]expenseCSV, len(rows))
		for i, row := range rows {
			x := models.ExpenseFromRow(row)
			records[i] = expenseCSV{
				ID:          x.ID,
				ProjectName: x.ProjectName,
				Payee:       x.Payee,
				PayeeCode:   x.PayeeCode,
				Amount:      x.Amount,
				PaymentDate: x.PaymentDate,
				Status:      string(x.Status),
			}
		}
		out, err = gocsv.MarshalString(&records)
	case models.KindMasters:
		records := make([]masterCSV, len(rows))
		for i, row := range rows {
			m := models.MasterFromRow(row)
			records[i] = masterCSV{
				ID:             m.ID,
				ProjectName:    m.ProjectName,
				Payee:          m.Payee,
				PayeeCode:      m.PayeeCode,
				Amount:         m.Amount,
				PaymentType:    string(m.PaymentType),
				StartDate:      m.StartDate,
				EndDate:        m.EndDate,
				BroadcastDays:  m.BroadcastDays,
				BroadcastCount: m.BroadcastCount,
				Notes:          m.Notes,
			}
		}
		out, err = gocsv.MarshalString(&records)
	default:
		return "", fmt.Errorf("unknown export kind %q", kind)
	}
	if err != nil {
		return "", fmt.Errorf("error marshaling %s to CSV: %w", kind, err)
	}

	log.WithFields(logrus.Fields{"kind": kind, "rows": len(rows)}).Info("Exported table to CSV")
	return out, nil
}
