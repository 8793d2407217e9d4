// Package generator produces period-specific expense records from master
// templates. For a target month it walks the masters table, decides per
// template whether the month is covered and not yet generated, and appends
// the new expenses with a back-reference to the originating master.
package generator

import (
	"fmt"
	"time"

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

// Report is the outcome of one generation run.
type Report struct {
	Success   bool     `json:"success"`
	Month     string   `json:"month"`
	Generated int      `json:"generated"`
	Skipped   int      `json:"skipped"`
	Details   []string `json:"details,omitempty"`
	Message   string   `json:"message"`
}

// Generator creates expense records from master templates.
type Generator struct {
	store store.Store
	now   func() time.Time
}

// New builds a Generator over the given store.
func New(st store.Store) *Generator {
	return &Generator{store: st, now: time.Now}
}

// GenerateExpenses emits expense records for targetMonth (YYYY-MM). A master
// is skipped when the month falls outside its [startDate, endDate] window,
// when an expense for the same project, payee and month already exists, or
// when a 回数ベース master has exhausted its broadcast count.
func (g *Generator) GenerateExpenses(targetMonth string) (Report, error) {
	report := Report{Month: targetMonth}

	first, err := time.Parse("2006-01", targetMonth)
	if err != nil {
		report.Message = fmt.Sprintf("invalid target month %q (want YYYY-MM)", targetMonth)
		return report, fmt.Errorf("%s", report.Message)
	}

	masterRows, err := g.store.GetTable(models.TableMasters)
	if err != nil {
		report.Message = err.Error()
		return report, err
	}
	expenseRows, err := g.store.GetTable(models.TableExpenses)
	if err != nil {
		report.Message = err.Error()
		return report, err
	}

	existing := make(map[string]bool, len(expenseRows))
	generatedPerMaster := make(map[string]int)
	for _, row := range expenseRows {
		e := models.ExpenseFromRow(row)
		existing[dupKey(e.ProjectName, e.Payee, e.PaymentDate.YearMonth())] = true
		if e.MasterID != "" {
			generatedPerMaster[e.MasterID]++
		}
	}

	// Generated expenses fall due at the end of the target month.
	paymentDate := models.DateFromTime(first.AddDate(0, 1, -1))

	var newRows []models.Row
	for _, row := range masterRows {
		m := models.MasterFromRow(row)

		if reason, ok := g.eligible(m, targetMonth, existing, generatedPerMaster); !ok {
			report.Skipped++
			report.Details = append(report.Details, fmt.Sprintf("%s / %s: %s", m.ProjectName, m.Payee, reason))
			continue
		}

		expense := models.ExpenseRecord{
			ID:          g.store.GenerateID(),
			ProjectName: m.ProjectName,
			Payee:       m.Payee,
			PayeeCode:   m.PayeeCode,
			Amount:      m.Amount,
			PaymentDate: paymentDate,
			Status:      models.StatusUnprocessed,
			SourceType:  "master",
			MasterID:    m.ID,
			CreatedAt:   g.now(),
		}
		newRows = append(newRows, expense.ToRow())
		existing[dupKey(m.ProjectName, m.Payee, targetMonth)] = true
		generatedPerMaster[m.ID]++
		report.Generated++
		report.Details = append(report.Details, fmt.Sprintf("%s / %s: generated (ID=%s)", m.ProjectName, m.Payee, expense.ID))
	}

	if err := g.store.AppendRows(models.TableExpenses, newRows); err != nil {
		report.Message = err.Error()
		return report, err
	}

	report.Success = true
	report.Message = fmt.Sprintf("generated %d expenses for %s (%d skipped)",
		report.Generated, targetMonth, report.Skipped)
	log.WithFields(logrus.Fields{
		"month":     targetMonth,
		"generated": report.Generated,
		"skipped":   report.Skipped,
	}).Info("Expense generation completed")
	return report, nil
}

func (g *Generator) eligible(m models.MasterRecord, targetMonth string, existing map[string]bool, generatedPerMaster map[string]int) (string, bool) {
	if m.StartDate.IsEmpty() {
		return "no start date", false
	}
	if targetMonth < m.StartDate.YearMonth() {
		return "before contract start", false
	}
	// An empty end date means an open-ended contract.
	if !m.EndDate.IsEmpty() && targetMonth > m.EndDate.YearMonth() {
		return "after contract end", false
	}
	if existing[dupKey(m.ProjectName, m.Payee, targetMonth)] {
		return "already generated", false
	}

	switch m.PaymentType {
	case models.PaymentTypeOneTime:
		if targetMonth != m.StartDate.YearMonth() {
			return "one-time contract outside its start month", false
		}
	case models.PaymentTypeCountBased:
		if m.BroadcastCount > 0 && generatedPerMaster[m.ID] >= m.BroadcastCount {
			return "broadcast count exhausted", false
		}
	}
	return "", true
}

func dupKey(projectName, payee, month string) string {
	return projectName + "\x00" + payee + "\x00" + month
}
