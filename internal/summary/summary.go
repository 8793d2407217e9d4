// Package summary computes per-table row counts and per-status breakdowns
// over the record store, for the status command and the HTTP summary
// endpoint.
package summary

import (
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

// TableSummary is the breakdown for one table.
type TableSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus,omitempty"`
}

// Summary covers all three tables.
type Summary struct {
	Payments TableSummary `json:"payments"`
	Expenses TableSummary `json:"expenses"`
	Masters  TableSummary `json:"masters"`
}

// Summarize reads all tables and computes their breakdowns.
func Summarize(st store.Store) (Summary, error) {
	var s Summary

	paymentRows, err := st.GetTable(models.TablePayments)
	if err != nil {
		return s, err
	}
	s.Payments = TableSummary{Total: len(paymentRows), ByStatus: map[string]int{}}
	for _, row := range paymentRows {
		s.Payments.ByStatus[string(models.PaymentFromRow(row).Status)]++
	}

	expenseRows, err := st.GetTable(models.TableExpenses)
	if err != nil {
		return s, err
	}
	s.Expenses = TableSummary{Total: len(expenseRows), ByStatus: map[string]int{}}
	for _, row := range expenseRows {
		s.Expenses.ByStatus[string(models.ExpenseFromRow(row).Status)]++
	}

	masterRows, err := st.GetTable(models.TableMasters)
	if err != nil {
		return s, err
	}
	s.Masters = TableSummary{Total: len(masterRows)}

	return s, nil
}
