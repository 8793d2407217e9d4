package matcher

import (
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

// Reconciler runs the matching engine against the record store: it loads both
// tables, reconciles, and persists the status changes. The store serializes
// mutating calls, so two overlapping reconciliations cannot interleave their
// writes.
type Reconciler struct {
	store store.Store
}

// NewReconciler builds a Reconciler over the given store.
func NewReconciler(st store.Store) *Reconciler {
	return &Reconciler{store: st}
}

// Run loads expenses and payments, reconciles them and writes both tables
// back. A store failure propagates unchanged; the engine itself cannot fail.
func (r *Reconciler) Run() (Report, error) {
	expenseRows, err := r.store.GetTable(models.TableExpenses)
	if err != nil {
		return Report{Message: err.Error()}, err
	}
	paymentRows, err := r.store.GetTable(models.TablePayments)
	if err != nil {
		return Report{Message: err.Error()}, err
	}

	expenses := make([]models.ExpenseRecord, len(expenseRows))
	for i, row := range expenseRows {
		expenses[i] = models.ExpenseFromRow(row)
	}
	payments := make([]models.PaymentRecord, len(paymentRows))
	for i, row := range paymentRows {
		payments[i] = models.PaymentFromRow(row)
	}

	report := Reconcile(expenses, payments)

	for i := range expenses {
		expenseRows[i] = expenses[i].ToRow()
	}
	for i := range payments {
		paymentRows[i] = payments[i].ToRow()
	}
	if err := r.store.SetTable(models.TableExpenses, expenseRows); err != nil {
		return Report{Message: err.Error()}, err
	}
	if err := r.store.SetTable(models.TablePayments, paymentRows); err != nil {
		return Report{Message: err.Error()}, err
	}
	return report, nil
}
