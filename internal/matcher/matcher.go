// Package matcher implements record reconciliation: deciding, for each
// expense record, whether a corresponding payment exists. Comparison is
// staged (payee code, then amount, then billing month, with a payee-name
// fallback) and only a full three-stage match mutates record status. The
// two advisory outcomes inform a reviewer without touching state.
package matcher

import (
	"fmt"
	"strings"

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

// Classification labels one reconciliation outcome. The labels are the
// user-facing Japanese strings shown in reports.
type Classification string

const (
	// ClassArrived: a payment matched on code, amount and month. Both
	// records move to 照合済.
	ClassArrived Classification = "到着済み・対応不要"
	// ClassNeedsReview: a related payment exists but amount or month
	// differs, or only the payee name matched. Advisory only.
	ClassNeedsReview Classification = "要確認・金額確認要"
	// ClassNotArrived: no related payment was found at all.
	ClassNotArrived Classification = "未着・催促要"
)

// ExpenseResult is the per-expense outcome.
type ExpenseResult struct {
	ExpenseID         string         `json:"expenseId"`
	Classification    Classification `json:"classification"`
	MatchedPaymentIDs []string       `json:"matchedPaymentIds,omitempty"`
	Explanation       string         `json:"explanation"`
}

// Report aggregates one reconciliation run.
type Report struct {
	Success       bool            `json:"success"`
	TotalExpenses int             `json:"totalExpenses"`
	FullyMatched  int             `json:"fullyMatched"`
	Advisory      int             `json:"advisory"`
	Unmatched     int             `json:"unmatched"`
	Results       []ExpenseResult `json:"results"`
	Message       string          `json:"message"`
}

// Reconcile classifies every expense against the payment set, mutating status
// fields in place on both slices. Expenses are processed in input order, and
// an earlier expense wins a contested payment: every payment consumed by a
// full match is excluded from consideration for later expenses. Payments
// whose status is already 照合済 or 完了 are never candidates, which makes a
// second run over persisted state produce no additional full matches.
func Reconcile(expenses []models.ExpenseRecord, payments []models.PaymentRecord) Report {
	report := Report{TotalExpenses: len(expenses)}
	consumed := make([]bool, len(payments))

	for i := range expenses {
		result := matchExpense(&expenses[i], payments, consumed)
		report.Results = append(report.Results, result)
		switch result.Classification {
		case ClassArrived:
			report.FullyMatched++
		case ClassNeedsReview:
			report.Advisory++
		default:
			report.Unmatched++
		}
	}

	report.Success = true
	report.Message = fmt.Sprintf("reconciled %d expenses: %d matched, %d need review, %d not arrived",
		report.TotalExpenses, report.FullyMatched, report.Advisory, report.Unmatched)
	log.WithFields(logrus.Fields{
		"expenses": report.TotalExpenses,
		"matched":  report.FullyMatched,
		"advisory": report.Advisory,
		"missing":  report.Unmatched,
	}).Info("Reconciliation completed")
	return report
}

func matchExpense(expense *models.ExpenseRecord, payments []models.PaymentRecord, consumed []bool) ExpenseResult {
	result := ExpenseResult{ExpenseID: expense.ID}

	candidates := candidateIndexes(payments, consumed)

	// Stage 1: exact payee-code match.
	var codeMatches []int
	if expense.PayeeCode != "" {
		for _, i := range candidates {
			if payments[i].PayeeCode == expense.PayeeCode {
				codeMatches = append(codeMatches, i)
			}
		}
	}

	if len(codeMatches) > 0 {
		// Stage 2: amount match within tolerance.
		var amountMatches []int
		for _, i := range codeMatches {
			if models.AmountsEqual(payments[i].Amount, expense.Amount) {
				amountMatches = append(amountMatches, i)
			}
		}
		if len(amountMatches) == 0 {
			result.Classification = ClassNeedsReview
			result.Explanation = fmt.Sprintf("payee code %s matched %d payment(s) but none at amount %s",
				expense.PayeeCode, len(codeMatches), expense.Amount)
			return result
		}

		// Stage 3: same billing month.
		var periodMatches []int
		for _, i := range amountMatches {
			if payments[i].PaymentDate.YearMonth() == expense.PaymentDate.YearMonth() {
				periodMatches = append(periodMatches, i)
			}
		}
		if len(periodMatches) == 0 {
			result.Classification = ClassNeedsReview
			result.Explanation = fmt.Sprintf("payee code and amount matched but no payment in month %s",
				expense.PaymentDate.YearMonth())
			return result
		}

		// Full match: every payment surviving stage 3 is consumed and
		// marked, so one expense can claim several payments from the
		// same billing month.
		for _, i := range periodMatches {
			consumed[i] = true
			payments[i].AdvanceStatus(models.StatusMatched)
			result.MatchedPaymentIDs = append(result.MatchedPaymentIDs, payments[i].ID)
		}
		expense.AdvanceStatus(models.StatusMatched)
		result.Classification = ClassArrived
		result.Explanation = fmt.Sprintf("matched %d payment(s) on code, amount and month", len(periodMatches))
		return result
	}

	// Stage 4: payee-name fallback, case-sensitive substring both ways.
	// The fallback scans every payment, consumed or not: a payment already
	// claimed by an earlier expense still tells the reviewer the payee has
	// been billing, which is advisory information, not a match.
	if expense.Payee != "" {
		var nameMatches []string
		for i := range payments {
			p := payments[i].Payee
			if p == "" {
				continue
			}
			if strings.Contains(p, expense.Payee) || strings.Contains(expense.Payee, p) {
				nameMatches = append(nameMatches, payments[i].ID)
			}
		}
		if len(nameMatches) > 0 {
			result.Classification = ClassNeedsReview
			result.Explanation = fmt.Sprintf("no code match; %d payment(s) share payee name %q",
				len(nameMatches), expense.Payee)
			return result
		}
	}

	result.Classification = ClassNotArrived
	result.Explanation = fmt.Sprintf("no payment found for payee %q", expense.Payee)
	return result
}

// candidateIndexes returns payments still eligible for matching: not consumed
// during this run and not already at 照合済 or beyond from an earlier run.
func candidateIndexes(payments []models.PaymentRecord, consumed []bool) []int {
	var out []int
	for i := range payments {
		if consumed[i] {
			continue
		}
		if payments[i].Status == models.StatusMatched || payments[i].Status == models.StatusDone {
			continue
		}
		out = append(out, i)
	}
	return out
}
