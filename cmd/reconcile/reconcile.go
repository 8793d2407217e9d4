// Package reconcile handles the reconciliation command.
package reconcile

import (
	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/matcher"

	"github.com/spf13/cobra"
)

var verbose bool

// Cmd represents the reconcile command.
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile expense records against payment records",
	Long: `Reconcile classifies every expense record against the payment table by
payee code, amount and billing month. Full matches move both records to
照合済; the advisory outcomes only inform the reviewer.`,
	Run: reconcileFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the per-expense classification")
}

func reconcileFunc(cmd *cobra.Command, args []string) {
	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	report, err := matcher.NewReconciler(st).Run()
	if err != nil {
		root.Log.Fatalf("Reconciliation failed: %v", err)
	}

	root.Log.Infof("%s", report.Message)
	if verbose {
		for _, r := range report.Results {
			root.Log.Infof("  %s: %s (%s)", r.ExpenseID, r.Classification, r.Explanation)
		}
	}
}
