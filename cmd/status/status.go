// Package status handles the store summary command.
package status

import (
	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/summary"

	"github.com/spf13/cobra"
)

// Cmd represents the status command.
var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-table row counts and status breakdowns",
	Run:   statusFunc,
}

func statusFunc(cmd *cobra.Command, args []string) {
	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	sum, err := summary.Summarize(st)
	if err != nil {
		root.Log.Fatalf("Summary failed: %v", err)
	}

	root.Log.Infof("payments: %d rows", sum.Payments.Total)
	for status, n := range sum.Payments.ByStatus {
		root.Log.Infof("  %s: %d", status, n)
	}
	root.Log.Infof("expenses: %d rows", sum.Expenses.Total)
	for status, n := range sum.Expenses.ByStatus {
		root.Log.Infof("  %s: %d", status, n)
	}
	root.Log.Infof("masters: %d rows", sum.Masters.Total)
}
