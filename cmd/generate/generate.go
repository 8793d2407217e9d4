// Package generate handles the master-based expense generation command.
package generate

import (
	"time"

	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/generator"

	"github.com/spf13/cobra"
)

var monthFlag string

// Cmd represents the generate command.
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate expense records from master templates for a month",
	Run:   generateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Target month as YYYY-MM (default: current month)")
}

func generateFunc(cmd *cobra.Command, args []string) {
	month := monthFlag
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	report, err := generator.New(st).GenerateExpenses(month)
	if err != nil {
		root.Log.Fatalf("Generation failed: %v", err)
	}

	root.Log.Infof("%s", report.Message)
	for _, detail := range report.Details {
		root.Log.Debugf("  %s", detail)
	}
}
