// Package seed handles the demo-data command.
package seed

import (
	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/sample"

	"github.com/spf13/cobra"
)

// Cmd represents the seed command.
var Cmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small demo dataset into the store (replaces contents)",
	Run:   seedFunc,
}

func seedFunc(cmd *cobra.Command, args []string) {
	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	if err := sample.Seed(st); err != nil {
		root.Log.Fatalf("Seeding failed: %v", err)
	}
	root.Log.Info("Demo dataset loaded")
}
