// Package exportcsv handles the CSV export command.
package exportcsv

import (
	"fmt"
	"os"

	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/exporter"
	"rkaneko/payrecon/internal/models"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	kindFlag   string
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a table from the record store as CSV",
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (stdout when omitted)")
	Cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Data kind: payments, expenses or masters")
	_ = Cmd.MarkFlagRequired("kind")
}

func exportFunc(cmd *cobra.Command, args []string) {
	kind, err := models.ParseImportKind(kindFlag)
	if err != nil {
		root.Log.Fatalf("Error: %v", err)
	}

	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	csvText, err := exporter.New(st).ExportCSV(kind)
	if err != nil {
		root.Log.Fatalf("Export failed: %v", err)
	}

	if outputFile == "" {
		fmt.Print(csvText)
		return
	}
	if err := os.WriteFile(outputFile, []byte(csvText), 0644); err != nil {
		root.Log.Fatalf("Error writing %s: %v", outputFile, err)
	}
	root.Log.Infof("Exported %s to %s", kind, outputFile)
}
