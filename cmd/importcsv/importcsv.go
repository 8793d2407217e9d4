// Package importcsv handles the CSV import command.
package importcsv

import (
	"os"

	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/importer"
	"rkaneko/payrecon/internal/models"

	"github.com/spf13/cobra"
)

var (
	inputFile     string
	kindFlag      string
	clearExisting bool
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV file into the record store",
	Long: `Import a CSV file of payments, expenses or masters. Headers are mapped
leniently against the synonym tables; rows failing validation are skipped and
reported, never aborting the whole import.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Data kind: payments, expenses or masters")
	Cmd.Flags().BoolVar(&clearExisting, "clear", false, "Replace the table instead of appending")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("kind")
}

func importFunc(cmd *cobra.Command, args []string) {
	kind, err := models.ParseImportKind(kindFlag)
	if err != nil {
		root.Log.Fatalf("Error: %v", err)
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		root.Log.Fatalf("Error reading %s: %v", inputFile, err)
	}

	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	imp := root.NewImporter(st)
	report, err := imp.ImportCSV(string(data), kind, importer.Options{ClearExisting: clearExisting})
	if err != nil {
		root.Log.Fatalf("Import failed: %v", err)
	}

	root.Log.Infof("%s", report.Message)
	for _, detail := range report.ErrorDetails {
		root.Log.Warnf("  %s", detail)
	}
}
