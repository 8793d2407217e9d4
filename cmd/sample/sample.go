// Package sample handles the sample CSV generation command.
package sample

import (
	"fmt"
	"os"

	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/sample"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	kindFlag   string
)

// Cmd represents the sample command.
var Cmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample CSV file with canonical headers",
	Run:   sampleFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (stdout when omitted)")
	Cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Data kind: payments, expenses or masters")
	_ = Cmd.MarkFlagRequired("kind")
}

func sampleFunc(cmd *cobra.Command, args []string) {
	kind, err := models.ParseImportKind(kindFlag)
	if err != nil {
		root.Log.Fatalf("Error: %v", err)
	}

	csvText := sample.CSV(kind)
	if outputFile == "" {
		fmt.Print(csvText)
		return
	}
	if err := os.WriteFile(outputFile, []byte(csvText), 0644); err != nil {
		root.Log.Fatalf("Error writing %s: %v", outputFile, err)
	}
	root.Log.Infof("Wrote sample %s CSV to %s", kind, outputFile)
}
