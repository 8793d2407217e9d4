// Package root contains the root command for the application.
package root

import (
	"rkaneko/payrecon/internal/config"
	"rkaneko/payrecon/internal/exporter"
	"rkaneko/payrecon/internal/generator"
	"rkaneko/payrecon/internal/headermap"
	"rkaneko/payrecon/internal/importer"
	"rkaneko/payrecon/internal/matcher"
	"rkaneko/payrecon/internal/normalize"
	"rkaneko/payrecon/internal/server"
	"rkaneko/payrecon/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	StorePath   string
	SynonymFile string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg holds the resolved application configuration.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "payrecon",
		Short: "A CLI tool to import, reconcile and export radio-station payment records.",
		Long: `payrecon manages radio-station payment and expense records: CSV import
with lenient header mapping, staged payment/expense reconciliation, master
based expense generation and CSV export.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to payrecon!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg
			if SharedFlags.StorePath == "" {
				SharedFlags.StorePath = cfg.Store.Path
			}
			if SharedFlags.SynonymFile == "" {
				SharedFlags.SynonymFile = cfg.Import.SynonymFile
			}

			// Hand the configured logger to every package.
			normalize.SetLogger(Log)
			headermap.SetLogger(Log)
			importer.SetLogger(Log)
			matcher.SetLogger(Log)
			generator.SetLogger(Log)
			exporter.SetLogger(Log)
			store.SetLogger(Log)
			server.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.StorePath, "store", "s", "", "Path to the SQLite store (default from config)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.SynonymFile, "synonyms", "", "Optional YAML file extending the header synonym tables")
}

// OpenStore opens the configured SQLite store, exiting on failure.
func OpenStore() *store.SQLiteStore {
	st, err := store.OpenSQLite(SharedFlags.StorePath)
	if err != nil {
		Log.Fatalf("Error opening store %s: %v", SharedFlags.StorePath, err)
	}
	return st
}

// NewImporter builds an importer with any configured synonym overrides.
func NewImporter(st store.Store) *importer.Importer {
	synonyms, keywords, err := headermap.LoadSynonymFile(SharedFlags.SynonymFile)
	if err != nil {
		Log.Fatalf("Error loading synonym file: %v", err)
	}
	return importer.NewWithMapper(st, headermap.NewMapperWithTables(synonyms, keywords))
}
