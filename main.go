package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rkaneko/payrecon/cmd/exportcsv"
	"rkaneko/payrecon/cmd/generate"
	"rkaneko/payrecon/cmd/importcsv"
	"rkaneko/payrecon/cmd/reconcile"
	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/cmd/sample"
	"rkaneko/payrecon/cmd/seed"
	"rkaneko/payrecon/cmd/serve"
	"rkaneko/payrecon/cmd/status"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment and set the global log level before any logging
	// happens, then register the commands.
	loadEnvSilently()
	logrus.SetLevel(resolveLogLevel())

	root.Init()
	root.Cmd.AddCommand(importcsv.Cmd)
	root.Cmd.AddCommand(reconcile.Cmd)
	root.Cmd.AddCommand(exportcsv.Cmd)
	root.Cmd.AddCommand(generate.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(sample.Cmd)
	root.Cmd.AddCommand(status.Cmd)
	root.Cmd.AddCommand(seed.Cmd)
}

// loadEnvSilently loads environment variables without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func resolveLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
