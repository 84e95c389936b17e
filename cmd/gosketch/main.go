package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile  string
	logLevel string
	logFile  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gosketch",
	Short: "Replay and inspect interactive sketch sessions",
	Long: `gosketch drives the sketch session controller without a window.
Event scripts are replayed against the reference kernel and a headless top view,
and the resulting sketch is reported.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file with GOSKETCH_* settings (default .env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if envFile != "" {
		cfg, err = config.LoadFiles(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.FilePath = logFile
	}
	return cfg.Validate()
}

func newLogger() *zap.Logger {
	return logging.Must(logging.Options{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.FilePath,
		Production: cfg.Log.Environment == "production",
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
