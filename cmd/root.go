package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosketch/internal/app"
	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	envFile string
	width   int
	height  int
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "gosketch-raylib [script]",
	Short: "Interactive sketch window",
	Long: `gosketch-raylib opens a window for drawing sketch curves and building solids from them.
An optional event script is replayed when the window opens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		var err error
		if envFile != "" {
			cfg, err = config.LoadFiles(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if debug {
			cfg.Log.Level = "debug"
		}

		logger := logging.Must(logging.Options{
			Level:      cfg.Log.Level,
			FilePath:   cfg.Log.FilePath,
			Production: cfg.Log.Environment == "production",
		})
		defer func() { _ = logger.Sync() }()

		opts := app.Options{
			Width:    width,
			Height:   height,
			Settings: cfg.Settings(),
			Logger:   logger,
		}
		if len(args) == 1 {
			opts.Script = args[0]
		}
		return app.Run(opts)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "env file with GOSKETCH_* settings (default .env)")
	rootCmd.Flags().IntVar(&width, "width", 1400, "window width")
	rootCmd.Flags().IntVar(&height, "height", 900, "window height")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
