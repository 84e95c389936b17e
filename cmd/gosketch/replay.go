package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/philipparndt/gosketch/internal/replay"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watch         bool
	snapTolerance float64
)

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Run an event script and report the resulting sketch",
	Long: `Run an event script through a sketch session on the reference kernel and
print the entities, bounds and dimension labels it produced.
With --watch the script is replayed from scratch every time it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVarP(&watch, "watch", "w", false, "replay again when the script changes")
	replayCmd.Flags().Float64Var(&snapTolerance, "snap-tolerance", 0, "endpoint snap radius in pixels")
}

func runReplay(cmd *cobra.Command, args []string) error {
	settings := cfg.Settings()
	if cmd.Flags().Changed("snap-tolerance") {
		if snapTolerance <= 0 {
			return fmt.Errorf("snap tolerance must be positive, got %v", snapTolerance)
		}
		settings.SnapTolerance = snapTolerance
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	script := args[0]
	out := cmd.OutOrStdout()
	if !watch {
		return replayFile(cmd.Context(), out, script, settings, logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchFile(ctx, out, script, settings, logger)
}

func replayFile(ctx context.Context, out io.Writer, script string, settings session.Settings, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(script)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	ctrl, _ := replay.NewSession(session.WithSettings(settings), session.WithLogger(logger))
	defer ctrl.Close()

	if err := replay.RunScript(ctx, ctrl, f); err != nil {
		return fmt.Errorf("%s: %w", script, err)
	}

	fmt.Fprintf(out, "Replay of %s\n", script)
	fmt.Fprintf(out, "Mode: %s\n", ctrl.CurrentMode())
	return ctrl.Scene().Report().Write(out)
}

func watchFile(ctx context.Context, out io.Writer, script string, settings session.Settings, logger *zap.Logger) error {
	w, err := watcher.New(watcher.DefaultDebounce, logger.Named("watcher"))
	if err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	if err := w.Add(script, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	run := func() {
		if err := replayFile(ctx, out, script, settings, logger); err != nil {
			logger.Error("replay failed", zap.Error(err))
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)\n", script)
	}

	run()
	for {
		select {
		case <-changes:
			run()
		case err := <-done:
			return err
		}
	}
}
