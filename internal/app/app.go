// Package app is the raylib window for interactive sketching. The window
// renders the session's display list and feeds it mouse and key events.
package app

import (
	"context"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/replay"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

// Options configures the window
type Options struct {
	Width    int
	Height   int
	Settings session.Settings
	Logger   *zap.Logger
	Script   string // Replayed once the window is open
}

type App struct {
	Kernel      *memkernel.Kernel
	View        *viewer.Headless
	Session     *session.Controller
	Interaction InteractionState
	UI          UIState

	logger *zap.Logger
}

// New creates the application state without opening a window
func New(opts Options) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1400, 900
	}
	if opts.Settings == (session.Settings{}) {
		opts.Settings = session.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	k := memkernel.New()
	view := viewer.NewHeadless(k, opts.Width, opts.Height)
	ctrl := session.NewController(session.Deps{
		Viewport: view,
		Display:  view,
		Zoomer:   view,
		Kernel:   k,
	}, session.WithSettings(opts.Settings), session.WithLogger(logger.Named("session")))

	return &App{
		Kernel:  k,
		View:    view,
		Session: ctrl,
		UI:      UIState{showHelp: true},
		logger:  logger,
	}
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	app := New(opts)
	w, h := app.View.Size()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(w), int32(h), "gosketch")
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyNull) // Escape cancels the current mode
	defer rl.CloseWindow()

	app.UI.font = rl.GetFontDefault()

	if opts.Script != "" {
		if err := app.replay(opts.Script); err != nil {
			app.logger.Error("replay failed", zap.String("script", opts.Script), zap.Error(err))
			app.UI.message = err.Error()
		} else {
			app.UI.message = fmt.Sprintf("replayed %s", opts.Script)
		}
	}

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		app.View.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		app.handleInput()
		app.Session.Tick()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))
		app.drawScene()
		app.drawUI()
		rl.EndDrawing()
	}

	app.Session.Close()
	return nil
}

func (app *App) replay(script string) error {
	f, err := os.Open(script)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return replay.RunScript(context.Background(), app.Session, f)
}
