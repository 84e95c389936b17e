package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

const frameInterval = time.Second / 60

type App struct {
	window  fyne.Window
	view    *viewer.SketchView
	session *session.Controller
	logger  *zap.Logger
	info    *SessionInfo
}

type SessionInfo struct {
	modeSelect  *widget.Select
	hintLabel   *widget.Label
	reportLabel *widget.Label
}

// refreshingHandler updates the side panel after every forwarded event
type refreshingHandler struct {
	app *App
}

func (h refreshingHandler) OnPointerDown(px geometry.Pixel) {
	h.app.session.OnPointerDown(px)
	h.app.updateInfo()
}

func (h refreshingHandler) OnPointerMove(px geometry.Pixel, buttonDown bool) {
	h.app.session.OnPointerMove(px, buttonDown)
}

func (h refreshingHandler) OnPointerUp(px geometry.Pixel) {
	h.app.session.OnPointerUp(px)
	h.app.updateInfo()
}

func (h refreshingHandler) OnKeyUp(key string) {
	h.app.session.OnKeyUp(key)
	h.app.updateInfo()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Must(logging.Options{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.FilePath,
		Production: cfg.Log.Environment == "production",
	})
	defer func() { _ = logger.Sync() }()

	a := app.New()
	w := a.NewWindow("gosketch")

	appInstance := newApp(w, cfg.Settings(), logger)
	appInstance.setupMainUI()

	stop := appInstance.startTicker()
	defer stop()

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
	appInstance.session.Close()
}

func newApp(w fyne.Window, settings session.Settings, logger *zap.Logger) *App {
	k := memkernel.New()
	view := viewer.NewSketchView(k)
	vp := view.Viewport()

	a := &App{
		window: w,
		view:   view,
		logger: logger,
	}
	a.session = session.NewController(session.Deps{
		Viewport: vp,
		Display:  vp,
		Zoomer:   vp,
		Kernel:   k,
	}, session.WithSettings(settings), session.WithLogger(logger.Named("session")))
	view.SetHandler(refreshingHandler{app: a})
	return a
}

func (a *App) setupMainUI() {
	names := make([]string, 0)
	for _, m := range session.Modes() {
		names = append(names, m.String())
	}

	a.info = &SessionInfo{
		hintLabel:   widget.NewLabel(""),
		reportLabel: widget.NewLabel(""),
	}
	a.info.modeSelect = widget.NewSelect(names, func(name string) {
		m, err := session.ParseMode(name)
		if err != nil || m == a.session.CurrentMode() {
			return
		}
		a.session.SetMode(m)
		a.updateInfo()
		a.window.Canvas().Focus(a.view)
	})
	a.info.hintLabel.Wrapping = fyne.TextWrapWord
	a.info.reportLabel.TextStyle = fyne.TextStyle{Monospace: true}

	undoButton := widget.NewButton("Undo", func() {
		a.session.Undo()
		a.updateInfo()
	})
	commitButton := widget.NewButton("Commit revolve", func() {
		a.session.OnKeyUp(session.KeyEnter)
		a.updateInfo()
	})
	cancelButton := widget.NewButton("Cancel", func() {
		a.session.OnKeyUp(session.KeyEscape)
		a.updateInfo()
	})

	angleEntry := widget.NewEntry()
	angleEntry.SetText(fmt.Sprintf("%g", a.session.Settings().RevolveAngle))
	angleEntry.OnSubmitted = func(s string) {
		var deg float64
		if _, err := fmt.Sscanf(s, "%g", &deg); err != nil {
			a.logger.Warn("invalid revolve angle", zap.String("value", s))
			return
		}
		a.session.SetRevolveAngle(deg)
	}

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Pick a mode or press its key\n" +
			"• Drag to draw, click to pick\n" +
			"• Enter commits a revolve, Esc cancels\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Mode:"),
		a.info.modeSelect,
		a.info.hintLabel,
		widget.NewSeparator(),
		widget.NewLabel("Revolve angle:"),
		angleEntry,
		container.NewGridWithColumns(3, undoButton, commitButton, cancelButton),
		widget.NewSeparator(),
		widget.NewLabel("Sketch:"),
		a.info.reportLabel,
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)

	a.window.SetContent(content)
	a.window.Canvas().Focus(a.view)
	a.updateInfo()
}

func (a *App) updateInfo() {
	a.info.modeSelect.SetSelected(a.session.CurrentMode().String())
	a.info.hintLabel.SetText(a.session.Hint())

	var b strings.Builder
	if err := a.session.Scene().Report().Write(&b); err != nil {
		a.logger.Warn("report failed", zap.Error(err))
	}
	a.info.reportLabel.SetText(b.String())
}

// startTicker advances zoom animations on the UI thread
func (a *App) startTicker() func() {
	ticker := time.NewTicker(frameInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fyne.Do(func() {
					if a.session.Zooming() {
						a.session.Tick()
					}
				})
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
