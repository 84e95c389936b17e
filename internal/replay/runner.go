package replay

import (
	"context"
	"io"

	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// Controller receives the replayed events
type Controller interface {
	SetMode(m session.Mode)
	OnPointerDown(px geometry.Pixel)
	OnPointerMove(px geometry.Pixel, buttonDown bool)
	OnPointerUp(px geometry.Pixel)
	OnKeyUp(key string)
	SetRevolveAngle(deg float64)
	SetFilletRadius(r float64)
	Undo()
	Tick() bool
}

// Viewport size of sessions created by NewSession. Pixel (400, 300) is the
// world origin.
const (
	Width  = 800
	Height = 600
)

// NewSession creates a controller on the in-memory kernel and a headless
// top view
func NewSession(opts ...session.Option) (*session.Controller, *viewer.Headless) {
	k := memkernel.New()
	view := viewer.NewHeadless(k, Width, Height)
	ctrl := session.NewController(session.Deps{
		Viewport: view,
		Display:  view,
		Zoomer:   view,
		Kernel:   k,
	}, opts...)
	return ctrl, view
}

// Run feeds cmds to ctrl in order. It stops early when ctx is done.
func Run(ctx context.Context, ctrl Controller, cmds []Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return &LineError{Line: cmd.Line, Err: err}
		}
		switch cmd.Op {
		case OpMode:
			ctrl.SetMode(cmd.Mode)
		case OpKey:
			ctrl.OnKeyUp(cmd.Key)
		case OpDown:
			ctrl.OnPointerDown(cmd.Pixel)
		case OpMove:
			ctrl.OnPointerMove(cmd.Pixel, cmd.Drag)
		case OpUp:
			ctrl.OnPointerUp(cmd.Pixel)
		case OpAngle:
			ctrl.SetRevolveAngle(cmd.Value)
		case OpRadius:
			ctrl.SetFilletRadius(cmd.Value)
		case OpTick:
			for i := 0; i < cmd.Count; i++ {
				if !ctrl.Tick() {
					break
				}
			}
		case OpUndo:
			ctrl.Undo()
		}
	}
	return nil
}

// RunScript parses a script and runs it
func RunScript(ctx context.Context, ctrl Controller, r io.Reader) error {
	cmds, err := Parse(r)
	if err != nil {
		return err
	}
	return Run(ctx, ctrl, cmds)
}
