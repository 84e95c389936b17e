package overlay

import (
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

// Presenter keeps at most one preview overlay on a display
type Presenter struct {
	display   viewer.Display
	logger    *zap.Logger
	handle    viewer.Handle
	active    bool
	billboard bool
}

// NewPresenter creates a presenter drawing on display
func NewPresenter(display viewer.Display, logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{
		display:   display,
		logger:    logger,
		handle:    viewer.NewHandle(),
		billboard: true,
	}
}

// Update replaces the preview with one computed from in. A degenerate drag
// leaves no preview.
func (p *Presenter) Update(shape Shape, in Input, height int) (Params, error) {
	p.Clear()

	params, err := Compute(shape, in, height)
	if err != nil {
		return Params{}, err
	}
	p.Show(params.Overlay(viewer.StyleOverlay))
	return params, nil
}

// Show replaces the preview with o
func (p *Presenter) Show(o viewer.Overlay) {
	p.Clear()
	if o.Billboard != p.billboard {
		p.logger.Debug("preview billboard switched", zap.Bool("billboard", o.Billboard))
		p.billboard = o.Billboard
	}
	p.display.ShowOverlay(p.handle, o)
	p.active = true
}

// Clear removes the preview
func (p *Presenter) Clear() {
	if !p.active {
		return
	}
	p.display.RemoveOverlay(p.handle)
	p.active = false
}

// Active reports whether a preview is shown
func (p *Presenter) Active() bool {
	return p.active
}

// Billboard reports whether the last preview was pinned to the camera
func (p *Presenter) Billboard() bool {
	return p.billboard
}
