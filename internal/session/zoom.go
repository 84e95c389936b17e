package session

import (
	"github.com/philipparndt/gosketch/internal/overlay"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"go.uber.org/zap"
)

// zoomThreshold is the smallest zoom window side in pixels
const zoomThreshold = 5

// zoomAnimation moves the view from one scale and center to another in a
// fixed number of Tick steps
type zoomAnimation struct {
	fromScale  float64
	toScale    float64
	fromCenter geometry.Vector3
	toCenter   geometry.Vector3
	step       int
	steps      int
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func (c *Controller) beginZoomWindow(px geometry.Pixel) {
	if err := c.pointer.BeginDrag(px); err != nil {
		c.logger.Debug("drag not started", zap.Error(err))
	}
}

func (c *Controller) updateZoomWindow(px geometry.Pixel) {
	if err := c.pointer.UpdateDrag(px); err != nil {
		return
	}
	d := c.pointer.Session()
	in := overlay.Input{StartPixel: d.StartPixel, EndPixel: d.EndPixel}
	if _, err := c.presenter.Update(overlay.Rectangle, in, c.height()); err != nil {
		c.logger.Debug("no zoom window", zap.Error(err))
	}
}

// finishZoomWindow starts animating towards the dragged window
func (c *Controller) finishZoomWindow(px geometry.Pixel) {
	c.presenter.Clear()
	if !c.pointer.Active() {
		return
	}
	_ = c.pointer.UpdateDrag(px)
	d := c.pointer.Session()
	c.pointer.Cancel()

	rect := geometry.NewRect(d.StartPixel, d.EndPixel)
	if rect.Width() <= zoomThreshold || rect.Height() <= zoomThreshold {
		c.logger.Debug("zoom window too small", zap.Int("width", rect.Width()), zap.Int("height", rect.Height()))
		return
	}
	if c.zoomer == nil {
		c.logger.Warn("viewport cannot zoom")
		return
	}

	rect = rect.Expand(c.settings.ZoomMargin)
	steps := c.settings.ZoomSteps
	if steps < 1 {
		steps = 1
	}
	c.zoom = &zoomAnimation{
		fromScale:  c.zoomer.Scale(),
		toScale:    c.zoomer.FitScale(rect),
		fromCenter: c.zoomer.Center(),
		toCenter:   c.viewport.ScreenToWorld(rect.Center()),
		steps:      steps,
	}
	c.logger.Debug("zoom window", zap.Float64("scale", c.zoom.toScale), zap.Stringer("center", c.zoom.toCenter))
}

// Zooming reports whether a zoom animation is running
func (c *Controller) Zooming() bool {
	return c.zoom != nil
}

// Tick advances the zoom animation by one frame. It reports whether more
// frames follow.
func (c *Controller) Tick() bool {
	z := c.zoom
	if z == nil || c.closed {
		return false
	}
	z.step++
	t := smoothstep(float64(z.step) / float64(z.steps))
	c.zoomer.SetScale(z.fromScale + (z.toScale-z.fromScale)*t)
	c.zoomer.SetCenter(z.fromCenter.Lerp(z.toCenter, t))
	c.viewport.Redraw()

	if z.step >= z.steps {
		c.zoom = nil
		return false
	}
	return true
}
