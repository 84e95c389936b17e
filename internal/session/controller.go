// Package session turns pointer and key events into sketch geometry and
// modelling operations. A Controller owns all interactive state of one
// viewport; it is not safe for concurrent use.
package session

import (
	"strings"

	"github.com/philipparndt/gosketch/internal/measurement"
	"github.com/philipparndt/gosketch/internal/operation"
	"github.com/philipparndt/gosketch/internal/overlay"
	"github.com/philipparndt/gosketch/internal/projection"
	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/internal/snap"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

// Deps are the collaborators of a Controller
type Deps struct {
	Viewport viewer.Viewport
	Display  viewer.Display
	Zoomer   viewer.Zoomer // Optional, the zoom window does nothing without it
	Kernel   kernel.Kernel
}

// pairSelection remembers the first of two picked entities
type pairSelection struct {
	first viewer.Handle
	set   bool
}

// Controller is the interactive tool state machine
type Controller struct {
	viewport viewer.Viewport
	display  viewer.Display
	zoomer   viewer.Zoomer
	kernel   kernel.Kernel
	logger   *zap.Logger
	settings Settings

	scene     *scene.Scene
	proj      *projection.Service
	snap      *snap.Engine
	presenter *overlay.Presenter
	ops       *operation.Coordinator
	pointer   *Pointer

	mode Mode
	hint string

	loop      snap.Loop
	mate      MateSelection
	pair      pairSelection
	revolve   revolveState
	dimension measurement.State
	motion    *motion
	zoom      *zoomAnimation
	closed    bool
}

// NewController creates a controller in Idle mode
func NewController(deps Deps, opts ...Option) *Controller {
	c := &Controller{
		viewport: deps.Viewport,
		display:  deps.Display,
		zoomer:   deps.Zoomer,
		kernel:   deps.Kernel,
		logger:   zap.NewNop(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.scene = scene.New(c.kernel, c.display)
	c.proj = projection.New(c.viewport, c.kernel)
	c.snap = snap.New(c.scene,
		snap.WithTolerance(c.settings.SnapTolerance),
		snap.WithMatchTolerance(c.settings.MatchTolerance),
		snap.WithLogger(c.logger.Named("snap")),
	)
	c.presenter = overlay.NewPresenter(c.display, c.logger.Named("overlay"))
	c.ops = operation.New(c.scene, c.display, c.logger.Named("operation"))
	c.pointer = NewPointer(c.proj, c.settings.DegenerateEpsilon)
	return c
}

// Scene returns the entities created so far
func (c *Controller) Scene() *scene.Scene {
	return c.scene
}

// Operations returns the coordinator of extrude, revolve and booleans
func (c *Controller) Operations() *operation.Coordinator {
	return c.ops
}

// Settings returns the active settings
func (c *Controller) Settings() Settings {
	return c.settings
}

// CurrentMode returns the active mode
func (c *Controller) CurrentMode() Mode {
	return c.mode
}

// Hint returns a short instruction for the next user action
func (c *Controller) Hint() string {
	return c.hint
}

// Loop returns the chain of lines drawn since the last closure
func (c *Controller) Loop() snap.Loop {
	return c.loop
}

// Mate returns the face to face mate selection
func (c *Controller) Mate() MateSelection {
	return c.mate
}

// Drag returns the current or most recent drag
func (c *Controller) Drag() DragSession {
	return c.pointer.Session()
}

// Closed reports whether Close was called
func (c *Controller) Closed() bool {
	return c.closed
}

// SetMode tears down everything the previous mode left behind and activates
// m. Setting the active mode again re-arms it.
func (c *Controller) SetMode(m Mode) {
	if c.closed {
		return
	}
	c.reset()
	prev := c.mode
	c.mode = m
	c.hint = m.hint()
	c.logger.Debug("mode changed", zap.Stringer("from", prev), zap.Stringer("mode", m))
	c.viewport.Redraw()
}

// reset drops previews, the drag, partial selections and running sessions
func (c *Controller) reset() {
	c.presenter.Clear()
	c.pointer.Cancel()
	c.pointer.SetPlane(nil)
	c.loop.Reset()
	if c.mate.Step == MateAwaitingSecond {
		c.scene.Highlight(c.mate.Owner, false)
	}
	c.mate.Reset()
	c.clearPair()
	if c.revolve.step != revolveAxis {
		c.scene.Highlight(c.revolve.axisHandle, false)
	}
	c.revolve = revolveState{}
	c.dimension.Reset()
	c.ops.Cancel()
	c.motion = nil
	c.zoom = nil
	c.hint = ""
}

// Close ends the session when its viewer goes away. Later events are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.reset()
	c.mode = Idle
	c.closed = true
	c.logger.Debug("session closed", zap.Int("entities", c.scene.Len()))
}

// OnPointerDown handles a primary button press at px
func (c *Controller) OnPointerDown(px geometry.Pixel) {
	if c.closed {
		return
	}
	if c.zoom != nil {
		c.logger.Debug("zoom animation interrupted", zap.Int("step", c.zoom.step))
		c.zoom = nil
	}

	switch c.mode {
	case DrawLine, DrawCircle, DrawRectangle, DrawEllipse:
		c.beginShape(px)
	case ZoomWindow:
		c.beginZoomWindow(px)
	case Trim:
		c.trimAt(px)
	case Fillet:
		c.filletPick(px)
	case Extrude:
		c.beginExtrude(px)
	case Revolve:
		c.revolvePick(px)
	case Move, Rotate:
		c.beginMotion(px)
	case MateAlign:
		c.matePick(px)
	case BooleanUnion, BooleanCut, BooleanIntersect:
		c.booleanPick(px)
	case Dimension:
		c.dimensionClick(px)
	default:
		return
	}
	c.viewport.Redraw()
}

// OnPointerMove handles pointer motion; buttonDown is set while dragging
func (c *Controller) OnPointerMove(px geometry.Pixel, buttonDown bool) {
	if c.closed {
		return
	}

	switch c.mode {
	case DrawLine, DrawCircle, DrawRectangle, DrawEllipse:
		if !buttonDown || !c.pointer.Active() {
			return
		}
		c.updateShape(px)
	case ZoomWindow:
		if !buttonDown || !c.pointer.Active() {
			return
		}
		c.updateZoomWindow(px)
	case Extrude:
		if !buttonDown || c.ops.Extrude() == nil {
			return
		}
		c.ops.UpdateExtrude(px.Y)
	case Move, Rotate:
		if !buttonDown || c.motion == nil {
			return
		}
		c.updateMotion(px)
	case Dimension:
		if c.dimension.Step != measurement.AwaitingPlacement {
			return
		}
		c.previewDimension(px)
	default:
		return
	}
	c.viewport.Redraw()
}

// OnPointerUp handles the primary button release at px
func (c *Controller) OnPointerUp(px geometry.Pixel) {
	if c.closed {
		return
	}

	switch c.mode {
	case DrawLine, DrawCircle, DrawRectangle, DrawEllipse:
		c.finishShape(px)
	case ZoomWindow:
		c.finishZoomWindow(px)
	case Extrude:
		c.commitExtrude()
	case Move, Rotate:
		c.endMotion()
	default:
		return
	}
	c.viewport.Redraw()
}

// OnKeyUp handles a released key given by name
func (c *Controller) OnKeyUp(key string) {
	if c.closed {
		return
	}

	switch {
	case strings.EqualFold(key, KeyEscape):
		c.SetMode(Idle)
	case strings.EqualFold(key, KeyEnter):
		c.commitRevolve()
		c.viewport.Redraw()
	case strings.EqualFold(key, KeyBackspace):
		c.Undo()
	default:
		if m, ok := KeyMode(key); ok {
			c.SetMode(m)
		}
	}
}

// SetRevolveAngle changes the sweep of revolves, including a pending one
func (c *Controller) SetRevolveAngle(deg float64) {
	if deg <= 0 || deg > 360 {
		c.logger.Warn("revolve angle out of range", zap.Float64("angle", deg))
		return
	}
	c.settings.RevolveAngle = deg
	if c.revolve.step == revolvePending {
		c.ops.SetAngle(deg)
		c.viewport.Redraw()
	}
}

// SetFilletRadius changes the radius of following fillets
func (c *Controller) SetFilletRadius(r float64) {
	if r <= 0 {
		c.logger.Warn("fillet radius must be positive", zap.Float64("radius", r))
		return
	}
	c.settings.FilletRadius = r
}

// Undo removes the most recently created entity still in the scene
func (c *Controller) Undo() {
	if c.closed {
		return
	}
	e, ok := c.scene.Last()
	if !ok {
		return
	}
	c.forget(e.Handle)
	c.scene.Remove(e.Handle)
	c.logger.Debug("undo", zap.Stringer("kind", e.Kind), zap.Stringer("handle", e.Handle))
	c.viewport.Redraw()
}

// forget drops partial state that refers to h
func (c *Controller) forget(h viewer.Handle) {
	for _, lh := range c.loop.Handles {
		if lh == h {
			c.loop.Reset()
			break
		}
	}
	if c.pair.set && c.pair.first == h {
		c.pair = pairSelection{}
		c.hint = c.mode.hint()
	}
	if c.mate.Step == MateAwaitingSecond && c.mate.Owner == h {
		c.mate.Reset()
		c.hint = c.mode.hint()
	}
	if c.revolve.step != revolveAxis && (c.revolve.axisHandle == h || c.revolve.step == revolvePending) {
		c.scene.Highlight(c.revolve.axisHandle, false)
		c.revolve = revolveState{}
		c.hint = c.mode.hint()
	}
	if c.motion != nil && c.motion.handle == h {
		c.motion = nil
		c.pointer.Cancel()
	}
	c.ops.Cancel()
}

func (c *Controller) height() int {
	_, h := c.viewport.Size()
	return h
}

// viewNormal is the direction from the scene towards the camera
func (c *Controller) viewNormal() geometry.Vector3 {
	w, h := c.viewport.Size()
	_, dir := c.viewport.PixelToWorldRay(geometry.NewPixel(w/2, h/2))
	n := dir.Negate().Normalize()
	if n.Length() == 0 {
		return geometry.NewVector3(0, 0, 1)
	}
	return n
}

// entityAt returns the scene entity under px. Previews and overlays are
// not entities and never returned.
func (c *Controller) entityAt(px geometry.Pixel, filter kernel.PickFilter) (*scene.Entity, kernel.Hit, bool) {
	pick, ok := c.viewport.PickUnderCursor(px, filter)
	if !ok {
		return nil, kernel.Hit{}, false
	}
	e, ok := c.scene.Get(pick.Handle)
	if !ok {
		return nil, kernel.Hit{}, false
	}
	return e, pick.Hit, true
}

func (c *Controller) selectFirst(e *scene.Entity) {
	c.pair = pairSelection{first: e.Handle, set: true}
	c.scene.Highlight(e.Handle, true)
}

func (c *Controller) clearPair() {
	if c.pair.set {
		c.scene.Highlight(c.pair.first, false)
	}
	c.pair = pairSelection{}
}
