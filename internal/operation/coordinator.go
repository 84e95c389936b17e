// Package operation sequences the long running modelling operations:
// extrude, revolve and booleans. Each validates its inputs, keeps a preview
// up to date and on commit replaces the inputs with one result.
package operation

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/internal/solver"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

var (
	ErrNoValidWire      = errors.New("selection does not form a closed wire")
	ErrNonPlanarProfile = errors.New("profile is not planar")
	ErrSelectionCount   = errors.New("wrong number of selected shapes")
	ErrNotSolid         = errors.New("selection is not a solid")
	ErrNoAxis           = errors.New("no revolve axis")
	ErrZeroHeight       = errors.New("extrusion height is zero")
	ErrNoSession        = errors.New("no operation in progress")
)

// ExtrudeSession is an extrusion being sized by dragging
type ExtrudeSession struct {
	Inputs    []viewer.Handle
	Face      kernel.Shape
	Plane     geometry.Plane
	BasePoint geometry.Vector3
	StartY    int
	Height    float64
	Preview   viewer.Handle
}

// RevolveSession is a revolve waiting for its angle
type RevolveSession struct {
	Inputs    []viewer.Handle
	Face      kernel.Shape
	Axis      geometry.Axis
	BasePoint geometry.Vector3
	Angle     float64
	Preview   viewer.Handle
}

// Coordinator runs at most one extrude or revolve session at a time
type Coordinator struct {
	scene   *scene.Scene
	kernel  kernel.Kernel
	display viewer.Display
	logger  *zap.Logger

	extrude    *ExtrudeSession
	revolve    *RevolveSession
	hasPreview bool
}

// New creates a coordinator
func New(sc *scene.Scene, display viewer.Display, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		scene:   sc,
		kernel:  sc.Kernel(),
		display: display,
		logger:  logger,
	}
}

// Extrude returns the running extrude session
func (c *Coordinator) Extrude() *ExtrudeSession {
	return c.extrude
}

// Revolve returns the running revolve session
func (c *Coordinator) Revolve() *RevolveSession {
	return c.revolve
}

// Active reports whether a session is running
func (c *Coordinator) Active() bool {
	return c.extrude != nil || c.revolve != nil
}

// PreviewHandle returns the handle of the visible preview
func (c *Coordinator) PreviewHandle() (viewer.Handle, bool) {
	switch {
	case !c.hasPreview:
		return viewer.Handle{}, false
	case c.extrude != nil:
		return c.extrude.Preview, true
	case c.revolve != nil:
		return c.revolve.Preview, true
	}
	return viewer.Handle{}, false
}

// Profile builds a planar face from the selected sketch entities: one
// closed curve, or lines and arcs that chain into a closed wire
func (c *Coordinator) Profile(selection []*scene.Entity) (kernel.Shape, error) {
	if len(selection) == 0 {
		return nil, ErrNoValidWire
	}

	var boundary kernel.Shape
	if len(selection) == 1 && closedKind(selection[0]) {
		boundary = selection[0].Shape
	} else {
		shapes := make([]kernel.Shape, 0, len(selection))
		for _, e := range selection {
			if !e.Kind.IsCurve() {
				return nil, fmt.Errorf("%w: %s is not a curve", ErrNoValidWire, e.Kind)
			}
			shapes = append(shapes, e.Shape)
		}
		wire, err := c.kernel.BuildWire(shapes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoValidWire, err)
		}
		if !c.closed(wire) {
			return nil, ErrNoValidWire
		}
		boundary = wire
	}

	face, err := c.kernel.BuildFace(boundary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonPlanarProfile, err)
	}
	return face, nil
}

func closedKind(e *scene.Entity) bool {
	switch e.Kind {
	case scene.Circle, scene.Ellipse, scene.Rectangle:
		return true
	case scene.Wire:
		return len(e.Endpoints()) == 0
	}
	return false
}

// closed reports whether the displayed outline of s returns to its start
func (c *Coordinator) closed(s kernel.Shape) bool {
	lines := c.kernel.Polylines(s)
	if len(lines) == 0 {
		return false
	}
	first := lines[0]
	last := lines[len(lines)-1]
	if len(first) == 0 || len(last) == 0 {
		return false
	}
	return first[0].NearlyEqual(last[len(last)-1], 1e-6)
}

func handles(selection []*scene.Entity) []viewer.Handle {
	out := make([]viewer.Handle, len(selection))
	for i, e := range selection {
		out[i] = e.Handle
	}
	return out
}

// BeginExtrude validates the selection and starts sizing an extrusion from
// the pointer row startY
func (c *Coordinator) BeginExtrude(selection []*scene.Entity, startY int) error {
	c.Cancel()

	face, err := c.Profile(selection)
	if err != nil {
		return err
	}
	plane, ok := c.kernel.FacePlane(face)
	if !ok {
		return ErrNonPlanarProfile
	}

	c.extrude = &ExtrudeSession{
		Inputs:    handles(selection),
		Face:      face,
		Plane:     plane,
		BasePoint: plane.Origin,
		StartY:    startY,
		Preview:   viewer.NewHandle(),
	}
	c.logger.Debug("extrude started", zap.Int("inputs", len(selection)))
	return nil
}

// UpdateExtrude resizes the extrusion for the pointer row y and rebuilds
// the preview
func (c *Coordinator) UpdateExtrude(y int) {
	s := c.extrude
	if s == nil {
		return
	}
	s.Height = solver.ExtrudeHeight(float64(y-s.StartY), s.Plane.Normal)
	c.clearPreview()
	if math.Abs(s.Height) < 1e-9 {
		return
	}

	shape, err := c.kernel.Extrude(s.Face, solver.ExtrudeVector(s.Height, s.Plane.Normal))
	if err != nil {
		c.logger.Debug("extrude preview failed", zap.Float64("height", s.Height), zap.Error(err))
		return
	}
	c.showPreview(s.Preview, shape)
}

// CommitExtrude builds the final solid and replaces the profile with it
func (c *Coordinator) CommitExtrude() (*scene.Entity, error) {
	s := c.extrude
	if s == nil {
		return nil, ErrNoSession
	}
	if math.Abs(s.Height) < 1e-9 {
		return nil, ErrZeroHeight
	}

	shape, err := c.kernel.Extrude(s.Face, solver.ExtrudeVector(s.Height, s.Plane.Normal))
	if err != nil {
		return nil, fmt.Errorf("extrude: %w", err)
	}
	return c.finish(s.Inputs, shape, viewer.StyleSolid), nil
}

// BeginRevolve validates the selection and the axis and shows a preview
// swept by angle degrees
func (c *Coordinator) BeginRevolve(selection []*scene.Entity, axis geometry.Axis, angle float64) error {
	c.Cancel()

	if axis.Direction.Length() < 1e-9 {
		return ErrNoAxis
	}
	face, err := c.Profile(selection)
	if err != nil {
		return err
	}
	plane, _ := c.kernel.FacePlane(face)

	c.revolve = &RevolveSession{
		Inputs:    handles(selection),
		Face:      face,
		Axis:      axis,
		BasePoint: plane.Origin,
		Angle:     angle,
		Preview:   viewer.NewHandle(),
	}
	c.updateRevolve()
	return nil
}

// SetAngle changes the revolve sweep and rebuilds the preview
func (c *Coordinator) SetAngle(deg float64) {
	if c.revolve == nil {
		return
	}
	c.revolve.Angle = deg
	c.updateRevolve()
}

func (c *Coordinator) updateRevolve() {
	s := c.revolve
	c.clearPreview()
	shape, err := c.kernel.Revolve(s.Face, s.Axis, s.Angle)
	if err != nil {
		c.logger.Debug("revolve preview failed", zap.Float64("angle", s.Angle), zap.Error(err))
		return
	}
	c.showPreview(s.Preview, shape)
}

// CommitRevolve builds the final solid and replaces the profile with it
func (c *Coordinator) CommitRevolve() (*scene.Entity, error) {
	s := c.revolve
	if s == nil {
		return nil, ErrNoSession
	}
	shape, err := c.kernel.Revolve(s.Face, s.Axis, s.Angle)
	if err != nil {
		return nil, fmt.Errorf("revolve: %w", err)
	}
	return c.finish(s.Inputs, shape, viewer.StyleSolid), nil
}

// ValidateBooleanSelection checks for exactly two solids
func ValidateBooleanSelection(selection []*scene.Entity) error {
	if len(selection) != 2 {
		return fmt.Errorf("%w: need 2, got %d", ErrSelectionCount, len(selection))
	}
	for _, e := range selection {
		if e.Kind != scene.Solid {
			return fmt.Errorf("%w: %s", ErrNotSolid, e.Kind)
		}
	}
	if selection[0].Handle == selection[1].Handle {
		return fmt.Errorf("%w: same solid twice", ErrSelectionCount)
	}
	return nil
}

// BooleanStyle returns the result style of op
func BooleanStyle(op kernel.BooleanOp) viewer.Style {
	switch op {
	case kernel.Cut:
		return viewer.StyleCut
	case kernel.Intersect:
		return viewer.StyleIntersect
	default:
		return viewer.StyleUnion
	}
}

// CommitBoolean combines a and b and replaces both with the result. On
// failure the scene is untouched.
func (c *Coordinator) CommitBoolean(op kernel.BooleanOp, a, b *scene.Entity) (*scene.Entity, error) {
	if err := ValidateBooleanSelection([]*scene.Entity{a, b}); err != nil {
		return nil, err
	}
	shape, err := c.kernel.Boolean(op, a.Shape, b.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.finish([]viewer.Handle{a.Handle, b.Handle}, shape, BooleanStyle(op)), nil
}

// finish removes the preview and the inputs and adds the result
func (c *Coordinator) finish(inputs []viewer.Handle, shape kernel.Shape, style viewer.Style) *scene.Entity {
	c.Cancel()
	for _, h := range inputs {
		c.scene.Remove(h)
	}
	result := c.scene.Add(scene.NewShape(scene.Solid, shape, style))
	c.logger.Info("solid created", zap.Stringer("handle", result.Handle), zap.Int("replaced", len(inputs)))
	return result
}

// Cancel removes any preview and ends the session
func (c *Coordinator) Cancel() {
	c.clearPreview()
	c.extrude = nil
	c.revolve = nil
}

func (c *Coordinator) showPreview(h viewer.Handle, shape kernel.Shape) {
	c.display.Show(h, shape, viewer.StylePreview)
	c.hasPreview = true
}

func (c *Coordinator) clearPreview() {
	if !c.hasPreview {
		return
	}
	if h, ok := c.PreviewHandle(); ok {
		c.display.Erase(h)
	}
	c.hasPreview = false
}
