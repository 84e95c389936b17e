package session

import (
	"errors"

	"github.com/philipparndt/gosketch/internal/overlay"
	"github.com/philipparndt/gosketch/internal/projection"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

var (
	// ErrDegenerateDrag is returned when a drag ends where it started
	ErrDegenerateDrag = errors.New("degenerate drag")
	// ErrNoDrag is returned when no drag is in progress
	ErrNoDrag = errors.New("no drag in progress")
	// ErrLoopNotClosed is returned when a line ends on the chain's first
	// point but the chain cannot be assembled into a wire. The lines stay.
	ErrLoopNotClosed = errors.New("could not close loop")
)

// DragSession is one press-move-release gesture
type DragSession struct {
	StartPixel geometry.Pixel
	EndPixel   geometry.Pixel
	StartWorld geometry.Vector3
	EndWorld   geometry.Vector3
	PlaneMode  bool
	Plane      *geometry.Plane // Construction plane when PlaneMode is set
	Active     bool
}

// Input returns the drag as preview input
func (d DragSession) Input() overlay.Input {
	return overlay.Input{
		StartPixel: d.StartPixel,
		EndPixel:   d.EndPixel,
		StartWorld: d.StartWorld,
		EndWorld:   d.EndWorld,
		Plane:      d.Plane,
	}
}

// Pointer tracks the drag session and resolves its pixels to world points,
// on the construction plane when one is set
type Pointer struct {
	proj    *projection.Service
	epsilon float64
	plane   *geometry.Plane
	session DragSession
}

// NewPointer creates a pointer tracker. Drags shorter than epsilon model
// units are degenerate.
func NewPointer(proj *projection.Service, epsilon float64) *Pointer {
	return &Pointer{proj: proj, epsilon: epsilon}
}

// SetPlane sets the construction plane for following drags; nil returns to
// screen mode
func (p *Pointer) SetPlane(plane *geometry.Plane) {
	p.plane = plane
}

// Plane returns the construction plane, nil in screen mode
func (p *Pointer) Plane() *geometry.Plane {
	return p.plane
}

// Session returns the current or most recent drag
func (p *Pointer) Session() DragSession {
	return p.session
}

// Active reports whether a drag is in progress
func (p *Pointer) Active() bool {
	return p.session.Active
}

func (p *Pointer) resolve(px geometry.Pixel) (geometry.Vector3, error) {
	if p.plane != nil {
		return p.proj.ScreenToPlane(px, *p.plane)
	}
	return p.proj.ScreenToWorld(px), nil
}

// BeginDrag opens a drag at px
func (p *Pointer) BeginDrag(px geometry.Pixel) error {
	world, err := p.resolve(px)
	if err != nil {
		p.session = DragSession{}
		return err
	}
	p.session = DragSession{
		StartPixel: px,
		EndPixel:   px,
		StartWorld: world,
		EndWorld:   world,
		PlaneMode:  p.plane != nil,
		Plane:      p.plane,
		Active:     true,
	}
	return nil
}

// UpdateDrag moves the end of the drag to px. When px cannot be resolved
// the drag keeps its previous end.
func (p *Pointer) UpdateDrag(px geometry.Pixel) error {
	if !p.session.Active {
		return ErrNoDrag
	}
	world, err := p.resolve(px)
	if err != nil {
		return err
	}
	p.session.EndPixel = px
	p.session.EndWorld = world
	return nil
}

// EndDrag closes the drag and returns its world end points
func (p *Pointer) EndDrag() (geometry.Vector3, geometry.Vector3, error) {
	if !p.session.Active {
		return geometry.Vector3{}, geometry.Vector3{}, ErrNoDrag
	}
	p.session.Active = false
	start, end := p.session.StartWorld, p.session.EndWorld
	if start.Distance(end) < p.epsilon {
		return start, end, ErrDegenerateDrag
	}
	return start, end, nil
}

// Cancel abandons the drag
func (p *Pointer) Cancel() {
	p.session = DragSession{}
}
