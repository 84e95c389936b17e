package session

import (
	"github.com/philipparndt/gosketch/internal/solver"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

// MateStep is the progress of a face to face mate
type MateStep int

const (
	MateAwaitingFirst MateStep = iota
	MateAwaitingSecond
)

// MateSelection is the first face of a mate, recorded when it was clicked
type MateSelection struct {
	Step           MateStep
	Owner          viewer.Handle // Body that will move
	Face           kernel.Shape
	FaceIndex      int
	OwnerTransform geometry.Transform
	Point          geometry.Vector3 // Face center in world space
	Normal         geometry.Vector3 // Outward face normal
}

// Reset returns to waiting for the first face
func (m *MateSelection) Reset() {
	*m = MateSelection{}
}

// matePick records the face to move, then moves its body so the face lies
// against the second face
func (c *Controller) matePick(px geometry.Pixel) {
	e, hit, ok := c.entityAt(px, kernel.PickFace)
	if !ok || hit.Sub == nil {
		return
	}
	plane, ok := c.kernel.FacePlane(hit.Sub)
	if !ok {
		c.logger.Debug("mate needs a planar face", zap.Stringer("owner", e.Handle))
		return
	}

	if c.mate.Step == MateAwaitingFirst {
		c.mate = MateSelection{
			Step:           MateAwaitingSecond,
			Owner:          e.Handle,
			Face:           hit.Sub,
			FaceIndex:      hit.Index,
			OwnerTransform: e.Transform,
			Point:          c.faceCenter(hit.Sub),
			Normal:         plane.Normal,
		}
		c.scene.Highlight(e.Handle, true)
		c.hint = "click the face to mate with"
		return
	}

	if e.Handle == c.mate.Owner {
		c.logger.Debug("mate faces belong to the same body")
		return
	}
	sel := c.mate
	c.scene.Highlight(sel.Owner, false)
	c.mate.Reset()
	c.hint = MateAlign.hint()

	mate := solver.ComputeFaceToFaceMate(sel.Point, sel.Normal, c.faceCenter(hit.Sub), plane.Normal)
	placement := solver.ComposeMate(sel.OwnerTransform, mate)
	if err := c.scene.SetTransform(sel.Owner, placement); err != nil {
		c.logger.Warn("mate failed", zap.Error(err))
		return
	}
	c.logger.Info("mated", zap.Stringer("body", sel.Owner), zap.Int("face", sel.FaceIndex), zap.Stringer("placement", placement))
}

// faceCenter is the middle of a displayed face, independent of where it
// was clicked
func (c *Controller) faceCenter(face kernel.Shape) geometry.Vector3 {
	return c.kernel.Bounds(face).Center()
}
