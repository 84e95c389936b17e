package session

import (
	"fmt"

	"github.com/philipparndt/gosketch/internal/overlay"
	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"go.uber.org/zap"
)

// previewShape returns the overlay drawn while dragging in a drawing mode
func (m Mode) previewShape() overlay.Shape {
	switch m {
	case DrawCircle:
		return overlay.Circle
	case DrawEllipse:
		return overlay.Ellipse
	case DrawRectangle, ZoomWindow:
		return overlay.Rectangle
	default:
		return overlay.Line
	}
}

// beginShape opens a drag, first taking the construction plane from a face
// under the pointer when the tool session has none yet
func (c *Controller) beginShape(px geometry.Pixel) {
	if c.pointer.Plane() == nil {
		if plane, ok := c.proj.AcquirePlaneFromFace(px); ok {
			c.pointer.SetPlane(&plane)
			c.logger.Debug("construction plane acquired",
				zap.Stringer("origin", plane.Origin), zap.Stringer("normal", plane.Normal))
		}
	}
	if err := c.pointer.BeginDrag(px); err != nil {
		c.logger.Debug("drag not started", zap.Error(err))
	}
}

func (c *Controller) updateShape(px geometry.Pixel) {
	if err := c.pointer.UpdateDrag(px); err != nil {
		return
	}
	if _, err := c.presenter.Update(c.mode.previewShape(), c.pointer.Session().Input(), c.height()); err != nil {
		c.logger.Debug("no preview", zap.Error(err))
	}
}

// finishShape ends the drag and creates the entity it describes
func (c *Controller) finishShape(px geometry.Pixel) {
	c.presenter.Clear()
	if !c.pointer.Active() {
		return
	}
	_ = c.pointer.UpdateDrag(px)
	drag := c.pointer.Session()
	start, end, err := c.pointer.EndDrag()
	if err != nil {
		c.logger.Debug("drag ignored", zap.Stringer("mode", c.mode), zap.Error(err))
		return
	}

	switch c.mode {
	case DrawLine:
		err = c.createLine(start, end)
	case DrawCircle:
		err = c.createCircle(drag)
	case DrawRectangle:
		err = c.createRectangle(drag)
	case DrawEllipse:
		err = c.createEllipse(drag)
	}
	if err != nil {
		c.logger.Warn("shape not created", zap.Stringer("mode", c.mode), zap.Error(err))
	}
}

// createLine adds a line with snapped ends and closes the current chain
// into a wire when the line ends at the chain's first point
func (c *Controller) createLine(start, end geometry.Vector3) error {
	start = c.snap.Snap(start)
	end = c.snap.Snap(end)
	c.hint = c.mode.hint()

	if c.loop.Active() && !start.NearlyEqual(c.loop.LastPoint, c.settings.MatchTolerance) {
		c.loop.Reset()
	}
	closes := c.snap.CheckLoopClosure(end, &c.loop)
	if closes {
		end = c.loop.FirstPoint
	}
	if start.Distance(end) < c.settings.DegenerateEpsilon {
		return ErrDegenerateDrag
	}

	edge, err := c.kernel.BuildEdge(start, end)
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	line := c.scene.Add(scene.NewLine(start, end, edge))
	c.loop.Append(line.Handle, start, end)
	if !closes {
		return nil
	}

	wire, err := c.snap.CloseLoop(&c.loop)
	if err != nil {
		segments := c.loop.Len()
		c.loop.Reset()
		c.hint = "could not close loop"
		return fmt.Errorf("%w (%d segments): %w", ErrLoopNotClosed, segments, err)
	}
	c.logger.Info("loop closed", zap.Stringer("wire", wire.Handle))
	c.SetMode(Idle)
	return nil
}

// sketchNormal is the normal of the surface a drag was made on
func (c *Controller) sketchNormal(d DragSession) geometry.Vector3 {
	if d.Plane != nil {
		return d.Plane.Normal
	}
	return c.viewNormal()
}

// frame returns the drag start and the drag extent along the two in-plane
// directions: the plane axes, or screen right and up
func (c *Controller) frame(d DragSession) (start, du, dv geometry.Vector3) {
	start = d.StartWorld
	if d.Plane != nil {
		u, v := d.Plane.Axes()
		delta := d.EndWorld.Sub(start)
		return start, u.Mul(delta.Dot(u)), v.Mul(delta.Dot(v))
	}
	du = c.proj.ScreenToWorld(geometry.NewPixel(d.EndPixel.X, d.StartPixel.Y)).Sub(start)
	dv = c.proj.ScreenToWorld(geometry.NewPixel(d.StartPixel.X, d.EndPixel.Y)).Sub(start)
	return start, du, dv
}

func (c *Controller) createCircle(d DragSession) error {
	center := d.StartWorld
	radius := center.Distance(d.EndWorld)
	normal := c.sketchNormal(d)
	shape, err := c.kernel.BuildCircle(center, normal, radius)
	if err != nil {
		return fmt.Errorf("build circle: %w", err)
	}
	c.scene.Add(scene.NewCircle(center, normal, radius, shape))
	return nil
}

func (c *Controller) createRectangle(d DragSession) error {
	start, du, dv := c.frame(d)
	if du.Length() < c.settings.DegenerateEpsilon || dv.Length() < c.settings.DegenerateEpsilon {
		return ErrDegenerateDrag
	}
	corners := []geometry.Vector3{start, start.Add(du), start.Add(du).Add(dv), start.Add(dv)}

	edges := make([]kernel.Shape, 0, 4)
	for i, p := range corners {
		edge, err := c.kernel.BuildEdge(p, corners[(i+1)%4])
		if err != nil {
			return fmt.Errorf("build rectangle side: %w", err)
		}
		edges = append(edges, edge)
	}
	wire, err := c.kernel.BuildWire(edges)
	if err != nil {
		return fmt.Errorf("build rectangle: %w", err)
	}
	c.scene.Add(scene.NewRectangle(corners, wire))
	return nil
}

func (c *Controller) createEllipse(d DragSession) error {
	start, du, dv := c.frame(d)
	ru, rv := du.Length()/2, dv.Length()/2
	if ru < c.settings.DegenerateEpsilon || rv < c.settings.DegenerateEpsilon {
		return ErrDegenerateDrag
	}
	center := start.Add(du.Mul(0.5)).Add(dv.Mul(0.5))
	u, v := du.Normalize(), dv.Normalize()
	shape, err := c.kernel.BuildEllipse(center, u, v, ru, rv)
	if err != nil {
		return fmt.Errorf("build ellipse: %w", err)
	}
	c.scene.Add(scene.NewEllipse(center, u, v, ru, rv, shape))
	return nil
}
