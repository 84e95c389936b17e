package session

import (
	"github.com/philipparndt/gosketch/internal/solver"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

// motion is an entity being moved or rotated by dragging
type motion struct {
	handle    viewer.Handle
	center    geometry.Vector3 // Rotation center, fixed for the whole drag
	lastPixel geometry.Pixel
	lastWorld geometry.Vector3
}

func (c *Controller) beginMotion(px geometry.Pixel) {
	e, _, ok := c.entityAt(px, kernel.PickAny)
	if !ok {
		return
	}
	if err := c.pointer.BeginDrag(px); err != nil {
		return
	}
	c.motion = &motion{
		handle:    e.Handle,
		center:    c.kernel.Bounds(e.Shape).Center(),
		lastPixel: px,
		lastWorld: c.pointer.Session().StartWorld,
	}
}

func (c *Controller) updateMotion(px geometry.Pixel) {
	m := c.motion
	if err := c.pointer.UpdateDrag(px); err != nil {
		return
	}
	e, ok := c.scene.Get(m.handle)
	if !ok {
		c.motion = nil
		return
	}

	var next geometry.Transform
	switch c.mode {
	case Move:
		world := c.pointer.Session().EndWorld
		delta, ok := solver.MoveDelta(m.lastWorld, world)
		if !ok {
			return
		}
		next = geometry.Translation(delta).Mul(e.Transform)
		m.lastWorld = world
	case Rotate:
		dx := float64(px.X - m.lastPixel.X)
		dy := float64(px.Y - m.lastPixel.Y)
		if dx == 0 && dy == 0 {
			return
		}
		next = solver.RotateIncrement(dx, dy, m.center).Mul(e.Transform)
		m.lastPixel = px
	default:
		return
	}

	if err := c.scene.SetTransform(m.handle, next); err != nil {
		c.logger.Warn("transform failed", zap.Stringer("mode", c.mode), zap.Error(err))
	}
}

func (c *Controller) endMotion() {
	if c.motion == nil {
		return
	}
	c.pointer.Cancel()
	c.motion = nil
}
