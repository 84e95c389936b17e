package session

import (
	"errors"

	"github.com/philipparndt/gosketch/internal/operation"
	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

type revolveStep int

const (
	revolveAxis revolveStep = iota
	revolveProfile
	revolvePending
)

// revolveState is the axis-then-profile selection of the revolve tool
type revolveState struct {
	step       revolveStep
	axis       geometry.Axis
	axisHandle viewer.Handle
}

// beginExtrude starts sizing an extrusion of the profile under px
func (c *Controller) beginExtrude(px geometry.Pixel) {
	e, _, ok := c.entityAt(px, kernel.PickAny)
	if !ok || !e.Kind.IsCurve() {
		return
	}
	if err := c.ops.BeginExtrude([]*scene.Entity{e}, px.Y); err != nil {
		c.logger.Warn("profile rejected", zap.Stringer("kind", e.Kind), zap.Error(err))
		return
	}
	c.hint = "drag up or down to set the height"
}

func (c *Controller) commitExtrude() {
	if c.ops.Extrude() == nil {
		return
	}
	defer func() { c.hint = Extrude.hint() }()

	ent, err := c.ops.CommitExtrude()
	if err != nil {
		if !errors.Is(err, operation.ErrZeroHeight) {
			c.logger.Warn("extrude failed", zap.Error(err))
		}
		c.ops.Cancel()
		return
	}
	c.logger.Info("extruded", zap.Stringer("solid", ent.Handle))
}

// revolvePick takes the axis line first, then the profile to sweep
func (c *Controller) revolvePick(px geometry.Pixel) {
	switch c.revolve.step {
	case revolveAxis:
		e, _, ok := c.entityAt(px, kernel.PickEdge)
		if !ok {
			return
		}
		ends := e.Endpoints()
		if e.Kind != scene.Line || len(ends) != 2 {
			c.logger.Debug("revolve axis must be a line", zap.Stringer("kind", e.Kind))
			return
		}
		c.revolve = revolveState{
			step:       revolveProfile,
			axis:       geometry.Axis{Origin: ends[0], Direction: ends[1].Sub(ends[0])},
			axisHandle: e.Handle,
		}
		c.scene.Highlight(e.Handle, true)
		c.hint = "click the profile to revolve"

	case revolveProfile:
		e, _, ok := c.entityAt(px, kernel.PickAny)
		if !ok || e.Handle == c.revolve.axisHandle || !e.Kind.IsCurve() {
			return
		}
		if err := c.ops.BeginRevolve([]*scene.Entity{e}, c.revolve.axis, c.settings.RevolveAngle); err != nil {
			c.logger.Warn("profile rejected", zap.Stringer("kind", e.Kind), zap.Error(err))
			return
		}
		c.revolve.step = revolvePending
		c.hint = "set the angle and press Enter"
	}
}

// commitRevolve builds the pending revolve. On failure the revolve stays
// pending so the angle can be changed.
func (c *Controller) commitRevolve() {
	if c.mode != Revolve || c.revolve.step != revolvePending {
		return
	}
	ent, err := c.ops.CommitRevolve()
	if err != nil {
		c.logger.Warn("revolve failed", zap.Float64("angle", c.settings.RevolveAngle), zap.Error(err))
		return
	}
	c.scene.Highlight(c.revolve.axisHandle, false)
	c.revolve = revolveState{}
	c.hint = Revolve.hint()
	c.logger.Info("revolved", zap.Stringer("solid", ent.Handle))
}

func booleanOp(m Mode) kernel.BooleanOp {
	switch m {
	case BooleanCut:
		return kernel.Cut
	case BooleanIntersect:
		return kernel.Intersect
	default:
		return kernel.Union
	}
}

// booleanPick collects two solids and combines them
func (c *Controller) booleanPick(px geometry.Pixel) {
	e, _, ok := c.entityAt(px, kernel.PickFace)
	if !ok {
		return
	}
	if e.Kind != scene.Solid {
		c.logger.Debug("boolean needs solids", zap.Stringer("kind", e.Kind))
		return
	}
	if !c.pair.set {
		c.selectFirst(e)
		c.hint = "click the second solid"
		return
	}
	if e.Handle == c.pair.first {
		return
	}

	first, ok := c.scene.Get(c.pair.first)
	c.clearPair()
	c.hint = c.mode.hint()
	if !ok {
		return
	}
	op := booleanOp(c.mode)
	if _, err := c.ops.CommitBoolean(op, first, e); err != nil {
		c.logger.Warn("boolean failed", zap.Stringer("op", op), zap.Error(err))
	}
}
