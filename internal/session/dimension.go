package session

import (
	"fmt"

	"github.com/philipparndt/gosketch/internal/measurement"
	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

func dimensionHint(step measurement.Step) string {
	switch step {
	case measurement.AwaitingSecond:
		return "click the second point"
	case measurement.AwaitingPlacement:
		return "click where the dimension goes"
	}
	return Dimension.hint()
}

// dimensionClick feeds a click into the three click dimension protocol.
// Measured points snap to existing endpoints, the placement does not.
func (c *Controller) dimensionClick(px geometry.Pixel) {
	p, err := c.pointer.resolve(px)
	if err != nil {
		return
	}
	if c.dimension.Step != measurement.AwaitingPlacement {
		p = c.snap.Snap(p)
	}
	if c.pointer.Plane() != nil {
		c.dimension.Normal = c.pointer.Plane().Normal
	} else {
		c.dimension.Normal = c.viewNormal()
	}

	d, done, err := c.dimension.Click(p)
	if err != nil {
		c.logger.Debug("dimension point rejected", zap.Error(err))
		return
	}
	c.hint = dimensionHint(c.dimension.Step)
	if !done {
		return
	}

	c.presenter.Clear()
	if _, err := c.addDimension(d); err != nil {
		c.logger.Warn("dimension not created", zap.Error(err))
	}
}

func (c *Controller) previewDimension(px geometry.Pixel) {
	p, err := c.pointer.resolve(px)
	if err != nil {
		return
	}
	d, ok := c.dimension.Preview(p)
	if !ok {
		c.presenter.Clear()
		return
	}
	c.presenter.Show(viewer.Overlay{
		Kind:   viewer.OverlayPolyline,
		Points: d.Path(),
		Style:  viewer.StyleDimension,
	})
}

// addDimension displays a finished dimension as one wire
func (c *Controller) addDimension(d measurement.Dimension) (*scene.Entity, error) {
	path := d.Path()
	edges := make([]kernel.Shape, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		edge, err := c.kernel.BuildEdge(path[i], path[i+1])
		if err != nil {
			return nil, fmt.Errorf("build dimension line: %w", err)
		}
		edges = append(edges, edge)
	}
	wire, err := c.kernel.BuildWire(edges)
	if err != nil {
		return nil, fmt.Errorf("build dimension: %w", err)
	}

	ent := scene.NewShape(scene.Dimension, wire, viewer.StyleDimension)
	ent.Points = []geometry.Vector3{d.P1, d.P2}
	ent.Label = d.Label.Text
	ent.LabelAt = d.Label.Position
	ent.LabelAngle = d.Label.Angle
	c.scene.Add(ent)
	c.logger.Debug("dimension added", zap.String("value", d.Label.Text))
	return ent, nil
}
