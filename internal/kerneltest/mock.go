// Package kerneltest provides a testify mock of the geometry kernel.
package kerneltest

import (
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/stretchr/testify/mock"
)

// Shape is a stand-in kernel shape
type Shape struct {
	Name string
	K    kernel.ShapeKind
}

func (s *Shape) Kind() kernel.ShapeKind { return s.K }

// NewSolid returns a named solid shape
func NewSolid(name string) *Shape {
	return &Shape{Name: name, K: kernel.KindSolid}
}

// MockKernel records kernel calls. Unexpected calls fail the test.
type MockKernel struct {
	mock.Mock
}

var _ kernel.Kernel = (*MockKernel)(nil)

func shapeResult(args mock.Arguments) (kernel.Shape, error) {
	s, _ := args.Get(0).(kernel.Shape)
	return s, args.Error(1)
}

func (m *MockKernel) BuildEdge(p1, p2 geometry.Vector3) (kernel.Shape, error) {
	return shapeResult(m.Called(p1, p2))
}

func (m *MockKernel) BuildArc(start, center, end geometry.Vector3) (kernel.Shape, error) {
	return shapeResult(m.Called(start, center, end))
}

func (m *MockKernel) BuildCircle(center, normal geometry.Vector3, radius float64) (kernel.Shape, error) {
	return shapeResult(m.Called(center, normal, radius))
}

func (m *MockKernel) BuildEllipse(center, uDir, vDir geometry.Vector3, radiusU, radiusV float64) (kernel.Shape, error) {
	return shapeResult(m.Called(center, uDir, vDir, radiusU, radiusV))
}

func (m *MockKernel) BuildWire(edges []kernel.Shape) (kernel.Shape, error) {
	return shapeResult(m.Called(edges))
}

func (m *MockKernel) BuildFace(wire kernel.Shape) (kernel.Shape, error) {
	return shapeResult(m.Called(wire))
}

func (m *MockKernel) Extrude(face kernel.Shape, v geometry.Vector3) (kernel.Shape, error) {
	return shapeResult(m.Called(face, v))
}

func (m *MockKernel) Revolve(face kernel.Shape, axis geometry.Axis, angleDeg float64) (kernel.Shape, error) {
	return shapeResult(m.Called(face, axis, angleDeg))
}

func (m *MockKernel) Boolean(op kernel.BooleanOp, a, b kernel.Shape) (kernel.Shape, error) {
	return shapeResult(m.Called(op, a, b))
}

func (m *MockKernel) Transform(s kernel.Shape, t geometry.Transform) (kernel.Shape, error) {
	return shapeResult(m.Called(s, t))
}

func (m *MockKernel) Vertices(s kernel.Shape) []geometry.Vector3 {
	v, _ := m.Called(s).Get(0).([]geometry.Vector3)
	return v
}

func (m *MockKernel) FacePlane(face kernel.Shape) (geometry.Plane, bool) {
	args := m.Called(face)
	p, _ := args.Get(0).(geometry.Plane)
	return p, args.Bool(1)
}

func (m *MockKernel) Bounds(s kernel.Shape) geometry.BoundingBox {
	b, _ := m.Called(s).Get(0).(geometry.BoundingBox)
	return b
}

func (m *MockKernel) Polylines(s kernel.Shape) [][]geometry.Vector3 {
	p, _ := m.Called(s).Get(0).([][]geometry.Vector3)
	return p
}

func (m *MockKernel) RayCast(s kernel.Shape, ray geometry.Ray, filter kernel.PickFilter, tolerance float64) (kernel.Hit, bool) {
	args := m.Called(s, ray, filter, tolerance)
	h, _ := args.Get(0).(kernel.Hit)
	return h, args.Bool(1)
}
