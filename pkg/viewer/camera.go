package viewer

import (
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

// Camera represents a 3D camera for viewing the sketch
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
	Ortho     bool    // Orthographic projection
	Scale     float64 // Pixels per model unit in orthographic mode
}

// NewCamera creates a new perspective camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance < 1 {
		distance = 100
	}

	return &Camera{
		Position: center.Add(geometry.NewVector3(0, 0, distance)),
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4, // 45 degrees
		Distance: distance,
		Scale:    1,
	}
}

// NewTopCamera creates an orthographic camera looking down the -Z axis at the
// origin, one pixel per model unit
func NewTopCamera() *Camera {
	return &Camera{
		Position: geometry.NewVector3(0, 0, 100),
		Target:   geometry.Vector3{},
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: 100,
		Ortho:    true,
		Scale:    1,
	}
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance, or the scale for orthographic cameras
func (c *Camera) Zoom(delta float64) {
	if c.Ortho {
		c.Scale /= 1.0 + delta
		if c.Scale < 1e-3 {
			c.Scale = 1e-3
		}
		return
	}
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// SetTarget moves the camera parallel to the view so it looks at target
func (c *Camera) SetTarget(target geometry.Vector3) {
	offset := target.Sub(c.Target)
	c.Target = target
	c.Position = c.Position.Add(offset)
}

// Basis returns the camera's forward, right and up unit vectors
func (c *Camera) Basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a 3D point to 2D screen coordinates
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.Basis()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if c.Ortho {
		rel := point.Sub(c.Target)
		return rel.Dot(right)*c.Scale + width/2, height/2 - rel.Dot(up)*c.Scale, z
	}

	// Perspective projection
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Unproject converts 2D screen coordinates back to 3D ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) (origin, direction geometry.Vector3) {
	forward, right, up := c.Basis()

	if c.Ortho {
		dx := (screenX - width/2) / c.Scale
		dy := (height/2 - screenY) / c.Scale
		origin = c.Position.Add(right.Mul(dx)).Add(up.Mul(dy))
		return origin, forward
	}

	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	rayDir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))
	return c.Position, rayDir.Normalize()
}

// PixelsPerUnit returns how many pixels one model unit spans at the target
func (c *Camera) PixelsPerUnit(height float64) float64 {
	if c.Ortho {
		return c.Scale
	}
	return height / (2 * c.Distance * math.Tan(c.FOV/2))
}
