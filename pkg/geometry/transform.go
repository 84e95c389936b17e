package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid placement stored as a homogeneous 4x4 matrix.
// The zero Transform is the identity.
type Transform struct {
	m   mgl64.Mat4
	set bool
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{}
}

// FromMatrix wraps a homogeneous matrix
func FromMatrix(m mgl64.Mat4) Transform {
	return Transform{m: m, set: true}
}

// Translation returns a transform moving every point by v
func Translation(v Vector3) Transform {
	return FromMatrix(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// Rotation returns a rotation of angle radians about axis (right-handed)
func Rotation(axis Axis, angle float64) Transform {
	dir := axis.Direction.Normalize()
	if dir.Length() == 0 {
		return Identity()
	}
	o := axis.Origin
	r := mgl64.HomogRotate3D(angle, mgl64.Vec3{dir.X, dir.Y, dir.Z})
	m := mgl64.Translate3D(o.X, o.Y, o.Z).Mul4(r).Mul4(mgl64.Translate3D(-o.X, -o.Y, -o.Z))
	return FromMatrix(m)
}

// Matrix returns the underlying homogeneous matrix
func (t Transform) Matrix() mgl64.Mat4 {
	if !t.set {
		return mgl64.Ident4()
	}
	return t.m
}

// Mul returns t · other, the transform that applies other first and then t
func (t Transform) Mul(other Transform) Transform {
	if !t.set {
		return other
	}
	if !other.set {
		return t
	}
	return FromMatrix(t.m.Mul4(other.m))
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	if !t.set {
		return t
	}
	return FromMatrix(t.m.Inv())
}

// Apply transforms a point
func (t Transform) Apply(p Vector3) Vector3 {
	if !t.set {
		return p
	}
	r := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, p.Z}, t.m)
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// ApplyVector transforms a direction, ignoring the translation part
func (t Transform) ApplyVector(v Vector3) Vector3 {
	if !t.set {
		return v
	}
	r := mgl64.TransformNormal(mgl64.Vec3{v.X, v.Y, v.Z}, t.m)
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// TranslationPart returns where the origin is moved to
func (t Transform) TranslationPart() Vector3 {
	c := t.Matrix().Col(3)
	return Vector3{X: c[0], Y: c[1], Z: c[2]}
}

// IsIdentity reports whether t is the identity within tol
func (t Transform) IsIdentity(tol float64) bool {
	return t.ApproxEqual(Identity(), tol)
}

// ApproxEqual compares two transforms element-wise with the absolute
// tolerance tol
func (t Transform) ApproxEqual(other Transform, tol float64) bool {
	return t.Matrix().ApproxFuncEqual(other.Matrix(), func(a, b float64) bool {
		return math.Abs(a-b) <= tol
	})
}

// RotationAngle returns the rotation angle in radians of the linear part
func (t Transform) RotationAngle() float64 {
	m := t.Matrix()
	trace := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	c := (trace - 1) / 2
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

func (t Transform) String() string {
	if !t.set {
		return "identity"
	}
	return fmt.Sprintf("rotate %.3f° translate %s", t.RotationAngle()*180/math.Pi, t.TranslationPart())
}
