package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

const (
	orbitSpeed = 0.01
	zoomSpeed  = 0.1
)

// resetCameraView returns to the top view of the origin at one pixel per unit
func (app *App) resetCameraView() {
	cam := app.View.Camera()
	cam.RotationX = 0
	cam.RotationY = 0
	cam.Scale = 1
	cam.Target = geometry.Vector3{}
	cam.UpdatePosition()
}

// setCameraTiltedView looks at the target from above the front right corner
func (app *App) setCameraTiltedView() {
	cam := app.View.Camera()
	cam.RotationX = -0.6
	cam.RotationY = 0.6
	cam.UpdatePosition()
}

// doOrbit rotates the camera about its target by mouse delta
func (app *App) doOrbit(delta rl.Vector2) {
	app.View.Camera().Rotate(float64(delta.Y)*orbitSpeed, -float64(delta.X)*orbitSpeed)
}

// doPan moves the camera target so the model follows the mouse
func (app *App) doPan(delta rl.Vector2) {
	_, right, up := app.View.Camera().Basis()
	scale := app.View.Scale()

	move := right.Mul(-float64(delta.X) / scale).Add(up.Mul(float64(delta.Y) / scale))
	app.View.SetCenter(app.View.Center().Add(move))
}

// doZoom scales the view by mouse wheel steps
func (app *App) doZoom(wheel float32) {
	app.View.Camera().Zoom(-float64(wheel) * zoomSpeed)
}
