package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// keyNames maps raylib keys to the key names the session understands
var keyNames = map[int32]string{
	rl.KeyEscape:    session.KeyEscape,
	rl.KeyEnter:     session.KeyEnter,
	rl.KeyKpEnter:   session.KeyEnter,
	rl.KeyBackspace: session.KeyBackspace,
	rl.KeyDelete:    session.KeyBackspace,
}

func init() {
	for k := int32(rl.KeyA); k <= rl.KeyZ; k++ {
		keyNames[k] = string(rune('A' + k - rl.KeyA))
	}
}

// keyName returns the session name of a raylib key
func keyName(key int32) (string, bool) {
	name, ok := keyNames[key]
	return name, ok
}

func toPixel(v rl.Vector2) geometry.Pixel {
	return geometry.NewPixel(int(v.X), int(v.Y))
}

// handleInput processes user input
func (app *App) handleInput() {
	mouse := rl.GetMousePosition()
	px := toPixel(mouse)
	moved := mouse != app.Interaction.lastMousePos
	app.Interaction.lastMousePos = mouse

	// Camera view presets
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraTiltedView()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.UI.showHelp = !app.UI.showHelp
	}

	for key := range keyNames {
		if !rl.IsKeyReleased(key) {
			continue
		}
		name, _ := keyName(key)
		if name == "H" {
			continue
		}
		app.Session.OnKeyUp(name)
	}

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		app.Interaction.isPanning = shiftPressed
		app.Interaction.isOrbiting = !shiftPressed
	}
	if rl.IsMouseButtonReleased(rl.MouseRightButton) {
		app.Interaction.isPanning = false
		app.Interaction.isOrbiting = false
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		switch {
		case rl.IsMouseButtonDown(rl.MouseMiddleButton), app.Interaction.isPanning:
			app.doPan(delta)
		case app.Interaction.isOrbiting:
			app.doOrbit(delta)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel)
	}

	// Left button drives the session
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.buttonDown = true
		app.Session.OnPointerDown(px)
	}
	if moved {
		app.Session.OnPointerMove(px, app.Interaction.buttonDown)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.Interaction.buttonDown {
		app.Interaction.buttonDown = false
		app.Session.OnPointerUp(px)
	}
}
