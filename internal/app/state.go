package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// InteractionState holds mouse state between frames
type InteractionState struct {
	buttonDown   bool       // Left button held and forwarded to the session
	lastMousePos rl.Vector2 // Mouse position in the previous frame
	isOrbiting   bool       // Right button drag rotates the view
	isPanning    bool       // Middle button or Shift+right drag moves the view
}

// UIState holds UI-related state
type UIState struct {
	font     rl.Font
	showHelp bool
	message  string // Last replay or status message
}
