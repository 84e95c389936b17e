package session

import (
	"fmt"
	"strings"
)

// Mode is the active interactive tool
type Mode int

const (
	Idle Mode = iota
	DrawLine
	DrawCircle
	DrawRectangle
	DrawEllipse
	Trim
	Fillet
	Extrude
	Revolve
	Move
	Rotate
	MateAlign
	BooleanUnion
	BooleanCut
	BooleanIntersect
	Dimension
	ZoomWindow
)

var modeNames = map[Mode]string{
	Idle:             "idle",
	DrawLine:         "line",
	DrawCircle:       "circle",
	DrawRectangle:    "rectangle",
	DrawEllipse:      "ellipse",
	Trim:             "trim",
	Fillet:           "fillet",
	Extrude:          "extrude",
	Revolve:          "revolve",
	Move:             "move",
	Rotate:           "rotate",
	MateAlign:        "mate",
	BooleanUnion:     "union",
	BooleanCut:       "cut",
	BooleanIntersect: "intersect",
	Dimension:        "dimension",
	ZoomWindow:       "zoom",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Modes returns every mode in declaration order
func Modes() []Mode {
	out := make([]Mode, 0, len(modeNames))
	for m := Idle; m <= ZoomWindow; m++ {
		out = append(out, m)
	}
	return out
}

// ParseMode returns the mode with the given name, ignoring case
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return Idle, fmt.Errorf("unknown mode %q", name)
}

// keyModes maps key names to the mode they switch to
var keyModes = map[string]Mode{
	"L": DrawLine,
	"C": DrawCircle,
	"Q": DrawRectangle,
	"E": DrawEllipse,
	"T": Trim,
	"F": Fillet,
	"S": Extrude,
	"W": Revolve,
	"M": Move,
	"R": Rotate,
	"P": MateAlign,
	"U": BooleanUnion,
	"D": BooleanCut,
	"I": BooleanIntersect,
	"O": Dimension,
	"Z": ZoomWindow,
}

// Key names with a fixed meaning besides the mode keys
const (
	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
)

// KeyMode returns the mode bound to key
func KeyMode(key string) (Mode, bool) {
	m, ok := keyModes[strings.ToUpper(key)]
	return m, ok
}

// IsDrawing reports whether the mode creates sketch curves by dragging
func (m Mode) IsDrawing() bool {
	switch m {
	case DrawLine, DrawCircle, DrawRectangle, DrawEllipse:
		return true
	}
	return false
}

// hint is the cursor hint shown when the mode is entered
func (m Mode) hint() string {
	switch m {
	case DrawLine:
		return "drag to draw a line"
	case DrawCircle:
		return "drag from the center to set the radius"
	case DrawRectangle:
		return "drag from corner to corner"
	case DrawEllipse:
		return "drag the bounding box of the ellipse"
	case Trim:
		return "click the part of a line to remove"
	case Fillet:
		return "click the first line"
	case Extrude:
		return "press on a closed profile and drag up or down"
	case Revolve:
		return "click the axis line"
	case Move:
		return "drag an object"
	case Rotate:
		return "drag an object to rotate it"
	case MateAlign:
		return "click the face to move"
	case BooleanUnion, BooleanCut, BooleanIntersect:
		return "click the first solid"
	case Dimension:
		return "click the first point"
	case ZoomWindow:
		return "drag the area to zoom to"
	}
	return ""
}
