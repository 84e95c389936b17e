package session

import (
	"github.com/philipparndt/gosketch/internal/snap"
	"github.com/philipparndt/gosketch/internal/solver"
	"go.uber.org/zap"
)

// Settings are the tunable constants of a session
type Settings struct {
	SnapTolerance     float64 // Snap radius in model units
	MatchTolerance    float64 // Distance at which chain points coincide
	DegenerateEpsilon float64 // Shortest drag that creates geometry
	FilletRadius      float64
	RevolveAngle      float64 // Degrees
	ZoomSteps         int     // Frames of the zoom window animation
	ZoomMargin        int     // Pixels added around the zoom window
}

// DefaultSettings returns the settings used when none are given
func DefaultSettings() Settings {
	return Settings{
		SnapTolerance:     snap.DefaultTolerance,
		MatchTolerance:    snap.DefaultMatchTolerance,
		DegenerateEpsilon: 1e-9,
		FilletRadius:      solver.DefaultFilletRadius,
		RevolveAngle:      solver.DefaultRevolveAngle,
		ZoomSteps:         30,
		ZoomMargin:        10,
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSettings replaces the default settings
func WithSettings(s Settings) Option {
	return func(c *Controller) { c.settings = s }
}
