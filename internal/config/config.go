package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/philipparndt/gosketch/internal/session"
)

type Config struct {
	Session SessionConfig
	Log     LogConfig
}

type SessionConfig struct {
	SnapTolerance     float64 `validate:"gt=0"`
	MatchTolerance    float64 `validate:"gt=0"`
	DegenerateEpsilon float64 `validate:"gt=0"`
	FilletRadius      float64 `validate:"gt=0"`
	RevolveAngle      float64 `validate:"gt=0,lte=360"`
	ZoomSteps         int     `validate:"gte=1,lte=600"`
	ZoomMargin        int     `validate:"gte=0"`
}

type LogConfig struct {
	Level       string `validate:"oneof=debug info warn error"`
	FilePath    string
	Environment string `validate:"oneof=development production"`
}

// Load reads .env from the working directory, when present, and the process
// environment. The result is validated.
func Load() (*Config, error) {
	return LoadFiles()
}

// LoadFiles is Load with explicit .env files
func LoadFiles(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	defaults := session.DefaultSettings()
	cfg := &Config{
		Session: SessionConfig{
			SnapTolerance:     getEnvAsFloat("GOSKETCH_SNAP_TOLERANCE", defaults.SnapTolerance),
			MatchTolerance:    getEnvAsFloat("GOSKETCH_MATCH_TOLERANCE", defaults.MatchTolerance),
			DegenerateEpsilon: getEnvAsFloat("GOSKETCH_DEGENERATE_EPSILON", defaults.DegenerateEpsilon),
			FilletRadius:      getEnvAsFloat("GOSKETCH_FILLET_RADIUS", defaults.FilletRadius),
			RevolveAngle:      getEnvAsFloat("GOSKETCH_REVOLVE_ANGLE", defaults.RevolveAngle),
			ZoomSteps:         getEnvAsInt("GOSKETCH_ZOOM_STEPS", defaults.ZoomSteps),
			ZoomMargin:        getEnvAsInt("GOSKETCH_ZOOM_MARGIN", defaults.ZoomMargin),
		},
		Log: LogConfig{
			Level:       getEnv("GOSKETCH_LOG_LEVEL", "info"),
			FilePath:    getEnv("GOSKETCH_LOG_FILE", ""),
			Environment: getEnv("GOSKETCH_ENV", "development"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value against its allowed range
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Settings returns the session settings
func (c *Config) Settings() session.Settings {
	return session.Settings{
		SnapTolerance:     c.Session.SnapTolerance,
		MatchTolerance:    c.Session.MatchTolerance,
		DegenerateEpsilon: c.Session.DegenerateEpsilon,
		FilletRadius:      c.Session.FilletRadius,
		RevolveAngle:      c.Session.RevolveAngle,
		ZoomSteps:         c.Session.ZoomSteps,
		ZoomMargin:        c.Session.ZoomMargin,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
