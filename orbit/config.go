package orbit

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidConfig = errors.New("orbit: invalid config")

// Config is the camera tuning. Angles are in degrees.
type Config struct {
	// Offset is the camera position relative to the subject before rotation.
	Offset      mgl64.Vec3
	SmoothSpeed float64
	Sensitivity float64
	MinPitch    float64
	MaxPitch    float64
	// LookOffset raises the look-at point above the subject's origin.
	LookOffset float64
}

func DefaultConfig() Config {
	return Config{
		Offset:      mgl64.Vec3{0, 2, -4},
		SmoothSpeed: 5,
		Sensitivity: 100,
		MinPitch:    -35,
		MaxPitch:    60,
		LookOffset:  1.5,
	}
}

func (c Config) Validate() error {
	if c.MinPitch > c.MaxPitch {
		return fmt.Errorf("%w: min_pitch %v above max_pitch %v", ErrInvalidConfig, c.MinPitch, c.MaxPitch)
	}
	if c.MinPitch < -90 || c.MaxPitch > 90 {
		return fmt.Errorf("%w: pitch bounds [%v, %v] outside [-90, 90]", ErrInvalidConfig, c.MinPitch, c.MaxPitch)
	}
	if c.SmoothSpeed < 0 {
		return fmt.Errorf("%w: smooth_speed must not be negative, got %v", ErrInvalidConfig, c.SmoothSpeed)
	}
	if c.Sensitivity < 0 {
		return fmt.Errorf("%w: sensitivity must not be negative, got %v", ErrInvalidConfig, c.Sensitivity)
	}
	return nil
}
