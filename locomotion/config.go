package locomotion

import (
	"errors"
	"fmt"

	"github.com/milk9111/thirdperson/common"
)

var ErrInvalidConfig = errors.New("locomotion: invalid config")

// Config holds the controller tuning. Times are in seconds, angles in degrees.
type Config struct {
	MoveSpeed       float64
	TurnSmoothTime  float64
	SpeedSmoothTime float64
	JumpForce       float64

	GroundDistance    float64 // probe radius
	GroundProbeOffset float64 // probe origin height above the feet
	GroundMask        common.LayerMask

	DashForce    float64
	DashDuration float64
	DashCooldown float64

	AttackCooldown float64

	// MoveDeadZone is compared against the intent magnitude.
	MoveDeadZone float64
	// DashInputThreshold is compared against the squared intent magnitude.
	DashInputThreshold float64
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:          6,
		TurnSmoothTime:     0.1,
		SpeedSmoothTime:    0.1,
		JumpForce:          6,
		GroundDistance:     0.3,
		GroundProbeOffset:  0.1,
		GroundMask:         common.LayerGround,
		DashForce:          20,
		DashDuration:       0.2,
		DashCooldown:       1,
		AttackCooldown:     0.5,
		MoveDeadZone:       0.1,
		DashInputThreshold: 0.1,
	}
}

// Validate rejects negative tuning values.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"move_speed", c.MoveSpeed},
		{"turn_smooth_time", c.TurnSmoothTime},
		{"speed_smooth_time", c.SpeedSmoothTime},
		{"jump_force", c.JumpForce},
		{"ground_distance", c.GroundDistance},
		{"dash_force", c.DashForce},
		{"dash_duration", c.DashDuration},
		{"dash_cooldown", c.DashCooldown},
		{"attack_cooldown", c.AttackCooldown},
		{"move_dead_zone", c.MoveDeadZone},
		{"dash_input_threshold", c.DashInputThreshold},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}
