package prefabs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/locomotion"
	"github.com/milk9111/thirdperson/orbit"
	"github.com/milk9111/thirdperson/physics"
)

type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 { return mgl64.Vec3(v) }

type TransformComponentSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

func (s TransformComponentSpec) Position() mgl64.Vec3 {
	return mgl64.Vec3{s.X, s.Y, s.Z}
}

type PhysicsBodyComponentSpec struct {
	Radius    float64 `yaml:"radius"`
	Height    float64 `yaml:"height"`
	Mass      float64 `yaml:"mass"`
	Layer     string  `yaml:"layer"`
	NoGravity bool    `yaml:"no_gravity"`
}

func (s PhysicsBodyComponentSpec) BodyConfig(position mgl64.Vec3) physics.BodyConfig {
	cfg := physics.BodyConfig{
		Position:  position,
		Radius:    s.Radius,
		Height:    s.Height,
		Mass:      s.Mass,
		NoGravity: s.NoGravity,
	}
	if s.Layer != "" {
		cfg.Layer = common.LayerNamed(s.Layer)
	}
	return cfg
}

// LocomotionComponentSpec overrides locomotion defaults field by field.
// Omitted keys keep the default.
type LocomotionComponentSpec struct {
	MoveSpeed          *float64 `yaml:"move_speed"`
	TurnSmoothTime     *float64 `yaml:"turn_smooth_time"`
	SpeedSmoothTime    *float64 `yaml:"speed_smooth_time"`
	JumpForce          *float64 `yaml:"jump_force"`
	GroundDistance     *float64 `yaml:"ground_distance"`
	GroundProbeOffset  *float64 `yaml:"ground_probe_offset"`
	GroundMask         []string `yaml:"ground_mask"`
	DashForce          *float64 `yaml:"dash_force"`
	DashDuration       *float64 `yaml:"dash_duration"`
	DashCooldown       *float64 `yaml:"dash_cooldown"`
	AttackCooldown     *float64 `yaml:"attack_cooldown"`
	MoveDeadZone       *float64 `yaml:"move_dead_zone"`
	DashInputThreshold *float64 `yaml:"dash_input_threshold"`
}

func (s LocomotionComponentSpec) Config() (locomotion.Config, error) {
	cfg := locomotion.DefaultConfig()
	set(&cfg.MoveSpeed, s.MoveSpeed)
	set(&cfg.TurnSmoothTime, s.TurnSmoothTime)
	set(&cfg.SpeedSmoothTime, s.SpeedSmoothTime)
	set(&cfg.JumpForce, s.JumpForce)
	set(&cfg.GroundDistance, s.GroundDistance)
	set(&cfg.GroundProbeOffset, s.GroundProbeOffset)
	set(&cfg.DashForce, s.DashForce)
	set(&cfg.DashDuration, s.DashDuration)
	set(&cfg.DashCooldown, s.DashCooldown)
	set(&cfg.AttackCooldown, s.AttackCooldown)
	set(&cfg.MoveDeadZone, s.MoveDeadZone)
	set(&cfg.DashInputThreshold, s.DashInputThreshold)
	if len(s.GroundMask) > 0 {
		cfg.GroundMask = common.MaskOf(s.GroundMask...)
	}
	return cfg, cfg.Validate()
}

type OrbitCameraComponentSpec struct {
	Target      string    `yaml:"target"`
	Offset      *Vec3Spec `yaml:"offset"`
	SmoothSpeed *float64  `yaml:"smooth_speed"`
	Sensitivity *float64  `yaml:"sensitivity"`
	MinPitch    *float64  `yaml:"min_pitch"`
	MaxPitch    *float64  `yaml:"max_pitch"`
	LookOffset  *float64  `yaml:"look_offset"`
	Yaw         float64   `yaml:"yaw"`
	Pitch       float64   `yaml:"pitch"`
}

func (s OrbitCameraComponentSpec) Config() (orbit.Config, error) {
	cfg := orbit.DefaultConfig()
	if s.Offset != nil {
		cfg.Offset = s.Offset.Vec3()
	}
	set(&cfg.SmoothSpeed, s.SmoothSpeed)
	set(&cfg.Sensitivity, s.Sensitivity)
	set(&cfg.MinPitch, s.MinPitch)
	set(&cfg.MaxPitch, s.MaxPitch)
	set(&cfg.LookOffset, s.LookOffset)
	return cfg, cfg.Validate()
}

type InputComponentSpec struct {
	// Script, when set, names a tengo script under scripts/ that replaces
	// device input.
	Script string `yaml:"script"`
}

type LevelSpec struct {
	Name    string                 `yaml:"name"`
	Gravity *float64               `yaml:"gravity"`
	Spawn   TransformComponentSpec `yaml:"spawn"`
	Solids  []SolidSpec            `yaml:"solids"`
}

type SolidSpec struct {
	Name  string   `yaml:"name"`
	Min   Vec3Spec `yaml:"min"`
	Max   Vec3Spec `yaml:"max"`
	Layer string   `yaml:"layer"`
}

func (s SolidSpec) LayerMask() common.LayerMask {
	if s.Layer == "" {
		return common.LayerGround
	}
	return common.LayerNamed(s.Layer)
}

func LoadLevelSpec(name string) (LevelSpec, error) {
	return LoadSpec[LevelSpec](name)
}

func (l LevelSpec) GravityOr(def float64) float64 {
	if l.Gravity == nil {
		return def
	}
	return *l.Gravity
}

func set(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
