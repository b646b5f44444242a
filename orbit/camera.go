// Package orbit implements a third-person camera that orbits a subject from
// accumulated pointer yaw and pitch, trails it with exponential smoothing and
// always aims at a point just above it.
package orbit

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
)

// Subject is what the camera tracks.
type Subject interface {
	Position() mgl64.Vec3
}

// Camera owns its orientation and pose. Update belongs in the variable-step
// phase, after physics has moved the subject for the frame.
type Camera struct {
	cfg     Config
	subject Subject

	yaw   float64
	pitch float64

	position mgl64.Vec3
	rotation mgl64.Quat

	log *slog.Logger
}

func New(cfg Config, subject Subject) *Camera {
	lg := slog.Default().With("subsystem", "orbit")
	if err := cfg.Validate(); err != nil {
		lg.Warn("invalid config, using defaults", "err", err)
		cfg = DefaultConfig()
	}
	return &Camera{
		cfg:      cfg,
		subject:  subject,
		rotation: mgl64.QuatIdent(),
		log:      lg,
	}
}

func (c *Camera) SetLogger(l *slog.Logger) {
	if c == nil || l == nil {
		return
	}
	c.log = l.With("subsystem", "orbit")
}

func (c *Camera) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// SetConfig swaps tuning and re-clamps pitch into the new bounds.
func (c *Camera) SetConfig(cfg Config) error {
	if c == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.pitch = common.Clamp(c.pitch, cfg.MinPitch, cfg.MaxPitch)
	return nil
}

func (c *Camera) SetSubject(s Subject) {
	if c == nil {
		return
	}
	c.subject = s
}

func (c *Camera) HasSubject() bool {
	return c != nil && c.subject != nil
}

// Update applies pointer deltas and moves the camera one step toward its
// orbit position. Without a subject the camera keeps its last pose.
func (c *Camera) Update(dt, mx, my float64) {
	if c == nil || c.subject == nil {
		return
	}

	c.yaw += mx * c.cfg.Sensitivity * dt
	c.pitch -= my * c.cfg.Sensitivity * dt
	c.pitch = common.Clamp(c.pitch, c.cfg.MinPitch, c.cfg.MaxPitch)

	target := c.subject.Position()
	desired := target.Add(c.Orientation().Rotate(c.cfg.Offset))
	c.position = common.LerpVec3(c.position, desired, c.cfg.SmoothSpeed*dt)
	c.lookAt(target)
}

// Snap places the camera on its orbit position immediately, with no lag.
func (c *Camera) Snap() {
	if c == nil || c.subject == nil {
		return
	}
	target := c.subject.Position()
	c.position = target.Add(c.Orientation().Rotate(c.cfg.Offset))
	c.lookAt(target)
}

// lookAt aims from the current, already smoothed position at the live
// subject, so the aim never lags.
func (c *Camera) lookAt(target mgl64.Vec3) {
	if q, ok := common.LookRotation(c.LookTarget(target).Sub(c.position)); ok {
		c.rotation = q
	}
}

// LookTarget is the point the camera aims at for a subject at target.
func (c *Camera) LookTarget(target mgl64.Vec3) mgl64.Vec3 {
	return target.Add(common.Up.Mul(c.cfg.LookOffset))
}

// Orientation is Euler(pitch, yaw, 0) from the accumulated input.
func (c *Camera) Orientation() mgl64.Quat {
	return common.EulerRotation(c.pitch, c.yaw, 0)
}

// Desired is where the camera is heading this frame.
func (c *Camera) Desired() (mgl64.Vec3, bool) {
	if c == nil || c.subject == nil {
		return mgl64.Vec3{}, false
	}
	return c.subject.Position().Add(c.Orientation().Rotate(c.cfg.Offset)), true
}

// Yaw is the heading of the live look direction in degrees, the angle
// movement is made relative to.
func (c *Camera) Yaw() float64 {
	if c == nil {
		return 0
	}
	return common.Yaw(c.rotation)
}

// OrbitYaw is the accumulated, unbounded input yaw.
func (c *Camera) OrbitYaw() float64 {
	if c == nil {
		return 0
	}
	return c.yaw
}

func (c *Camera) Pitch() float64 {
	if c == nil {
		return 0
	}
	return c.pitch
}

// SetAngles overrides the accumulated orientation, clamping pitch.
func (c *Camera) SetAngles(yaw, pitch float64) {
	if c == nil {
		return
	}
	c.yaw = yaw
	c.pitch = common.Clamp(pitch, c.cfg.MinPitch, c.cfg.MaxPitch)
}

func (c *Camera) Position() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.position
}

func (c *Camera) SetPosition(p mgl64.Vec3) {
	if c == nil {
		return
	}
	c.position = p
}

func (c *Camera) Rotation() mgl64.Quat {
	if c == nil {
		return mgl64.QuatIdent()
	}
	return c.rotation
}

func (c *Camera) Forward() mgl64.Vec3 {
	return c.Rotation().Rotate(common.Forward)
}
