package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
)

// DashPhase is the state of the dash machine.
type DashPhase int

const (
	DashIdle DashPhase = iota
	DashActive
)

func (p DashPhase) String() string {
	switch p {
	case DashIdle:
		return "idle"
	case DashActive:
		return "dashing"
	default:
		return "unknown"
	}
}

// dashState tracks the dash window as a deadline on the simulation clock.
type dashState struct {
	active   bool
	lastTime float64
	until    float64
}

// IsDashing reports whether the dash window [start, start+duration) contains
// the current clock time.
func (c *Controller) IsDashing() bool {
	if c == nil || !c.dash.active {
		return false
	}
	return c.now() < c.dash.until
}

func (c *Controller) DashPhase() DashPhase {
	if c.IsDashing() {
		return DashActive
	}
	return DashIdle
}

func (c *Controller) LastDashTime() float64 {
	if c == nil {
		return neverFired
	}
	return c.dash.lastTime
}

// DashEndsAt is the deadline of the current or last dash.
func (c *Controller) DashEndsAt() float64 {
	if c == nil {
		return 0
	}
	return c.dash.until
}

// OnDash starts a dash when started, off cooldown and not already dashing.
// Airborne dashes are allowed.
func (c *Controller) OnDash(started bool) {
	if c == nil || !started {
		return
	}
	now := c.now()
	if now < c.dash.lastTime+c.cfg.DashCooldown {
		c.log.Debug("dash ignored", "reason", "cooldown", "ready_at", c.dash.lastTime+c.cfg.DashCooldown)
		return
	}
	if c.IsDashing() {
		c.log.Debug("dash ignored", "reason", "already dashing")
		return
	}
	c.beginDash(now)
}

func (c *Controller) beginDash(now float64) {
	dir := c.dashDirection()
	if c.body != nil {
		v := c.body.Velocity()
		c.body.SetVelocity(mgl64.Vec3{dir.X() * c.cfg.DashForce, v.Y(), dir.Z() * c.cfg.DashForce})
	}
	c.dash.lastTime = now
	c.dash.until = now + c.cfg.DashDuration
	c.dash.active = true
	c.log.Debug("dash started", "dir", dir, "until", c.dash.until)
}

// dashDirection uses the camera-relative intent heading when there is enough
// intent, the body's facing otherwise, and world forward when neither
// defines a direction.
func (c *Controller) dashDirection() mgl64.Vec3 {
	var dir mgl64.Vec3
	if c.moveInput.Dot(c.moveInput) > c.cfg.DashInputThreshold {
		dir = common.HeadingDirection(c.heading(c.moveInput))
	} else if c.body != nil {
		dir = c.body.Rotation().Rotate(common.Forward)
	}
	dir = mgl64.Vec3{dir.X(), 0, dir.Z()}
	if dir.Len() < 1e-6 {
		return common.Forward
	}
	return dir.Normalize()
}

// expireDash closes the dash window once its deadline has passed. The
// velocity the dash set is left alone.
func (c *Controller) expireDash() {
	if !c.dash.active || c.now() < c.dash.until {
		return
	}
	c.dash.active = false
	c.log.Debug("dash ended", "at", c.now())
}

func (c *Controller) cancelDash() {
	if !c.dash.active {
		return
	}
	c.dash.active = false
	c.dash.until = c.now()
	c.log.Debug("dash cancelled")
}
