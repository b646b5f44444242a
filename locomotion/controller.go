// Package locomotion turns move intent and discrete action events into
// velocity writes on a rigid body: camera-relative walking with smoothed
// speed and turning, grounded jumps, timed dashes and attack triggers.
package locomotion

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
)

// Deps are the collaborators a controller talks to. Every field is optional;
// a missing collaborator only disables the effect that needs it.
type Deps struct {
	Body         Body
	Prober       GroundProber
	Animator     Animator
	View         View
	ViewResolver ViewResolver
	Clock        Clock
	Logger       *slog.Logger
}

// Controller is the per-entity locomotion state. FixedUpdate runs in the
// fixed physics phase; the On* handlers may be called at any point between
// ticks.
type Controller struct {
	cfg Config

	body        Body
	prober      GroundProber
	anim        Animator
	view        View
	resolveView ViewResolver
	resolved    View
	clock       Clock
	log         *slog.Logger

	moveInput mgl64.Vec2
	isMoving  bool
	grounded  bool

	dash           dashState
	lastAttackTime float64

	smoothVelocityXZ   mgl64.Vec2
	turnSmoothVelocity float64

	targetVelocity mgl64.Vec3
	targetAngle    float64
}

// neverFired is the timestamp cooldowns start from so the first request passes.
const neverFired = -999.0

func New(cfg Config, deps Deps) *Controller {
	lg := deps.Logger
	if lg == nil {
		lg = slog.Default()
	}
	lg = lg.With("subsystem", "locomotion")
	if err := cfg.Validate(); err != nil {
		lg.Warn("invalid config, using defaults", "err", err)
		cfg = DefaultConfig()
	}
	return &Controller{
		cfg:            cfg,
		body:           deps.Body,
		prober:         deps.Prober,
		anim:           deps.Animator,
		view:           deps.View,
		resolveView:    deps.ViewResolver,
		clock:          deps.Clock,
		log:            lg,
		dash:           dashState{lastTime: neverFired},
		lastAttackTime: neverFired,
	}
}

// Config returns the active tuning.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// SetConfig swaps tuning without touching runtime state.
func (c *Controller) SetConfig(cfg Config) error {
	if c == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) SetView(v View) {
	if c == nil {
		return
	}
	c.view = v
}

func (c *Controller) SetAnimator(a Animator) {
	if c == nil {
		return
	}
	c.anim = a
}

// Attach points the controller at a (new) body.
func (c *Controller) Attach(b Body) {
	if c == nil {
		return
	}
	c.body = b
}

// Detach drops the body and cancels any dash so nothing writes to an entity
// that is going away.
func (c *Controller) Detach() {
	if c == nil {
		return
	}
	c.cancelDash()
	c.body = nil
}

// Reset clears intent, smoothing state and any dash in progress. Cooldown
// timestamps are kept.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.cancelDash()
	c.moveInput = mgl64.Vec2{}
	c.isMoving = false
	c.smoothVelocityXZ = mgl64.Vec2{}
	c.turnSmoothVelocity = 0
	c.targetVelocity = mgl64.Vec3{}
	c.setBool(AnimIsMoving, false)
}

func (c *Controller) now() float64 {
	if c.clock == nil {
		return 0
	}
	return c.clock.Now()
}

func (c *Controller) Grounded() bool { return c != nil && c.grounded }
func (c *Controller) IsMoving() bool { return c != nil && c.isMoving }

func (c *Controller) LastAttackTime() float64 {
	if c == nil {
		return neverFired
	}
	return c.lastAttackTime
}

func (c *Controller) Intent() mgl64.Vec2 {
	if c == nil {
		return mgl64.Vec2{}
	}
	return c.moveInput
}

// TargetVelocity is the horizontal velocity the last movement tick steered toward.
func (c *Controller) TargetVelocity() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.targetVelocity
}

// TargetAngle is the camera-relative heading of the last moving tick, in degrees.
func (c *Controller) TargetAngle() float64 {
	if c == nil {
		return 0
	}
	return c.targetAngle
}

// FixedUpdate runs one physics step: ground probe, dash expiry and, unless a
// dash owns the velocity, horizontal movement smoothing.
func (c *Controller) FixedUpdate(dt float64) {
	if c == nil {
		return
	}
	c.checkGround()
	c.expireDash()
	if c.dash.active {
		return
	}
	c.move(dt)
}

func (c *Controller) checkGround() {
	if c.body == nil || c.prober == nil {
		c.grounded = false
		return
	}
	origin := c.body.Position().Add(common.Up.Mul(c.cfg.GroundProbeOffset))
	c.grounded = c.prober.OverlapSphere(origin, c.cfg.GroundDistance, c.cfg.GroundMask)
}

func (c *Controller) move(dt float64) {
	if c.body == nil {
		return
	}
	vel := c.body.Velocity()
	horiz := common.Horizontal(vel)

	if c.moveInput.Len() < c.cfg.MoveDeadZone {
		c.targetVelocity = mgl64.Vec3{}
		stop := common.SmoothDampVec2(horiz, mgl64.Vec2{}, &c.smoothVelocityXZ, c.cfg.SpeedSmoothTime, dt)
		c.body.SetVelocity(mgl64.Vec3{stop.X(), vel.Y(), stop.Y()})
		return
	}

	targetAngle := c.heading(c.moveInput)
	current := common.Yaw(c.body.Rotation())
	angle := common.SmoothDampAngle(current, targetAngle, &c.turnSmoothVelocity, c.cfg.TurnSmoothTime, dt)
	c.body.SetRotation(common.YawRotation(angle))

	// velocity follows the target heading, not the smoothed facing
	dir := common.HeadingDirection(targetAngle)
	target := mgl64.Vec2{dir.X(), dir.Z()}.Normalize().Mul(c.cfg.MoveSpeed)
	c.targetAngle = targetAngle
	c.targetVelocity = mgl64.Vec3{target.X(), 0, target.Y()}

	next := common.SmoothDampVec2(horiz, target, &c.smoothVelocityXZ, c.cfg.SpeedSmoothTime, dt)
	c.body.SetVelocity(mgl64.Vec3{next.X(), vel.Y(), next.Y()})
}

// heading converts intent into a world heading in degrees. atan2 takes
// (x, y) so that intent (0, 1) is straight ahead of the camera.
func (c *Controller) heading(intent mgl64.Vec2) float64 {
	return mgl64.RadToDeg(math.Atan2(intent.X(), intent.Y())) + c.cameraYaw()
}

func (c *Controller) cameraYaw() float64 {
	v := c.currentView()
	if v == nil {
		return 0
	}
	return v.Yaw()
}

// currentView prefers the assigned view. Otherwise the resolver is asked on
// every use, so a replaced default camera takes over.
func (c *Controller) currentView() View {
	if c.view != nil {
		return c.view
	}
	if c.resolveView == nil {
		return nil
	}
	v := c.resolveView()
	if v != c.resolved {
		c.resolved = v
		c.log.Debug("default view changed", "found", v != nil)
	}
	return v
}

// OnMove stores the latest move intent.
func (c *Controller) OnMove(v mgl64.Vec2) {
	if c == nil {
		return
	}
	c.moveInput = v
	c.isMoving = v != (mgl64.Vec2{})
	c.setBool(AnimIsMoving, c.isMoving)
}

// OnJump launches the body upward when started while grounded. Requests in
// the air are dropped, not buffered.
func (c *Controller) OnJump(started bool) {
	if c == nil || !started {
		return
	}
	if !c.grounded {
		c.log.Debug("jump ignored", "reason", "airborne")
		return
	}
	if c.body != nil {
		v := c.body.Velocity()
		c.body.SetVelocity(mgl64.Vec3{v.X(), 0, v.Z()})
		c.body.ApplyImpulse(common.Up.Mul(c.cfg.JumpForce))
	}
	c.setTrigger(AnimJump)
}

// OnAttack fires the attack trigger when the cooldown has elapsed.
func (c *Controller) OnAttack(started bool) {
	if c == nil || !started {
		return
	}
	now := c.now()
	if now < c.lastAttackTime+c.cfg.AttackCooldown {
		c.log.Debug("attack ignored", "reason", "cooldown", "ready_at", c.lastAttackTime+c.cfg.AttackCooldown)
		return
	}
	c.lastAttackTime = now
	c.setTrigger(AnimAttack)
}

func (c *Controller) setBool(name string, v bool) {
	if c.anim != nil {
		c.anim.SetBool(name, v)
	}
}

func (c *Controller) setTrigger(name string) {
	if c.anim != nil {
		c.anim.SetTrigger(name)
	}
}
