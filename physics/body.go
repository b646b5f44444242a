package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
)

// BodyConfig describes a dynamic upright capsule-ish body. Position is the
// point at the body's feet.
type BodyConfig struct {
	Position  mgl64.Vec3
	Radius    float64
	Height    float64
	Mass      float64
	Layer     common.LayerMask
	NoGravity bool
}

func (c BodyConfig) withDefaults() BodyConfig {
	if c.Radius <= 0 {
		c.Radius = 0.5
	}
	if c.Height <= 0 {
		c.Height = 2
	}
	if c.Mass <= 0 {
		c.Mass = 1
	}
	if c.Layer == 0 {
		c.Layer = common.LayerPlayer
	}
	return c
}

// Body is a dynamic body in a World. Its rotation is only ever set by the
// owner; the simulation never spins it.
type Body struct {
	world *World
	body  *cp.Body
	shape *cp.Shape

	y        float64
	vy       float64
	radius   float64
	height   float64
	mass     float64
	layer    common.LayerMask
	rotation mgl64.Quat
	grounded bool
	removed  bool

	UseGravity bool
}

// Velocity returns the world-space velocity.
func (b *Body) Velocity() mgl64.Vec3 {
	if b == nil || b.removed {
		return mgl64.Vec3{}
	}
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	if b == nil || b.removed {
		return
	}
	b.body.SetVelocity(v.X(), v.Z())
	b.vy = v.Y()
}

// ApplyImpulse changes velocity by impulse / mass immediately.
func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	if b == nil || b.removed {
		return
	}
	b.SetVelocity(b.Velocity().Add(impulse.Mul(1 / b.mass)))
}

// Position returns the point at the body's feet.
func (b *Body) Position() mgl64.Vec3 {
	if b == nil || b.removed {
		return mgl64.Vec3{}
	}
	p := b.body.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	if b == nil || b.removed {
		return
	}
	b.body.SetPosition(cp.Vector{X: p.X(), Y: p.Z()})
	b.y = p.Y()
}

func (b *Body) Rotation() mgl64.Quat {
	if b == nil {
		return mgl64.QuatIdent()
	}
	return b.rotation
}

func (b *Body) SetRotation(q mgl64.Quat) {
	if b == nil || b.removed {
		return
	}
	b.rotation = q.Normalize()
}

// Forward is the body's facing direction.
func (b *Body) Forward() mgl64.Vec3 {
	return b.Rotation().Rotate(common.Forward)
}

// Grounded reports whether the last step ended with the body resting on a solid.
func (b *Body) Grounded() bool {
	return b != nil && b.grounded
}

func (b *Body) Radius() float64 {
	if b == nil {
		return 0
	}
	return b.radius
}

func (b *Body) Height() float64 {
	if b == nil {
		return 0
	}
	return b.height
}

func (b *Body) Mass() float64 {
	if b == nil {
		return 0
	}
	return b.mass
}

func (b *Body) Layer() common.LayerMask {
	if b == nil {
		return 0
	}
	return b.layer
}

// Removed reports whether the body was taken out of its world.
func (b *Body) Removed() bool {
	return b == nil || b.removed
}
