package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
)

// Body is the rigid body the controller steers. The physics collaborator
// integrates it; the controller is the only writer of its velocity.
type Body interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	ApplyImpulse(impulse mgl64.Vec3)
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
}

// GroundProber answers sphere overlap queries against the physics world.
type GroundProber interface {
	OverlapSphere(origin mgl64.Vec3, radius float64, mask common.LayerMask) bool
}

// Animator receives fire-and-forget animation parameters.
type Animator interface {
	SetBool(name string, value bool)
	SetTrigger(name string)
}

// View is the camera movement is made relative to.
type View interface {
	// Yaw is the camera heading in degrees.
	Yaw() float64
}

// ViewResolver finds a default camera when none was assigned.
type ViewResolver func() View

// Clock supplies monotonic simulation time in seconds.
type Clock interface {
	Now() float64
}

// Animation parameter names.
const (
	AnimIsMoving = "isMoving"
	AnimJump     = "isJump"
	AnimAttack   = "attack"
)
