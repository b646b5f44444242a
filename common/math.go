package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Minimum smoothing time accepted by the SmoothDamp family.
const minSmoothTime = 0.0001

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// LerpVec3 interpolates from a toward b with t clamped into [0, 1].
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference between two angles in degrees.
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// SmoothDamp moves current toward target as a critically damped spring that
// settles in roughly smoothTime seconds. velocity carries the spring state
// between calls and must be owned by the caller.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTarget := target
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// never overshoot
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		*velocity = (output - originalTarget) / dt
	}
	return output
}

// SmoothDampAngle is SmoothDamp for angles in degrees, taking the shortest
// path around the circle.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}

// SmoothDampVec2 smooths a 2D vector as a whole so the overshoot check is
// done along the travel direction rather than per axis.
func SmoothDampVec2(current, target mgl64.Vec2, velocity *mgl64.Vec2, smoothTime, dt float64) mgl64.Vec2 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	originalTarget := target
	target = current.Sub(change)

	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(decay)
	output := target.Add(change.Add(temp).Mul(decay))

	toTarget := originalTarget.Sub(current)
	past := output.Sub(originalTarget)
	if toTarget.Dot(past) > 0 {
		output = originalTarget
		*velocity = output.Sub(originalTarget).Mul(1 / dt)
	}
	return output
}

// Horizontal drops the vertical component of v into the X/Z plane.
func Horizontal(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v.X(), v.Z()}
}

// HeadingDirection returns the unit forward vector rotated by yaw degrees
// around the up axis.
func HeadingDirection(yaw float64) mgl64.Vec3 {
	return YawRotation(yaw).Rotate(Forward)
}

// YawRotation builds Euler(0, yaw, 0).
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), Up)
}

// EulerRotation builds Euler(pitch, yaw, roll) applying roll, then pitch,
// then yaw.
func EulerRotation(pitch, yaw, roll float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), Up)
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), Right)
	qz := mgl64.QuatRotate(mgl64.DegToRad(roll), Forward)
	return qy.Mul(qx).Mul(qz)
}

// Yaw returns the heading of q in degrees within [0, 360).
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	if math.Abs(f.X()) < 1e-12 && math.Abs(f.Z()) < 1e-12 {
		return 0
	}
	return Repeat(mgl64.RadToDeg(math.Atan2(f.X(), f.Z())), 360)
}

// LookRotation returns the yaw/pitch rotation whose forward axis points
// along dir. ok is false when dir is too short to define a direction.
func LookRotation(dir mgl64.Vec3) (q mgl64.Quat, ok bool) {
	if dir.Len() < 1e-9 {
		return mgl64.QuatIdent(), false
	}
	dir = dir.Normalize()
	yaw := mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z()))
	flat := math.Hypot(dir.X(), dir.Z())
	pitch := mgl64.RadToDeg(math.Atan2(-dir.Y(), flat))
	return EulerRotation(pitch, yaw, 0), true
}
