package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
)

type fakeBody struct {
	vel      mgl64.Vec3
	pos      mgl64.Vec3
	rot      mgl64.Quat
	mass     float64
	setCalls int
}

func newFakeBody() *fakeBody {
	return &fakeBody{rot: mgl64.QuatIdent(), mass: 1}
}

func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) {
	b.vel = v
	b.setCalls++
}
func (b *fakeBody) ApplyImpulse(j mgl64.Vec3) { b.vel = b.vel.Add(j.Mul(1 / b.mass)) }
func (b *fakeBody) Position() mgl64.Vec3      { return b.pos }
func (b *fakeBody) Rotation() mgl64.Quat      { return b.rot }
func (b *fakeBody) SetRotation(q mgl64.Quat)  { b.rot = q }

type probeCall struct {
	origin mgl64.Vec3
	radius float64
	mask   common.LayerMask
}

type fakeProber struct {
	grounded bool
	calls    []probeCall
}

func (p *fakeProber) OverlapSphere(origin mgl64.Vec3, radius float64, mask common.LayerMask) bool {
	p.calls = append(p.calls, probeCall{origin, radius, mask})
	return p.grounded
}

type fakeAnimator struct {
	bools    map[string]bool
	triggers []string
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{bools: map[string]bool{}}
}

func (a *fakeAnimator) SetBool(name string, v bool) { a.bools[name] = v }
func (a *fakeAnimator) SetTrigger(name string)      { a.triggers = append(a.triggers, name) }

type fakeView struct {
	yaw float64
}

func (v fakeView) Yaw() float64 { return v.yaw }
