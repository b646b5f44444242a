package locomotion

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashCooldownScenario(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.body.rot = common.YawRotation(0)

	r.ctrl.OnDash(true)
	require.True(t, r.ctrl.IsDashing())
	assert.Equal(t, 0.0, r.ctrl.LastDashTime())
	assert.True(t, r.body.vel.ApproxEqual(mgl64.Vec3{0, 0, 20}))

	r.clock.Set(0.5)
	r.body.vel = mgl64.Vec3{1, 2, 3}
	calls := r.body.setCalls
	r.ctrl.OnDash(true)
	assert.False(t, r.ctrl.IsDashing())
	assert.Equal(t, 0.0, r.ctrl.LastDashTime())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, r.body.vel)
	assert.Equal(t, calls, r.body.setCalls)

	r.clock.Set(1.1)
	r.ctrl.OnDash(true)
	assert.True(t, r.ctrl.IsDashing())
	assert.Equal(t, 1.1, r.ctrl.LastDashTime())
	assert.InDelta(t, 1.3, r.ctrl.DashEndsAt(), 1e-12)
}

func TestDashReleaseIsIgnored(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.ctrl.OnDash(false)
	assert.False(t, r.ctrl.IsDashing())
	assert.Equal(t, neverFired, r.ctrl.LastDashTime())
}

func TestDashCannotRetriggerMidDash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DashCooldown = 0
	cfg.DashDuration = 0.5
	r := newRig(t, cfg, 0)

	r.ctrl.OnDash(true)
	r.clock.Set(0.1)
	r.ctrl.OnDash(true)
	assert.Equal(t, 0.0, r.ctrl.LastDashTime())
	assert.InDelta(t, 0.5, r.ctrl.DashEndsAt(), 1e-12)

	r.clock.Set(0.5)
	r.ctrl.OnDash(true)
	assert.Equal(t, 0.5, r.ctrl.LastDashTime())
}

func TestDashWindowIsIndependentOfTickRate(t *testing.T) {
	for _, dt := range []float64{1.0 / 240, 1.0 / 60, 1.0 / 30, 0.15, 0.5} {
		t.Run(fmt.Sprintf("dt=%g", dt), func(t *testing.T) {
			r := newRig(t, DefaultConfig(), 0)
			r.ctrl.OnDash(true)
			start := r.clock.Now()
			for r.clock.Now() < 1 {
				now := r.clock.Now()
				want := now >= start && now < start+r.ctrl.Config().DashDuration
				require.Equal(t, want, r.ctrl.IsDashing(), "t=%v", now)
				r.clock.Advance(dt)
				r.ctrl.FixedUpdate(dt)
			}
			assert.Equal(t, DashIdle, r.ctrl.DashPhase())
		})
	}
}

func TestDashOwnsVelocity(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.ctrl.OnMove(mgl64.Vec2{1, 0})
	r.ctrl.OnDash(true)
	dashVel := r.body.vel
	calls := r.body.setCalls

	// 0.2s dash at 60Hz: ticks until the deadline leave velocity alone
	for r.clock.Now()+common.FixedDelta < 0.2-1e-9 {
		r.tick(1)
		require.True(t, r.ctrl.IsDashing())
		require.Equal(t, dashVel, r.body.vel)
		require.Equal(t, calls, r.body.setCalls)
	}

	r.tick(2)
	assert.False(t, r.ctrl.IsDashing())
	assert.Greater(t, r.body.setCalls, calls, "smoothing resumes after the dash")
	assert.Less(t, r.body.vel.X(), dashVel.X())
}

func TestDashExitKeepsVelocity(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.ctrl.Detach()
	r.ctrl.Attach(r.body)
	r.ctrl.OnDash(true)
	dashVel := r.body.vel

	r.clock.Set(0.2)
	r.ctrl.expireDash()
	assert.False(t, r.ctrl.IsDashing())
	assert.Equal(t, dashVel, r.body.vel)
}

func TestDashDirection(t *testing.T) {
	cases := []struct {
		name   string
		intent mgl64.Vec2
		yaw    float64
		facing mgl64.Quat
		want   mgl64.Vec3
	}{
		{"intent_right", mgl64.Vec2{1, 0}, 0, mgl64.QuatIdent(), mgl64.Vec3{20, -1, 0}},
		{"intent_forward_cam_left", mgl64.Vec2{0, 1}, -90, mgl64.QuatIdent(), mgl64.Vec3{-20, -1, 0}},
		{"no_intent_uses_facing", mgl64.Vec2{}, 0, common.YawRotation(90), mgl64.Vec3{20, -1, 0}},
		{"weak_intent_uses_facing", mgl64.Vec2{0.2, 0.2}, 0, common.YawRotation(180), mgl64.Vec3{0, -1, -20}},
		{"degenerate_facing", mgl64.Vec2{}, 0, common.EulerRotation(-90, 0, 0), mgl64.Vec3{0, -1, 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, DefaultConfig(), c.yaw)
			r.body.rot = c.facing
			r.body.vel = mgl64.Vec3{3, -1, 3}
			r.ctrl.moveInput = c.intent

			r.ctrl.OnDash(true)
			assert.True(t, r.body.vel.ApproxEqualThreshold(c.want, 1e-6), "got %v", r.body.vel)
		})
	}
}

func TestDetachCancelsDash(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.ctrl.OnDash(true)
	require.True(t, r.ctrl.IsDashing())

	r.ctrl.Detach()
	assert.False(t, r.ctrl.IsDashing())

	calls := r.body.setCalls
	r.tick(30)
	assert.Equal(t, calls, r.body.setCalls, "detached controller must not write to the old body")
}

func TestResetCancelsDashButKeepsCooldown(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.ctrl.OnDash(true)
	r.ctrl.Reset()
	assert.False(t, r.ctrl.IsDashing())

	r.clock.Set(0.5)
	r.ctrl.OnDash(true)
	assert.False(t, r.ctrl.IsDashing(), "cooldown still applies after reset")
}

func TestPausedClockFreezesDash(t *testing.T) {
	r := newRig(t, DefaultConfig(), 0)
	r.ctrl.OnDash(true)
	r.clock.SetPaused(true)
	r.tick(60)
	assert.True(t, r.ctrl.IsDashing())

	r.clock.SetPaused(false)
	r.tick(13)
	assert.False(t, r.ctrl.IsDashing())
}

func TestDashPhaseString(t *testing.T) {
	assert.Equal(t, "idle", DashIdle.String())
	assert.Equal(t, "dashing", DashActive.String())
	assert.Equal(t, "unknown", DashPhase(7).String())
}
