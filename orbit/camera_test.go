package orbit

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ p mgl64.Vec3 }

func (s *point) Position() mgl64.Vec3 { return s.p }

func TestPitchStaysClamped(t *testing.T) {
	cam := New(DefaultConfig(), &point{})
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		cam.Update(common.FixedDelta, rng.Float64()*20-10, rng.Float64()*40-20)
		require.GreaterOrEqual(t, cam.Pitch(), -35.0)
		require.LessOrEqual(t, cam.Pitch(), 60.0)
	}
}

func TestPitchClampsAtBounds(t *testing.T) {
	cam := New(DefaultConfig(), &point{})
	cam.Update(1, 0, -10)
	assert.Equal(t, 60.0, cam.Pitch(), "pointer up pitches toward max")
	cam.Update(1, 0, 10)
	assert.Equal(t, -35.0, cam.Pitch())
}

func TestYawIsUnbounded(t *testing.T) {
	cam := New(DefaultConfig(), &point{})
	for i := 0; i < 10; i++ {
		cam.Update(1, 1, 0)
	}
	assert.Equal(t, 1000.0, cam.OrbitYaw())
}

func TestCameraConvergesOnOrbitPosition(t *testing.T) {
	subject := &point{p: mgl64.Vec3{3, 0, 7}}
	cam := New(DefaultConfig(), subject)
	cam.SetAngles(40, 20)

	desired, ok := cam.Desired()
	require.True(t, ok)

	prev := cam.Position().Sub(desired).Len()
	for i := 0; i < 600; i++ {
		cam.Update(common.FixedDelta, 0, 0)
		d := cam.Position().Sub(desired).Len()
		require.LessOrEqual(t, d, prev)
		prev = d
	}
	assert.Less(t, prev, 1e-6)
}

func TestDesiredPosition(t *testing.T) {
	cases := []struct {
		name string
		yaw  float64
		want mgl64.Vec3
	}{
		{"behind", 0, mgl64.Vec3{0, 2, -4}},
		{"quarter_turn", 90, mgl64.Vec3{-4, 2, 0}},
		{"half_turn", 180, mgl64.Vec3{0, 2, 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := New(DefaultConfig(), &point{})
			cam.SetAngles(c.yaw, 0)
			got, _ := cam.Desired()
			assert.True(t, got.ApproxEqualThreshold(c.want, 1e-9), "got %v", got)
		})
	}
}

func TestCameraLooksAboveSubject(t *testing.T) {
	subject := &point{p: mgl64.Vec3{1, 0, 1}}
	cam := New(DefaultConfig(), subject)
	cam.SetAngles(30, 10)

	for i := 0; i < 5; i++ {
		cam.Update(common.FixedDelta, 0.3, 0.1)
		want := subject.p.Add(mgl64.Vec3{0, 1.5, 0}).Sub(cam.Position()).Normalize()
		assert.True(t, cam.Forward().ApproxEqualThreshold(want, 1e-9), "tick %d: %v vs %v", i, cam.Forward(), want)
	}
}

func TestSnapPlacesCameraWithoutLag(t *testing.T) {
	subject := &point{p: mgl64.Vec3{0, 0, 0}}
	cam := New(DefaultConfig(), subject)
	cam.SetAngles(90, 0)
	cam.Snap()

	assert.True(t, cam.Position().ApproxEqualThreshold(mgl64.Vec3{-4, 2, 0}, 1e-9))
	assert.InDelta(t, 90.0, cam.Yaw(), 1e-9, "live heading matches the orbit yaw at rest")
}

func TestLargeStepLandsOnDesired(t *testing.T) {
	subject := &point{p: mgl64.Vec3{5, 0, 5}}
	cam := New(DefaultConfig(), subject)
	cam.Update(1, 0, 0)
	desired, _ := cam.Desired()
	assert.True(t, cam.Position().ApproxEqualThreshold(desired, 1e-9))
}

func TestNoSubjectIsNoop(t *testing.T) {
	cam := New(DefaultConfig(), nil)
	cam.SetPosition(mgl64.Vec3{1, 2, 3})

	cam.Update(common.FixedDelta, 5, 5)
	cam.Snap()

	assert.False(t, cam.HasSubject())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, cam.Position())
	assert.Equal(t, 0.0, cam.OrbitYaw())
	assert.Equal(t, 0.0, cam.Pitch())
	_, ok := cam.Desired()
	assert.False(t, ok)
}

func TestSubjectCanBeAssignedLater(t *testing.T) {
	cam := New(DefaultConfig(), nil)
	cam.Update(common.FixedDelta, 0, 0)

	cam.SetSubject(&point{p: mgl64.Vec3{0, 0, 10}})
	cam.Snap()
	assert.True(t, cam.Position().ApproxEqualThreshold(mgl64.Vec3{0, 2, 6}, 1e-9))
}

func TestNewWithInvalidConfigWarnsAndUsesDefaults(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := DefaultConfig()
	cfg.MinPitch, cfg.MaxPitch = 60, -35
	cam := New(cfg, &point{})

	assert.Equal(t, DefaultConfig(), cam.Config())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "invalid config")
	assert.Contains(t, buf.String(), "subsystem=orbit")
}

func TestSetConfigReclampsPitch(t *testing.T) {
	cam := New(DefaultConfig(), &point{})
	cam.SetAngles(0, 50)

	cfg := DefaultConfig()
	cfg.MaxPitch = 30
	require.NoError(t, cam.SetConfig(cfg))
	assert.Equal(t, 30.0, cam.Pitch())

	bad := DefaultConfig()
	bad.MinPitch = 70
	assert.ErrorIs(t, cam.SetConfig(bad), ErrInvalidConfig)
	assert.Equal(t, 30.0, cam.Config().MaxPitch)
}

func TestNilCamera(t *testing.T) {
	var cam *Camera
	assert.NotPanics(t, func() {
		cam.Update(1, 1, 1)
		cam.Snap()
		_ = cam.Yaw()
		_ = cam.Forward()
	})
}
