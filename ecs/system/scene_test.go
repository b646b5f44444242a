package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/input"
	"github.com/milk9111/thirdperson/locomotion"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heldSource struct {
	tracker input.Tracker
	move    mgl64.Vec2
	look    mgl64.Vec2
	held    input.Buttons
	err     error
}

func (s *heldSource) Poll(float64) (input.Frame, error) {
	if s.err != nil {
		return input.Frame{}, s.err
	}
	return s.tracker.Frame(s.move, s.look, s.held), nil
}

type scene struct {
	w      *ecs.World
	player ecs.Entity
	camera ecs.Entity
	src    *heldSource
	input  *InputSystem
	fixed  *ecs.Scheduler
	frame  *ecs.Scheduler
	events []ecs.Event
}

func useDir(t *testing.T, d string) {
	t.Helper()
	prev := prefabs.Dir()
	prefabs.SetDir(d)
	t.Cleanup(func() { prefabs.SetDir(prev) })
}

func newScene(t *testing.T) *scene {
	t.Helper()
	w := ecs.NewWorld()
	player, camera, err := entity.LoadScene(w, "level.yaml")
	require.NoError(t, err)

	src := &heldSource{}
	in := NewInputSystem(src)
	return &scene{
		w:      w,
		player: player,
		camera: camera,
		src:    src,
		input:  in,
		fixed:  ecs.NewScheduler("fixed", NewLocomotionSystem(), NewPhysicsSystem()),
		frame:  ecs.NewScheduler("frame", NewCameraSystem(), NewAnimationSystem()),
	}
}

// step runs n frames of one fixed step each, in host order.
func (s *scene) step(n int) {
	for i := 0; i < n; i++ {
		s.w.SetFrameDelta(common.FixedDelta)
		s.input.Update(s.w)
		s.w.Clock().Advance(common.FixedDelta)
		s.fixed.Update(s.w)
		s.frame.Update(s.w)
		s.events = append(s.events, s.w.Events().Drain()...)
	}
}

// press holds a button for a single frame.
func (s *scene) press(b input.Buttons) {
	s.src.held = b
	s.step(1)
	s.src.held = input.Buttons{}
}

func (s *scene) controller() *locomotion.Controller {
	p, _ := ecs.Get(s.w, s.player, component.PlayerComponent.Kind())
	return p.Controller
}

func (s *scene) transform(e ecs.Entity) *component.Transform {
	t, _ := ecs.Get(s.w, e, component.TransformComponent.Kind())
	return t
}

func (s *scene) orbit() *component.Camera {
	c, _ := ecs.Get(s.w, s.camera, component.CameraComponent.Kind())
	return c
}

func (s *scene) triggers() []string {
	var out []string
	for _, ev := range s.events {
		if ev.Type == ecs.EventAnimTrigger {
			out = append(out, ev.Data.(string))
		}
	}
	return out
}

func TestPlayerSettlesOnFloor(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.step(10)

	assert.True(t, s.controller().Grounded())
	assert.InDelta(t, 0.0, s.transform(s.player).Position.Y(), 1e-9)
}

func TestForwardWalksAwayFromCamera(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.step(5)

	s.src.move = mgl64.Vec2{0, 1}
	s.step(120)

	pos := s.transform(s.player).Position
	assert.InDelta(t, 0.0, pos.X(), 1e-6)
	assert.Greater(t, pos.Z(), 9.0)
	assert.InDelta(t, 0.0, common.Yaw(s.transform(s.player).Rotation), 1e-6)
	assert.True(t, s.controller().IsMoving())

	cam := s.transform(s.camera).Position
	assert.Less(t, cam.Z(), pos.Z(), "camera trails behind")
}

func TestJumpLeavesGroundAndTriggersAnimation(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.step(5)

	s.press(input.Buttons{Jump: true})
	s.step(10)

	assert.Greater(t, s.transform(s.player).Position.Y(), 0.3)
	assert.False(t, s.controller().Grounded())
	assert.Contains(t, s.triggers(), locomotion.AnimJump)

	a, _ := ecs.Get(s.w, s.player, component.AnimationComponent.Kind())
	assert.False(t, a.Recorder.Bool(locomotion.AnimIsMoving))
}

func TestDashBurstsForward(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.step(5)

	s.src.move = mgl64.Vec2{0, 1}
	s.press(input.Buttons{Dash: true})
	require.True(t, s.controller().IsDashing())

	b, _ := ecs.Get(s.w, s.player, component.PhysicsBodyComponent.Kind())
	assert.InDelta(t, 20.0, b.Body.Velocity().Z(), 1e-6)

	s.step(15)
	assert.False(t, s.controller().IsDashing())
}

func TestAttackCooldownThroughSystems(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.press(input.Buttons{Attack: true})
	s.step(1)
	s.press(input.Buttons{Attack: true})
	s.step(30)
	s.press(input.Buttons{Attack: true})

	count := 0
	for _, name := range s.triggers() {
		if name == locomotion.AnimAttack {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestPointerOrbitsCamera(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.src.look = mgl64.Vec2{1, 0}
	s.step(30)

	cam := s.orbit()
	assert.InDelta(t, 30*100*common.FixedDelta, cam.Orbit.OrbitYaw(), 1e-9)
	assert.Equal(t, mgl64.Vec2{}, cam.Look, "look is consumed every frame")
}

func TestMoveIsRelativeToTurnedCamera(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.orbit().Orbit.SetAngles(90, 0)
	s.step(120)

	s.src.move = mgl64.Vec2{0, 1}
	s.step(60)
	pos := s.transform(s.player).Position
	assert.Greater(t, pos.X(), 4.0)
	assert.InDelta(t, 0.0, pos.Z(), 0.05)
}

func TestCameraHoldsPoseWhenPlayerDestroyed(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.step(10)
	before := s.transform(s.camera).Position

	entity.Destroy(s.w, s.player)
	s.src.look = mgl64.Vec2{3, 3}
	s.step(10)

	assert.Equal(t, before, s.transform(s.camera).Position)
	assert.False(t, s.orbit().Orbit.HasSubject())
}

func TestScriptDrivesEntity(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.input.SetSource(nil)
	in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	in.Script = "autopilot.tengo"

	s.step(1)
	assert.InDelta(t, 1.0, s.controller().Intent().Len(), 1e-6)
	assert.True(t, in.Frame.Pressed.Jump)
}

func TestBrokenScriptIsDisabled(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	in.Script = "missing.tengo"
	s.src.move = mgl64.Vec2{0, 1}

	s.step(3)
	assert.Equal(t, mgl64.Vec2{}, s.controller().Intent())
	assert.True(t, s.input.failed[prefabs.ScriptKey("missing.tengo")])
}

func TestScriptChangeRecompilesThroughReload(t *testing.T) {
	d := t.TempDir()
	useDir(t, d)
	require.NoError(t, os.MkdirAll(filepath.Join(d, "scripts"), 0o755))
	script := filepath.Join(d, "scripts", "drive.tengo")

	s := newScene(t)
	s.input.SetSource(nil)
	in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	in.Script = "drive.tengo"

	changes := make(chan string, 1)
	reload := NewReloadSystem(changes, nil, s.input)
	// the watcher reports paths relative to the prefab directory
	changed := func() {
		changes <- prefabs.CleanPath(script)
		reload.Update(s.w)
	}

	s.step(1)
	require.True(t, s.input.failed[prefabs.ScriptKey("drive.tengo")])

	require.NoError(t, os.WriteFile(script, []byte(`update := func(t, state) { return {move_y: 1} }`), 0o644))
	changed()
	s.step(1)
	assert.Equal(t, mgl64.Vec2{0, 1}, s.controller().Intent(), "fixed script runs after the change")
	assert.Contains(t, s.input.scripts, prefabs.ScriptKey("drive.tengo"))

	require.NoError(t, os.WriteFile(script, []byte(`update := func(t, state) { return {move_x: 1} }`), 0o644))
	changed()
	assert.Empty(t, s.input.scripts, "stale compiled script is dropped")
	s.step(1)
	assert.Equal(t, mgl64.Vec2{1, 0}, s.controller().Intent(), "edited script replaces the old one")
}

func TestSourceErrorSkipsFrame(t *testing.T) {
	useDir(t, "")
	s := newScene(t)
	s.src.move = mgl64.Vec2{0, 1}
	s.src.err = errors.New("unplugged")
	s.step(3)
	assert.Equal(t, mgl64.Vec2{}, s.controller().Intent())
}

type invalidations struct{ names []string }

func (i *invalidations) InvalidateScript(name string) { i.names = append(i.names, name) }

func TestReloadSystem(t *testing.T) {
	d := t.TempDir()
	useDir(t, d)
	s := newScene(t)

	changes := make(chan string, 4)
	errs := make(chan error, 1)
	inv := &invalidations{}
	reload := NewReloadSystem(changes, errs, inv)

	require.NoError(t, os.WriteFile(filepath.Join(d, "player.yaml"),
		[]byte("name: player\ncomponents:\n  locomotion:\n    move_speed: 9\n"), 0o644))
	changes <- "player.yaml"
	changes <- "level.yaml"
	changes <- "scripts/autopilot.tengo"
	errs <- errors.New("overflow")
	reload.Update(s.w)

	assert.Equal(t, 9.0, s.controller().Config().MoveSpeed)
	assert.Equal(t, []string{"scripts/autopilot.tengo"}, inv.names)

	var types []ecs.EventType
	for _, ev := range s.w.Events().Drain() {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []ecs.EventType{ecs.EventSpecReloaded, ecs.EventSpecReloaded}, types)

	require.NoError(t, os.WriteFile(filepath.Join(d, "player.yaml"),
		[]byte("name: player\ncomponents:\n  locomotion:\n    dash_force: -3\n"), 0o644))
	changes <- "player.yaml"
	close(changes)
	reload.Update(s.w)
	reload.Update(s.w)

	assert.Equal(t, 9.0, s.controller().Config().MoveSpeed)
	evs := s.w.Events().Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, ecs.EventSpecRejected, evs[0].Type)
}
