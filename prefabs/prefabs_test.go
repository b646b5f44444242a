package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/locomotion"
	"github.com/milk9111/thirdperson/orbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDir(t *testing.T, d string) {
	t.Helper()
	prev := Dir()
	SetDir(d)
	t.Cleanup(func() { SetDir(prev) })
}

func TestEmbeddedPrefabsDecode(t *testing.T) {
	useDir(t, "")

	names, err := Names()
	require.NoError(t, err)
	assert.Contains(t, names, "player.yaml")
	assert.Contains(t, names, "camera.yaml")

	player, err := LoadEntityBuildSpec("player.yaml")
	require.NoError(t, err)
	loco, err := DecodeComponentSpec[LocomotionComponentSpec](player.Components["locomotion"])
	require.NoError(t, err)
	cfg, err := loco.Config()
	require.NoError(t, err)
	assert.Equal(t, locomotion.DefaultConfig(), cfg)

	cam, err := LoadEntityBuildSpec("camera.yaml")
	require.NoError(t, err)
	orb, err := DecodeComponentSpec[OrbitCameraComponentSpec](cam.Components["orbit_camera"])
	require.NoError(t, err)
	ocfg, err := orb.Config()
	require.NoError(t, err)
	assert.Equal(t, orbit.DefaultConfig(), ocfg)
	assert.Equal(t, "player", orb.Target)
}

func TestLocomotionSpecOverridesOnlyGivenKeys(t *testing.T) {
	raw := map[string]any{"move_speed": 9.5, "ground_mask": []any{"ground", "default"}}
	spec, err := DecodeComponentSpec[LocomotionComponentSpec](raw)
	require.NoError(t, err)

	cfg, err := spec.Config()
	require.NoError(t, err)
	assert.Equal(t, 9.5, cfg.MoveSpeed)
	assert.Equal(t, locomotion.DefaultConfig().JumpForce, cfg.JumpForce)
	assert.Equal(t, common.LayerGround|common.LayerDefault, cfg.GroundMask)
}

func TestLocomotionSpecRejectsNegative(t *testing.T) {
	spec, err := DecodeComponentSpec[LocomotionComponentSpec](map[string]any{"dash_duration": -1})
	require.NoError(t, err)
	_, err = spec.Config()
	assert.ErrorIs(t, err, locomotion.ErrInvalidConfig)
}

func TestOrbitSpecRejectsInvertedPitch(t *testing.T) {
	spec, err := DecodeComponentSpec[OrbitCameraComponentSpec](map[string]any{"min_pitch": 50, "max_pitch": 10})
	require.NoError(t, err)
	_, err = spec.Config()
	assert.ErrorIs(t, err, orbit.ErrInvalidConfig)
}

func TestLevelSpec(t *testing.T) {
	useDir(t, "")
	lvl, err := LoadLevelSpec("level.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, lvl.Solids)
	assert.Equal(t, "floor", lvl.Solids[0].Name)
	assert.Equal(t, mgl64.Vec3{-30, -1, -30}, lvl.Solids[0].Min.Vec3())
	assert.Equal(t, common.LayerGround, lvl.Solids[0].LayerMask())
	assert.Equal(t, common.Gravity, lvl.GravityOr(0))
}

func TestDiskOverridesEmbedded(t *testing.T) {
	d := t.TempDir()
	useDir(t, d)
	require.NoError(t, os.WriteFile(filepath.Join(d, "level.yaml"), []byte("name: tiny\nsolids: []\n"), 0o644))

	lvl, err := LoadLevelSpec("level.yaml")
	require.NoError(t, err)
	assert.Equal(t, "tiny", lvl.Name)

	_, err = LoadEntityBuildSpec("player.yaml")
	assert.NoError(t, err, "files missing on disk fall back to the embedded copy")
}

func TestLoadEntityBuildSpecWithoutComponents(t *testing.T) {
	d := t.TempDir()
	useDir(t, d)
	require.NoError(t, os.WriteFile(filepath.Join(d, "empty.yaml"), []byte("name: empty\n"), 0o644))

	_, err := LoadEntityBuildSpec("empty.yaml")
	assert.ErrorIs(t, err, ErrNoComponents)
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadSpec[LevelSpec]("nope.yaml")
	assert.Error(t, err)
}

func TestCleanPath(t *testing.T) {
	useDir(t, "prefabs")
	cases := map[string]string{
		"player.yaml":                      "player.yaml",
		"prefabs/player.yaml":              "player.yaml",
		"/home/me/game/prefabs/level.yaml": "level.yaml",
		"./camera.yaml":                    "camera.yaml",
		"prefabs/scripts/autopilot.tengo":  "scripts/autopilot.tengo",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanPath(in), in)
	}
	assert.Equal(t, "scripts/autopilot.tengo", ScriptKey("autopilot.tengo"))
	assert.Equal(t, "scripts/autopilot.tengo", ScriptKey("prefabs/scripts/autopilot.tengo"))
	assert.Equal(t, "scripts/autopilot.tengo", ScriptKey("scripts/autopilot.tengo"))
	assert.Equal(t, ScriptKey("autopilot.tengo"), ScriptKey(ScriptKey("autopilot.tengo")))
}

func TestWatcherReportsChangedSpec(t *testing.T) {
	d := t.TempDir()
	useDir(t, d)

	w, err := NewWatcher(d)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(d, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(d, "player.yaml"), []byte("name: player\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "player.yaml", name)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for player.yaml")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	_, open := <-w.Events
	assert.False(t, open)
}
