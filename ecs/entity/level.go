package entity

import (
	"fmt"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/physics"
	"github.com/milk9111/thirdperson/prefabs"
)

// LoadLevel builds a fresh physics world from a level spec and attaches it
// to w. Entities with bodies must be built afterwards.
func LoadLevel(w *ecs.World, lvl prefabs.LevelSpec) (*physics.World, error) {
	if w == nil {
		return nil, fmt.Errorf("load level: world is nil")
	}
	pw := physics.NewWorld(lvl.GravityOr(common.Gravity))
	pw.SetLogger(w.Logger())
	for i, s := range lvl.Solids {
		lo, hi := s.Min.Vec3(), s.Max.Vec3()
		if lo.X() >= hi.X() || lo.Y() >= hi.Y() || lo.Z() >= hi.Z() {
			return nil, fmt.Errorf("load level %q: solid %d (%s) has empty extent", lvl.Name, i, s.Name)
		}
		pw.AddSolid(lo, hi, s.LayerMask())
	}
	w.SetPhysics(pw)
	w.Logger().Info("level loaded", "name", lvl.Name, "solids", len(lvl.Solids))
	return pw, nil
}

// LoadScene loads the level, then spawns the player at the level spawn and
// the camera behind it.
func LoadScene(w *ecs.World, levelName string) (player, camera ecs.Entity, err error) {
	lvl, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return 0, 0, err
	}
	if _, err := LoadLevel(w, lvl); err != nil {
		return 0, 0, err
	}
	player, err = NewPlayerAt(w, lvl.Spawn.Position(), lvl.Spawn.Yaw)
	if err != nil {
		return 0, 0, err
	}
	camera, err = NewCamera(w)
	if err != nil {
		Destroy(w, player)
		return 0, 0, err
	}
	return player, camera, nil
}
