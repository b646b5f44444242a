package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// Reconfigure re-reads a prefab and applies its tuning to every entity built
// from it. Only tuning changes; runtime state such as velocity, cooldowns
// and camera angles is kept. It returns the number of entities updated.
func Reconfigure(w *ecs.World, prefabName string) (int, error) {
	name := prefabs.CleanPath(prefabName)
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return 0, err
	}

	var targets []ecs.Entity
	ecs.ForEach(w, component.PrefabComponent.Kind(), func(e ecs.Entity, p *component.Prefab) {
		if p.Name == name {
			targets = append(targets, e)
		}
	})

	var errs []error
	updated := 0
	for _, e := range targets {
		if err := reconfigure(w, e, spec); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s entity %s: %w", name, e, err))
			continue
		}
		updated++
	}
	return updated, errors.Join(errs...)
}

func reconfigure(w *ecs.World, e ecs.Entity, spec prefabs.EntityBuildSpec) error {
	if raw, ok := spec.Components["locomotion"]; ok {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.Controller != nil {
			s, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
			if err != nil {
				return err
			}
			cfg, err := s.Config()
			if err != nil {
				return err
			}
			if err := p.Controller.SetConfig(cfg); err != nil {
				return err
			}
		}
	}
	if raw, ok := spec.Components["orbit_camera"]; ok {
		if c, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && c.Orbit != nil {
			s, err := prefabs.DecodeComponentSpec[orbitCameraSpec](raw)
			if err != nil {
				return err
			}
			cfg, err := s.Config()
			if err != nil {
				return err
			}
			if err := c.Orbit.SetConfig(cfg); err != nil {
				return err
			}
			if s.Target != "" && s.Target != c.TargetName {
				c.TargetName = s.Target
				c.Orbit.SetSubject(nil)
			}
		}
	}
	return nil
}
