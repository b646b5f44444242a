package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// CameraSystem moves the main orbit camera once per rendered frame, after
// the fixed steps for that frame have run.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || cam.Orbit == nil {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = 0
		cam.Orbit.SetSubject(nil)
		cam.Snapped = false
		if target := findEntityByNameOrTag(w, cam.TargetName); target.Valid() {
			cs.targetEntity = target
			cam.Orbit.SetSubject(transformSubject{w: w, e: target})
		}
	} else if !cam.Orbit.HasSubject() {
		// the subject was cleared elsewhere, e.g. a retarget on reload
		cs.targetEntity = 0
		return
	}

	look := cam.Look
	cam.Look = mgl64.Vec2{}
	if cam.Orbit.HasSubject() && !cam.Snapped {
		cam.Orbit.Snap()
		cam.Snapped = true
	}
	cam.Orbit.Update(w.FrameDelta(), look.X(), look.Y())

	if t, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		t.Position = cam.Orbit.Position()
		t.Rotation = cam.Orbit.Rotation()
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	var found ecs.Entity
	ecs.ForEach(w, component.PrefabComponent.Kind(), func(e ecs.Entity, p *component.Prefab) {
		if !found.Valid() && (p.Name == name || p.Name == name+".yaml") {
			found = e
		}
	})
	return found
}

type transformSubject struct {
	w *ecs.World
	e ecs.Entity
}

func (s transformSubject) Position() mgl64.Vec3 {
	if t, ok := ecs.Get(s.w, s.e, component.TransformComponent.Kind()); ok {
		return t.Position
	}
	return mgl64.Vec3{}
}
