package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/anim"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/locomotion"
	"github.com/milk9111/thirdperson/orbit"
	"github.com/milk9111/thirdperson/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"animation":    addAnimation,
	"input":        addInput,
	"locomotion":   addLocomotion,
	"orbit_camera": addOrbitCamera,
}

// locomotion needs the body and animator built before it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"transform",
	"physics_body",
	"animation",
	"input",
	"locomotion",
	"orbit_camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabs.CleanPath(prefabPath)}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	if len(extra) > 0 {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, extra[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, remaining[name], ctx); err != nil {
			destroy(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	if err := ecs.Add(w, e, component.PrefabComponent.Kind(), &component.Prefab{Name: ctx.PrefabPath}); err != nil {
		destroy(w, e)
		return 0, err
	}
	return e, nil
}

// destroy releases what the entity holds outside the ECS before removing it.
func destroy(w *ecs.World, e ecs.Entity) {
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.Controller != nil {
		p.Controller.Detach()
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		w.Physics().RemoveBody(b.Body)
	}
	ecs.DestroyEntity(w, e)
}

// Destroy removes an entity built here, detaching its controller and body.
func Destroy(w *ecs.World, e ecs.Entity) {
	if !ecs.IsAlive(w, e) {
		return
	}
	destroy(w, e)
}

// SetEntityTransform moves an entity and, when it has one, its body.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Rotation = common.YawRotation(yaw)
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		b.Body.SetPosition(pos)
		b.Body.SetRotation(t.Rotation)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position(),
		Rotation: common.YawRotation(spec.Yaw),
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	pw := w.Physics()
	if pw == nil {
		return fmt.Errorf("physics_body: world has no physics")
	}
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return err
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{Rotation: common.YawRotation(0)}
	}
	body := pw.AddBody(spec.BodyConfig(t.Position))
	body.SetRotation(t.Rotation)
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body})
}

func addAnimation(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	rec := anim.NewRecorder()
	rec.SetLogger(w.Logger())
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Recorder: rec})
}

type inputSpec = prefabs.InputComponentSpec

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[inputSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Script: spec.Script})
}

type locomotionSpec = prefabs.LocomotionComponentSpec

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
	if err != nil {
		return err
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}

	deps := locomotion.Deps{
		Clock:        w.Clock(),
		ViewResolver: func() locomotion.View { return MainCamera(w) },
		Logger:       w.Logger(),
	}
	if pw := w.Physics(); pw != nil {
		deps.Prober = pw
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		deps.Body = b.Body
	}
	if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && a.Recorder != nil {
		deps.Animator = a.Recorder
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Controller: locomotion.New(cfg, deps),
	})
}

type orbitCameraSpec = prefabs.OrbitCameraComponentSpec

func addOrbitCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[orbitCameraSpec](raw)
	if err != nil {
		return err
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	cam := orbit.New(cfg, nil)
	cam.SetLogger(w.Logger())
	cam.SetAngles(spec.Yaw, spec.Pitch)
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		cam.SetPosition(t.Position)
	}
	target := spec.Target
	if target == "" {
		target = "player"
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Orbit:      cam,
		TargetName: target,
	})
}

// MainCamera is the orbit camera of the first camera entity, or nil. The
// result is an untyped nil when absent so callers can compare against nil.
func MainCamera(w *ecs.World) locomotion.View {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	c, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok || c.Orbit == nil {
		return nil
	}
	return c.Orbit
}
