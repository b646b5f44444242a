package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// PhysicsSystem steps the physics world and mirrors body poses into
// transforms.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	pw := w.Physics()
	dt := w.Clock().Delta()
	if pw == nil || dt <= 0 {
		return
	}
	pw.Step(dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body == nil || b.Body.Removed() {
			return
		}
		t.Position = b.Body.Position()
		t.Rotation = b.Body.Rotation()
	})
}
