package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// LocomotionSystem runs each controller's fixed step. It belongs in the
// fixed scheduler, before PhysicsSystem.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	dt := w.Clock().Delta()
	if dt <= 0 {
		return
	}
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, p *component.Player) {
		p.Controller.FixedUpdate(dt)
	})
}
