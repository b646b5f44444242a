package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// AnimationSystem drains one-shot triggers each frame and republishes them
// as world events.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (as *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, a *component.Animation) {
		triggers := a.Recorder.Drain()
		if len(triggers) == 0 {
			return
		}
		a.Recent = triggers
		for _, name := range triggers {
			w.Events().Push(ecs.Event{Type: ecs.EventAnimTrigger, Entity: e, Data: name})
		}
	})
}
