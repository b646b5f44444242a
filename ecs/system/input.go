package system

import (
	"log/slog"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/input"
	"github.com/milk9111/thirdperson/prefabs"
)

// InputSystem polls the device source once per frame and dispatches it to
// every player entity. Entities whose Input names a script are driven by
// that script instead.
type InputSystem struct {
	source  input.Source
	scripts map[string]*input.ScriptSource
	failed  map[string]bool
	log     *slog.Logger
}

func NewInputSystem(source input.Source) *InputSystem {
	return &InputSystem{
		source:  source,
		scripts: make(map[string]*input.ScriptSource),
		failed:  make(map[string]bool),
		log:     slog.Default().With("subsystem", "input"),
	}
}

func (s *InputSystem) SetSource(source input.Source) {
	s.source = source
}

// InvalidateScript drops a cached script so the next frame recompiles it.
func (s *InputSystem) InvalidateScript(name string) {
	key := prefabs.ScriptKey(name)
	delete(s.scripts, key)
	delete(s.failed, key)
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := w.Clock().Now()

	var device input.Frame
	haveDevice := false
	if s.source != nil {
		f, err := s.source.Poll(now)
		if err != nil {
			s.log.Warn("poll failed", "err", err)
		} else {
			device, haveDevice = f, true
		}
	}

	look := device.Look
	ecs.ForEach2(w, component.InputComponent.Kind(), component.PlayerComponent.Kind(), func(e ecs.Entity, in *component.Input, p *component.Player) {
		frame, ok := device, haveDevice
		if in.Script != "" {
			frame, ok = s.poll(in.Script, now)
			if ok {
				look = look.Add(frame.Look)
			}
		}
		if !ok {
			return
		}
		in.Frame = frame
		frame.Dispatch(p.Controller)
	})

	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		c.Look = c.Look.Add(look)
	})
}

func (s *InputSystem) poll(name string, now float64) (input.Frame, bool) {
	key := prefabs.ScriptKey(name)
	if s.failed[key] {
		return input.Frame{}, false
	}
	src, ok := s.scripts[key]
	if !ok {
		data, err := prefabs.LoadScript(key)
		if err == nil {
			src, err = input.NewScriptSource(key, data)
		}
		if err != nil {
			s.log.Error("script unavailable", "script", key, "err", err)
			s.failed[key] = true
			return input.Frame{}, false
		}
		s.scripts[key] = src
	}
	f, err := src.Poll(now)
	if err != nil {
		s.log.Error("script failed", "script", key, "err", err)
		s.failed[key] = true
		return input.Frame{}, false
	}
	return f, true
}
