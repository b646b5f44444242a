package system

import (
	"errors"
	"log/slog"
	"path"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/prefabs"
)

// ScriptInvalidator forgets compiled scripts, see InputSystem.
type ScriptInvalidator interface {
	InvalidateScript(name string)
}

// ReloadSystem applies prefab edits reported by a watcher without blocking
// the frame.
type ReloadSystem struct {
	changes <-chan string
	errs    <-chan error
	scripts ScriptInvalidator
	log     *slog.Logger
}

func NewReloadSystem(changes <-chan string, errs <-chan error, scripts ScriptInvalidator) *ReloadSystem {
	return &ReloadSystem{
		changes: changes,
		errs:    errs,
		scripts: scripts,
		log:     slog.Default().With("subsystem", "reload"),
	}
}

func (rs *ReloadSystem) Update(w *ecs.World) {
	for {
		select {
		case name, ok := <-rs.changes:
			if !ok {
				rs.changes = nil
				continue
			}
			rs.apply(w, name)
		case err, ok := <-rs.errs:
			if !ok {
				rs.errs = nil
				continue
			}
			rs.log.Warn("watch error", "err", err)
		default:
			return
		}
	}
}

func (rs *ReloadSystem) apply(w *ecs.World, name string) {
	switch path.Ext(name) {
	case ".tengo":
		if rs.scripts != nil {
			rs.scripts.InvalidateScript(name)
		}
		rs.log.Info("script reloaded", "script", name)
		w.Events().Push(ecs.Event{Type: ecs.EventSpecReloaded, Data: name})
	case ".yaml", ".yml":
		n, err := entity.Reconfigure(w, name)
		if errors.Is(err, prefabs.ErrNoComponents) {
			// levels and other non-entity specs apply on restart
			rs.log.Debug("not an entity prefab", "prefab", name)
			return
		}
		if err != nil {
			rs.log.Warn("prefab rejected", "prefab", name, "err", err)
			w.Events().Push(ecs.Event{Type: ecs.EventSpecRejected, Data: name})
			return
		}
		rs.log.Info("prefab reloaded", "prefab", name, "entities", n)
		w.Events().Push(ecs.Event{Type: ecs.EventSpecReloaded, Data: name})
	}
}
