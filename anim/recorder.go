// Package anim holds the animation-parameter sink the controller drives.
// There is no skeletal animation; the recorder keeps the latest bool values
// and queues triggers until a consumer drains them.
package anim

import (
	"log/slog"
	"sort"
	"sync"
)

// Recorder satisfies locomotion.Animator.
type Recorder struct {
	mu       sync.Mutex
	bools    map[string]bool
	triggers []string
	fired    map[string]int
	log      *slog.Logger
}

func NewRecorder() *Recorder {
	return &Recorder{
		bools: make(map[string]bool),
		fired: make(map[string]int),
		log:   slog.Default().With("subsystem", "anim"),
	}
}

func (r *Recorder) SetLogger(l *slog.Logger) {
	if r == nil || l == nil {
		return
	}
	r.log = l.With("subsystem", "anim")
}

func (r *Recorder) SetBool(name string, v bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.bools[name]; ok && old == v {
		return
	}
	r.bools[name] = v
	r.log.Debug("bool", "name", name, "value", v)
}

func (r *Recorder) SetTrigger(name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, name)
	r.fired[name]++
	r.log.Debug("trigger", "name", name)
}

func (r *Recorder) Bool(name string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bools[name]
}

// Bools returns the parameter names currently true, sorted.
func (r *Recorder) Bools() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for k, v := range r.bools {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Drain returns the triggers fired since the last call, oldest first.
func (r *Recorder) Drain() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.triggers
	r.triggers = nil
	return out
}

// Fired is the lifetime count for a trigger, unaffected by Drain.
func (r *Recorder) Fired(name string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired[name]
}
