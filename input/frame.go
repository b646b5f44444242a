// Package input turns raw device or scripted state into per-frame intent:
// a move vector, a pointer delta and edge-detected action buttons.
package input

import "github.com/go-gl/mathgl/mgl64"

// Buttons is one bool per discrete action.
type Buttons struct {
	Jump   bool
	Dash   bool
	Attack bool
}

func (b Buttons) Any() bool { return b.Jump || b.Dash || b.Attack }

// Frame is the input for one rendered frame.
type Frame struct {
	Move mgl64.Vec2
	// Look is the raw pointer delta since the previous frame.
	Look     mgl64.Vec2
	Held     Buttons
	Pressed  Buttons
	Released Buttons
}

// Source produces frames. t is simulation time in seconds.
type Source interface {
	Poll(t float64) (Frame, error)
}

// Handler receives dispatched intent.
type Handler interface {
	OnMove(v mgl64.Vec2)
	OnJump(started bool)
	OnDash(started bool)
	OnAttack(started bool)
}

// Dispatch forwards the frame to h: the move vector first, then presses,
// then releases.
func (f Frame) Dispatch(h Handler) {
	if h == nil {
		return
	}
	h.OnMove(f.Move)
	if f.Pressed.Jump {
		h.OnJump(true)
	}
	if f.Pressed.Dash {
		h.OnDash(true)
	}
	if f.Pressed.Attack {
		h.OnAttack(true)
	}
	if f.Released.Jump {
		h.OnJump(false)
	}
	if f.Released.Dash {
		h.OnDash(false)
	}
	if f.Released.Attack {
		h.OnAttack(false)
	}
}

// Tracker derives press and release edges from successive held states.
type Tracker struct {
	prev Buttons
}

func (t *Tracker) Frame(move, look mgl64.Vec2, held Buttons) Frame {
	f := Frame{
		Move: ClampMove(move),
		Look: look,
		Held: held,
		Pressed: Buttons{
			Jump:   held.Jump && !t.prev.Jump,
			Dash:   held.Dash && !t.prev.Dash,
			Attack: held.Attack && !t.prev.Attack,
		},
		Released: Buttons{
			Jump:   !held.Jump && t.prev.Jump,
			Dash:   !held.Dash && t.prev.Dash,
			Attack: !held.Attack && t.prev.Attack,
		},
	}
	t.prev = held
	return f
}

func (t *Tracker) Reset() { t.prev = Buttons{} }

// ClampMove limits a move vector to unit length, so diagonal keys are not
// faster than a single key.
func ClampMove(v mgl64.Vec2) mgl64.Vec2 {
	if l := v.Len(); l > 1 {
		return v.Mul(1 / l)
	}
	return v
}
