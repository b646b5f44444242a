package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// A script defines update(t, state) and returns a map with any of
// move_x, move_y, look_x, look_y, jump, dash and attack. state is a map kept
// across calls. A script without update fails to compile.
const scriptDispatch = `
__out = update(__t, __state)
`

// ScriptSource drives input from a tengo script, for demos and soak runs.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	tracker  Tracker
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__t", 0.0)
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__out", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	return &ScriptSource{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *ScriptSource) Name() string { return s.name }

func (s *ScriptSource) Poll(t float64) (Frame, error) {
	if err := s.compiled.Set("__t", t); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return Frame{}, fmt.Errorf("input: run %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out").Object()
	m, ok := out.(*tengo.Map)
	if !ok {
		if _, undef := out.(*tengo.Undefined); undef {
			return s.tracker.Frame(mgl64.Vec2{}, mgl64.Vec2{}, Buttons{}), nil
		}
		return Frame{}, fmt.Errorf("input: %s: update returned %s, want map", s.name, out.TypeName())
	}

	move := mgl64.Vec2{number(m, "move_x"), number(m, "move_y")}
	look := mgl64.Vec2{number(m, "look_x"), number(m, "look_y")}
	held := Buttons{
		Jump:   truthy(m, "jump"),
		Dash:   truthy(m, "dash"),
		Attack: truthy(m, "attack"),
	}
	return s.tracker.Frame(move, look, held), nil
}

func number(m *tengo.Map, key string) float64 {
	switch v := m.Value[key].(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return 0
	}
}

func truthy(m *tengo.Map, key string) bool {
	v, ok := m.Value[key]
	return ok && !v.IsFalsy()
}
