package fighter

import (
	"errors"
	"fmt"
	"log"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// maxIntent is the mask with every intent bit set.
const maxIntent = 0xFF

// ErrNoDecideFunc is returned when a policy script does not define decide.
var ErrNoDecideFunc = errors.New("fighter: script does not define decide(self, opponent)")

// Scripted is a controller whose policy is a Lua function
//
//	function decide(self, opponent) return intent.Left + intent.Run end
//
// self and opponent are tables with x, y, velX, velY, frameWidth, state,
// action, modifier and facing fields. The global intent table holds the
// input bits by name.
type Scripted struct {
	Name string

	l      *lua.LState
	decide lua.LValue
	err    error
}

// NewScripted compiles source and looks up its decide function.
func NewScripted(name, source string) (*Scripted, error) {
	l := lua.NewState()

	bits := l.NewTable()
	for i := 0; i < 8; i++ {
		bit := simconfig.Intent(1 << i)
		bits.RawSetString(bit.String(), lua.LNumber(bit))
	}
	l.SetGlobal("intent", bits)

	if err := l.DoString(source); err != nil {
		l.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	fn := l.GetGlobal("decide")
	if fn.Type() != lua.LTFunction {
		l.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoDecideFunc)
	}
	return &Scripted{Name: name, l: l, decide: fn}, nil
}

// Decide implements Controller. A script error yields no input for the
// tick; the first one is logged and kept in Err.
func (s *Scripted) Decide(self, opponent *Combatant) simconfig.Intent {
	top := s.l.GetTop()
	defer s.l.SetTop(top)

	err := s.l.CallByParam(lua.P{Fn: s.decide, NRet: 1, Protect: true},
		s.combatantTable(self), s.combatantTable(opponent))
	if err != nil {
		s.fail(err)
		return simconfig.IntentNone
	}
	n, ok := s.l.Get(-1).(lua.LNumber)
	if !ok {
		s.fail(fmt.Errorf("decide returned %s, want number", s.l.Get(-1).Type()))
		return simconfig.IntentNone
	}
	if n < 0 || n > lua.LNumber(maxIntent) || n != lua.LNumber(math.Trunc(float64(n))) {
		s.fail(fmt.Errorf("decide returned %v, want an intent mask in [0, %d]", n, maxIntent))
		return simconfig.IntentNone
	}
	return simconfig.Intent(n)
}

// Err returns the first script failure, if any.
func (s *Scripted) Err() error { return s.err }

// Close releases the Lua state.
func (s *Scripted) Close() { s.l.Close() }

func (s *Scripted) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = fmt.Errorf("%s: %w", s.Name, err)
	log.Printf("[script] %v", s.err)
}

func (s *Scripted) combatantTable(c *Combatant) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	t := s.l.NewTable()
	loc := c.Location()
	t.RawSetString("x", lua.LNumber(loc.X))
	t.RawSetString("y", lua.LNumber(loc.Y))
	t.RawSetString("velX", lua.LNumber(c.VelX))
	t.RawSetString("velY", lua.LNumber(c.VelY))
	t.RawSetString("frameWidth", lua.LNumber(c.FrameWidth()))
	t.RawSetString("state", lua.LString(c.State.String()))
	t.RawSetString("action", lua.LString(c.Action.String()))
	t.RawSetString("modifier", lua.LString(c.Modifier.String()))
	t.RawSetString("facing", lua.LString(c.Facing().String()))
	return t
}
