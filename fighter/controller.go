package fighter

import "github.com/automoto/doomerang-brawl/shared/simconfig"

// Controller produces a combatant's intent for the coming tick. Every
// variant drives the same state machine; only the source of intent differs.
type Controller interface {
	Decide(self, opponent *Combatant) simconfig.Intent
}

// DecideFunc adapts a plain function to Controller.
type DecideFunc func(self, opponent *Combatant) simconfig.Intent

func (f DecideFunc) Decide(self, opponent *Combatant) simconfig.Intent {
	return f(self, opponent)
}

// IntentSource is live input, e.g. the keyboard state sampled by the host.
type IntentSource interface {
	Intent() simconfig.Intent
}

// Human forwards whatever the host says is currently held.
type Human struct {
	Source IntentSource
}

func (h Human) Decide(_, _ *Combatant) simconfig.Intent {
	if h.Source == nil {
		return simconfig.IntentNone
	}
	return h.Source.Intent()
}

// HeldIntent is an IntentSource the host overwrites once per tick.
type HeldIntent struct {
	held simconfig.Intent
}

func (h *HeldIntent) Set(i simconfig.Intent)     { h.held = i }
func (h *HeldIntent) Intent() simconfig.Intent { return h.held }
