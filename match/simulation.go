// Package match runs a two-combatant fight: a donburi world holding the
// combatants, a resolv space for the broad phase, and the ordered systems of
// one tick.
package match

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/archetypes"
	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/components"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/shared/gamemath"
	"github.com/automoto/doomerang-brawl/shared/messages"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
	"github.com/automoto/doomerang-brawl/tags"
)

// Slots is the number of combatants in a match.
const Slots = 2

const (
	spaceCell   = 32
	spaceMargin = 512 // world units of broad-phase space around the stage
)

var (
	// ErrMatchFull is returned when a third combatant is added.
	ErrMatchFull  = errors.New("match: both slots are taken")
	ErrNoSuchSlot = errors.New("match: no combatant in slot")
)

// Recorder receives every tick's input with the intents the controllers
// resolved.
type Recorder interface {
	Record(in messages.TickInput)
}

// TickResult is what one tick produced.
type TickResult struct {
	Sequence   uint32
	Tick       uint64
	Intents    [Slots]simconfig.Intent
	Combatants []fighter.Snapshot
	Contacts   []hitbox.Contact
	Near       bool // the broad phase put both combatants in the same cells
}

// Simulation is the whole state of a match. Only Tick and Apply mutate it,
// so it must be driven from a single goroutine.
type Simulation struct {
	world    donburi.World
	match    *donburi.Entry
	slots    []*donburi.Entry
	pairs    []hitbox.Pair
	recorder Recorder
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithPairs replaces hitbox.DefaultPairs as the body-part pairs tested.
func WithPairs(pairs []hitbox.Pair) Option {
	return func(s *Simulation) {
		s.pairs = pairs
	}
}

// WithRecorder records every tick.
func WithRecorder(r Recorder) Option {
	return func(s *Simulation) {
		s.recorder = r
	}
}

// NewSimulation creates an empty match on stage.
func NewSimulation(stage *assets.StageData, opts ...Option) *Simulation {
	w := donburi.NewWorld()
	s := &Simulation{
		world: w,
		match: archetypes.Match.Spawn(w),
		pairs: hitbox.DefaultPairs,
	}
	for _, opt := range opts {
		opt(s)
	}

	space := resolv.NewSpace(
		int(stage.Width)+2*spaceMargin,
		int(stage.Height)+2*spaceMargin,
		spaceCell, spaceCell,
	)
	components.Space.Set(s.match, space)
	components.Match.SetValue(s.match, components.MatchData{Stage: stage})
	return s
}

// AddCombatant places c at its slot's spawn on the ground, facing the
// middle of the stage, and returns the slot. A nil ctrl makes the slot
// host-driven: its intent is taken from each TickInput.
func (s *Simulation) AddCombatant(c *fighter.Combatant, ctrl fighter.Controller) (int, error) {
	slot := len(s.slots)
	if slot >= Slots {
		return -1, fmt.Errorf("%s: %w", c.Name, ErrMatchFull)
	}

	md := s.Data()
	stage := combatantStage(md.Stage, c)

	x := 0.0
	if sp, ok := md.Stage.SpawnFor(slot); ok {
		x = sp.X
	}
	x = gamemath.ClampToRange(x, 0, stage.Width)
	c.SetLocation(gamemath.Point{X: x, Y: stage.Ground})
	if x+c.FrameWidth()/2 < md.Stage.Width/2 {
		c.SetFacing(simconfig.FacingRight)
	} else {
		c.SetFacing(simconfig.FacingLeft)
	}

	var extra []donburi.IComponentType
	ctrlData := components.ControllerData{Controller: ctrl}
	if ctrl == nil {
		ctrlData.Held = &fighter.HeldIntent{}
		ctrlData.Controller = fighter.Human{Source: ctrlData.Held}
		extra = append(extra, tags.Human)
	}

	entry := archetypes.Combatant.Spawn(s.world, extra...)
	components.Combatant.SetValue(entry, components.CombatantData{Combatant: c, Stage: stage})
	components.Controller.SetValue(entry, ctrlData)
	components.Slot.SetValue(entry, components.SlotData{Index: slot})

	obj := resolv.NewObject(0, 0, 1, 1, tags.ResolvCombatant)
	obj.Data = entry
	components.Space.Get(s.match).Add(obj)
	components.Object.SetValue(entry, components.ObjectData{Object: obj})
	components.Object.Get(entry).Fit(c.WorldAABB(), spaceMargin)

	s.slots = append(s.slots, entry)
	md.GetSlotStats(slot)
	log.Printf("[match] %s joined slot %d at x=%.0f facing %s", c.Name, slot, x, c.Facing())
	return slot, nil
}

// SetController hands slot to an AI controller, e.g. a reloaded script.
// The slot stops reading intents from TickInput.
func (s *Simulation) SetController(slot int, ctrl fighter.Controller) error {
	if slot < 0 || slot >= len(s.slots) {
		return fmt.Errorf("slot %d: %w", slot, ErrNoSuchSlot)
	}
	if ctrl == nil {
		return fmt.Errorf("slot %d: nil controller", slot)
	}
	entry := s.slots[slot]
	if entry.HasComponent(tags.Human) {
		entry.RemoveComponent(tags.Human)
	}
	components.Controller.SetValue(entry, components.ControllerData{Controller: ctrl})
	return nil
}

// combatantStage converts the stage's playable area into the range of a
// combatant's top-left corner: it may not leave the stage horizontally, and
// standing on the floor puts its corner one standing frame above it.
func combatantStage(level *assets.StageData, c *fighter.Combatant) fighter.Stage {
	standing := c.FrameSets[simconfig.FrameSetIdle].Frames[0].Height
	return fighter.Stage{
		Width:  math.Max(0, level.Width-c.FrameWidth()),
		Height: level.Height,
		Ground: math.Max(0, level.Floor-standing),
	}
}

// Tick runs the controllers and advances the match by one input.
func (s *Simulation) Tick(in messages.TickInput) TickResult {
	return s.step(in, updateControllers(s, in))
}

// Apply advances the match using in.Intents as every slot's intent, without
// consulting controllers. Replays are played this way.
func (s *Simulation) Apply(in messages.TickInput) TickResult {
	return s.step(in, in.Intents)
}

func (s *Simulation) step(in messages.TickInput, intents [Slots]simconfig.Intent) TickResult {
	md := s.Data()

	updateCombatants(s, in.ElapsedMs, intents)
	near := updateBroadphase(s)
	contacts := updateHitboxes(s, near)
	md.Tick++

	resolved := in
	resolved.Intents = intents
	updateRecorder(s, resolved)

	res := TickResult{
		Sequence: in.Sequence,
		Tick:     md.Tick,
		Intents:  intents,
		Contacts: contacts,
		Near:     near,
	}
	for _, c := range s.Combatants() {
		res.Combatants = append(res.Combatants, c.Snapshot())
	}
	return res
}

// Len is the number of combatants added so far.
func (s *Simulation) Len() int { return len(s.slots) }

// Combatant returns the combatant in slot, or nil.
func (s *Simulation) Combatant(slot int) *fighter.Combatant {
	if slot < 0 || slot >= len(s.slots) {
		return nil
	}
	return components.Combatant.Get(s.slots[slot]).Combatant
}

// Controller returns the controller deciding for slot, or nil.
func (s *Simulation) Controller(slot int) fighter.Controller {
	if slot < 0 || slot >= len(s.slots) {
		return nil
	}
	return components.Controller.Get(s.slots[slot]).Controller
}

// Combatants returns the combatants in slot order.
func (s *Simulation) Combatants() []*fighter.Combatant {
	out := make([]*fighter.Combatant, len(s.slots))
	for i := range s.slots {
		out[i] = s.Combatant(i)
	}
	return out
}

// Data returns the match singleton.
func (s *Simulation) Data() *components.MatchData {
	return components.Match.Get(s.match)
}

// World exposes the donburi world for read-only queries such as rendering.
func (s *Simulation) World() donburi.World { return s.world }

// SetTunables replaces the movement parameters of every combatant, e.g.
// after the tunables file changed on disk.
func (s *Simulation) SetTunables(t simconfig.Tunables) {
	for _, c := range s.Combatants() {
		c.Tunables = t.Clone()
	}
}
