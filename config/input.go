package config

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// Slots is the number of local players the viewer reads keys for.
const Slots = 2

// SlotBindings maps each intent bit to the keys that hold it.
type SlotBindings map[simconfig.Intent][]ebiten.Key

// Intent returns the mask of every intent with at least one pressed key.
func (b SlotBindings) Intent(pressed func(ebiten.Key) bool) simconfig.Intent {
	var held simconfig.Intent
	for intent, keys := range b {
		for _, k := range keys {
			if pressed(k) {
				held |= intent
				break
			}
		}
	}
	return held
}

// Clone returns a deep copy.
func (b SlotBindings) Clone() SlotBindings {
	out := make(SlotBindings, len(b))
	for intent, keys := range b {
		out[intent] = append([]ebiten.Key(nil), keys...)
	}
	return out
}

// InputConfig holds the key bindings of every slot
type InputConfig struct {
	Slots [Slots]SlotBindings
	// Bot controls slot 1 unless a second local player is enabled
	TwoPlayers bool
}

// Input is the global input configuration
var Input InputConfig

// DefaultInput returns the built-in bindings: arrows, Z/X/C and Ctrl for
// slot 0, WASD, J/K/L and Shift for slot 1.
func DefaultInput() InputConfig {
	return InputConfig{
		Slots: [Slots]SlotBindings{
			{
				simconfig.IntentLeft:   {ebiten.KeyArrowLeft},
				simconfig.IntentRight:  {ebiten.KeyArrowRight},
				simconfig.IntentJump:   {ebiten.KeyArrowUp},
				simconfig.IntentCrouch: {ebiten.KeyArrowDown},
				simconfig.IntentPunch:  {ebiten.KeyZ},
				simconfig.IntentKick:   {ebiten.KeyX},
				simconfig.IntentBlock:  {ebiten.KeyC},
				simconfig.IntentRun:    {ebiten.KeyControlLeft, ebiten.KeyControlRight},
			},
			{
				simconfig.IntentLeft:   {ebiten.KeyA},
				simconfig.IntentRight:  {ebiten.KeyD},
				simconfig.IntentJump:   {ebiten.KeyW},
				simconfig.IntentCrouch: {ebiten.KeyS},
				simconfig.IntentPunch:  {ebiten.KeyJ},
				simconfig.IntentKick:   {ebiten.KeyK},
				simconfig.IntentBlock:  {ebiten.KeyL},
				simconfig.IntentRun:    {ebiten.KeyShiftLeft},
			},
		},
	}
}

func init() {
	Input = DefaultInput()
}
