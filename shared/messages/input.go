package messages

import "github.com/automoto/doomerang-brawl/shared/simconfig"

// TickInput is everything the simulation consumes for one tick: the host
// frame's elapsed time and the intent mask held for each player slot.
// Replays are a sequence of these.
type TickInput struct {
	Sequence  uint32              `msgpack:"seq"`     // Incrementing tick ID
	ElapsedMs float64             `msgpack:"elapsed"` // Host frame duration in milliseconds
	Intents   [2]simconfig.Intent `msgpack:"intents"` // Held inputs per slot
}

// NewTickInput creates a TickInput for the given sequence and frame duration.
func NewTickInput(seq uint32, elapsedMs float64) TickInput {
	return TickInput{
		Sequence:  seq,
		ElapsedMs: elapsedMs,
	}
}

// WithIntent returns a copy of in with slot's intent replaced.
func (in TickInput) WithIntent(slot int, intent simconfig.Intent) TickInput {
	in.Intents[slot] = intent
	return in
}
