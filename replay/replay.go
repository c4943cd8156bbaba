// Package replay records the inputs of a match and plays them back. A match
// is deterministic given its fighters, stage and per-tick inputs, so the
// inputs are all a recording stores.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/automoto/doomerang-brawl/match"
	"github.com/automoto/doomerang-brawl/shared/messages"
)

// Version is the recording format written by this package.
const Version = 1

var ErrUnsupportedVersion = errors.New("replay: unsupported recording version")

// Recording is a whole match. Stage and Fighters name the assets the match
// was played with.
type Recording struct {
	Version  int                  `msgpack:"version"`
	Stage    string               `msgpack:"stage"`
	Fighters [match.Slots]string  `msgpack:"fighters"`
	Inputs   []messages.TickInput `msgpack:"inputs"`
}

// Encode writes rec as msgpack.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("replay: version %d: %w", rec.Version, ErrUnsupportedVersion)
	}
	return &rec, nil
}

// SaveFile encodes rec into path.
func SaveFile(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile decodes the recording at path.
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Recorder collects tick inputs. It satisfies match.Recorder.
type Recorder struct {
	rec Recording
}

func NewRecorder(stage string, fighters [match.Slots]string) *Recorder {
	return &Recorder{rec: Recording{Version: Version, Stage: stage, Fighters: fighters}}
}

func (r *Recorder) Record(in messages.TickInput) {
	r.rec.Inputs = append(r.rec.Inputs, in)
}

// Len is the number of ticks recorded.
func (r *Recorder) Len() int { return len(r.rec.Inputs) }

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() *Recording {
	rec := r.rec
	rec.Inputs = append([]messages.TickInput(nil), r.rec.Inputs...)
	return &rec
}

// Play feeds every recorded input into sim, ignoring its controllers, and
// returns the result of the last tick.
func Play(sim *match.Simulation, rec *Recording) (match.TickResult, error) {
	if rec.Version != Version {
		return match.TickResult{}, fmt.Errorf("replay: version %d: %w", rec.Version, ErrUnsupportedVersion)
	}
	if sim.Len() != match.Slots {
		return match.TickResult{}, fmt.Errorf("replay: simulation has %d of %d combatants", sim.Len(), match.Slots)
	}
	var last match.TickResult
	for _, in := range rec.Inputs {
		last = sim.Apply(in)
	}
	return last, nil
}
