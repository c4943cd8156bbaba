package match

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/automoto/doomerang-brawl/shared/messages"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// Loop drives a Simulation at a fixed rate on the goroutine that calls Run,
// which becomes the simulation's only writer. Every tick advances the match
// by exactly one tick period, so a run is reproducible from its inputs.
type Loop struct {
	sim      *Simulation
	tickRate int
	maxTicks uint64
	onTick   func(TickResult)

	inputs   chan [Slots]simconfig.Intent
	stopChan chan struct{}
	stopOnce sync.Once

	held [Slots]simconfig.Intent
	seq  uint32
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithMaxTicks makes Run return after n ticks.
func WithMaxTicks(n uint64) LoopOption {
	return func(l *Loop) {
		l.maxTicks = n
	}
}

// OnTick is called on the loop goroutine after every tick.
func OnTick(fn func(TickResult)) LoopOption {
	return func(l *Loop) {
		l.onTick = fn
	}
}

func NewLoop(sim *Simulation, tickRate int, opts ...LoopOption) *Loop {
	if tickRate <= 0 {
		tickRate = simconfig.AnimationFPS
	}
	l := &Loop{
		sim:      sim,
		tickRate: tickRate,
		inputs:   make(chan [Slots]simconfig.Intent, 1),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TickMs is the simulated duration of one tick.
func (l *Loop) TickMs() float64 {
	return 1000 / float64(l.tickRate)
}

// Run ticks until the context is cancelled, Stop is called or the tick limit
// is reached. Only a cancelled context is reported as an error.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	log.Printf("[match] loop started at %d ticks/second", l.tickRate)

	for {
		select {
		case <-ctx.Done():
			log.Println("[match] loop cancelled")
			return ctx.Err()
		case <-l.stopChan:
			log.Println("[match] loop stopped")
			return nil
		case held := <-l.inputs:
			l.held = held
		case <-ticker.C:
			if l.tick() {
				log.Printf("[match] loop finished after %d ticks", l.seq)
				return nil
			}
		}
	}
}

// Submit replaces the intents held by host-driven slots. It never blocks;
// an intent not yet picked up by the loop is overwritten.
func (l *Loop) Submit(held [Slots]simconfig.Intent) {
	for {
		select {
		case l.inputs <- held:
			return
		default:
		}
		select {
		case <-l.inputs:
		default:
		}
	}
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

func (l *Loop) tick() (done bool) {
	in := messages.NewTickInput(l.seq, l.TickMs())
	in.Intents = l.held
	l.seq++

	res := l.sim.Tick(in)
	if l.onTick != nil {
		l.onTick(res)
	}
	return l.maxTicks > 0 && uint64(l.seq) >= l.maxTicks
}
