// Command brawlsim runs matches without a window: bot against bot (or a Lua
// policy), optionally recording them, or plays a recording back.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/match"
	"github.com/automoto/doomerang-brawl/replay"
	"github.com/automoto/doomerang-brawl/shared/messages"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

func main() {
	ticks := flag.Uint64("ticks", 600, "Number of ticks to simulate")
	rate := flag.Int("rate", 0, "Ticks per second, 0 runs as fast as possible")
	assetsDir := flag.String("assets", "", "Asset directory (default: embedded assets)")
	stagePath := flag.String("stage", assets.DefaultStagePath, "TMX stage inside the assets")
	fighterDir := flag.String("fighter", assets.DefaultFighterDir, "Fighter directory inside the assets")
	p1 := flag.String("p1", "hard", "Bot difficulty for slot 1")
	p2 := flag.String("p2", "normal", "Bot difficulty for slot 2")
	seed1 := flag.Int64("seed1", 1, "Bot seed for slot 1")
	seed2 := flag.Int64("seed2", 2, "Bot seed for slot 2")
	script := flag.String("script", "", "Lua policy inside the assets for slot 2, replaces its bot")
	record := flag.String("record", "", "Write a recording of the match to this file")
	play := flag.String("replay", "", "Play this recording instead of running bots")
	flag.Parse()

	fsys := assets.FS()
	if *assetsDir != "" {
		fsys = os.DirFS(*assetsDir)
	}

	if *play != "" {
		if err := runReplay(fsys, *play); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	ctrls, err := controllers(fsys, *p1, *p2, *seed1, *seed2, *script)
	if err != nil {
		log.Fatalf("Failed to set up players: %v", err)
	}
	fighters := [match.Slots]string{*fighterDir, *fighterDir}

	var opts []match.Option
	var recorder *replay.Recorder
	if *record != "" {
		recorder = replay.NewRecorder(*stagePath, fighters)
		opts = append(opts, match.WithRecorder(recorder))
	}

	sim, err := newSimulation(fsys, *stagePath, fighters, ctrls, opts...)
	if err != nil {
		log.Fatalf("Failed to set up match: %v", err)
	}

	var last match.TickResult
	contacts := &contactLogger{}
	onTick := func(res match.TickResult) {
		contacts.observe(res)
		last = res
	}

	if *rate > 0 {
		loop := match.NewLoop(sim, *rate, match.WithMaxTicks(*ticks), match.OnTick(onTick))

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			log.Println("[brawlsim] stopping...")
			loop.Stop()
		}()

		if err := loop.Run(context.Background()); err != nil {
			log.Fatalf("Loop error: %v", err)
		}
	} else {
		tickMs := simconfig.FrameTimeMs
		for i := uint64(0); i < *ticks; i++ {
			onTick(sim.Tick(messages.NewTickInput(uint32(i), tickMs)))
		}
	}

	if recorder != nil {
		if err := replay.SaveFile(*record, recorder.Recording()); err != nil {
			log.Fatalf("Failed to save recording: %v", err)
		}
		log.Printf("[brawlsim] recorded %d ticks to %s", recorder.Len(), *record)
	}

	out, err := summary(sim, last)
	if err != nil {
		log.Fatalf("Failed to build summary: %v", err)
	}
	fmt.Println(string(out))
}

func controllers(fsys fs.FS, p1, p2 string, seed1, seed2 int64, script string) ([match.Slots]fighter.Controller, error) {
	var ctrls [match.Slots]fighter.Controller
	for slot, name := range []string{p1, p2} {
		d, ok := fighter.ParseBotDifficulty(name)
		if !ok {
			return ctrls, fmt.Errorf("slot %d: unknown bot difficulty %q", slot+1, name)
		}
		seed := seed1
		if slot == 1 {
			seed = seed2
		}
		ctrls[slot] = fighter.NewBot(d, seed)
	}

	if script != "" {
		src, err := assets.LoadScript(fsys, script)
		if err != nil {
			return ctrls, err
		}
		s, err := fighter.NewScripted(script, src)
		if err != nil {
			return ctrls, err
		}
		ctrls[1] = s
	}
	return ctrls, nil
}

// newSimulation loads the stage and one combatant per slot. A nil controller
// leaves the slot driven by the tick inputs.
func newSimulation(fsys fs.FS, stagePath string, fighters [match.Slots]string, ctrls [match.Slots]fighter.Controller, opts ...match.Option) (*match.Simulation, error) {
	stage, err := assets.LoadStage(fsys, stagePath)
	if err != nil {
		return nil, err
	}

	sim := match.NewSimulation(stage, opts...)
	for slot, dir := range fighters {
		fd, err := assets.LoadFighter(fsys, dir)
		if err != nil {
			return nil, err
		}
		c, err := fd.NewCombatant(fmt.Sprintf("P%d", slot+1))
		if err != nil {
			return nil, err
		}
		if _, err := sim.AddCombatant(c, ctrls[slot]); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

func runReplay(fsys fs.FS, path string) error {
	rec, err := replay.LoadFile(path)
	if err != nil {
		return err
	}
	sim, err := newSimulation(fsys, rec.Stage, rec.Fighters, [match.Slots]fighter.Controller{})
	if err != nil {
		return err
	}

	last, err := replay.Play(sim, rec)
	if err != nil {
		return err
	}
	log.Printf("[brawlsim] replayed %d ticks from %s", len(rec.Inputs), path)

	out, err := summary(sim, last)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
