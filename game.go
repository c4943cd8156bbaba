package main

import (
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/config"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/match"
	"github.com/automoto/doomerang-brawl/render"
	"github.com/automoto/doomerang-brawl/shared/messages"
)

// Game runs one match at a fixed tick rate: every ebiten update reads the
// keyboard into a TickInput and advances the simulation by one tick.
type Game struct {
	sim      *match.Simulation
	renderer *render.Renderer
	fsys     fs.FS
	opts     options

	assetsDir string
	watcher   *assets.Watcher
	script    *fighter.Scripted

	seq uint32
}

func NewGame(sim *match.Simulation, fsys fs.FS, o options) *Game {
	g := &Game{
		sim:      sim,
		renderer: render.NewRenderer(),
		fsys:     fsys,
		opts:     o,
	}
	if s, ok := sim.Controller(1).(*fighter.Scripted); ok {
		g.script = s
	}
	return g
}

// Watch reloads tunables and the slot 2 script when they change under dir.
func (g *Game) Watch(dir string) error {
	w, err := assets.NewWatcher(
		filepath.Join(dir, filepath.FromSlash(g.opts.fighterDir)),
		filepath.Join(dir, filepath.FromSlash(filepath.Dir(assets.DefaultScriptPath))),
	)
	if err != nil {
		return err
	}
	g.assetsDir = dir
	g.watcher = w
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.script != nil {
		g.script.Close()
	}
}

func (g *Game) Update() error {
	g.handleToggles()
	g.handleReloads()

	in := messages.NewTickInput(g.seq, 1000/float64(config.C.TPS))
	for slot := range config.Input.Slots {
		if slot == 1 && !config.Input.TwoPlayers {
			break
		}
		in = in.WithIntent(slot, config.Input.Slots[slot].Intent(ebiten.IsKeyPressed))
	}
	g.seq++

	g.sim.Tick(in)
	g.renderer.Update(g.sim, 1/float32(config.C.TPS))
	return nil
}

func (g *Game) handleToggles() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		config.Debug.ShowHitboxes = !config.Debug.ShowHitboxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		config.Debug.ShowHUD = !config.Debug.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		config.Debug.ShowFPS = !config.Debug.ShowFPS
	}
}

// handleReloads applies pending file changes between ticks.
func (g *Game) handleReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			g.reload(name)
		case err := <-g.watcher.Errors:
			log.Printf("[watch] %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	rel, err := filepath.Rel(g.assetsDir, name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	switch {
	case assets.IsTunablesFile(name):
		t, err := assets.LoadTunables(g.fsys, rel)
		if err != nil {
			log.Printf("[watch] keeping old tunables: %v", err)
			return
		}
		g.sim.SetTunables(t)
		log.Printf("[watch] reloaded %s", rel)

	case assets.IsScriptFile(name) && rel == g.opts.scriptPath && !config.Input.TwoPlayers:
		src, err := assets.LoadScript(g.fsys, rel)
		if err != nil {
			log.Printf("[watch] %v", err)
			return
		}
		s, err := fighter.NewScripted(rel, src)
		if err != nil {
			log.Printf("[watch] keeping old script: %v", err)
			return
		}
		if err := g.sim.SetController(1, s); err != nil {
			s.Close()
			log.Printf("[watch] %v", err)
			return
		}
		if g.script != nil {
			g.script.Close()
		}
		g.script = s
		log.Printf("[watch] reloaded %s", rel)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sim)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}
