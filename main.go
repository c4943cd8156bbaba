package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/config"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/fonts"
	"github.com/automoto/doomerang-brawl/match"
)

type options struct {
	assetsDir  string
	fighterDir string
	stagePath  string
	scriptPath string
	bindings   string
	fontPath   string
	bot        string
	seed       int64
	twoPlayers bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.assetsDir, "assets", "", "asset directory to load and watch instead of the embedded assets")
	flag.StringVar(&o.fighterDir, "fighter", assets.DefaultFighterDir, "fighter directory inside the assets")
	flag.StringVar(&o.stagePath, "stage", assets.DefaultStagePath, "TMX stage inside the assets")
	flag.StringVar(&o.scriptPath, "script", "", "Lua policy for slot 2 inside the assets, e.g. "+assets.DefaultScriptPath)
	flag.StringVar(&o.bindings, "bindings", "", "ini file with key bindings")
	flag.StringVar(&o.fontPath, "font", "", "TrueType font for the HUD")
	flag.StringVar(&o.bot, "bot", "normal", "bot difficulty for slot 2: easy, normal or hard")
	flag.Int64Var(&o.seed, "seed", 0, "bot seed, 0 picks one from the clock")
	flag.BoolVar(&o.twoPlayers, "two-players", false, "read slot 2 from the keyboard")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	if err := config.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if err := config.LoadSavedInput(); err != nil {
		log.Printf("Warning: ignoring saved bindings: %v", err)
	}
	if o.bindings != "" {
		if err := config.LoadBindingsFile(o.bindings); err != nil {
			log.Fatalf("Failed to load bindings: %v", err)
		}
		if err := config.SaveInput(); err != nil {
			log.Printf("Warning: Could not save bindings: %v", err)
		}
	}
	if o.twoPlayers {
		config.Input.TwoPlayers = true
	}

	if o.fontPath != "" {
		ttf, err := os.ReadFile(o.fontPath)
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
		if err := fonts.LoadFont(fonts.HUD, ttf); err != nil {
			log.Fatalf("Failed to load font: %v", err)
		}
	}

	fsys := assets.FS()
	if o.assetsDir != "" {
		fsys = os.DirFS(o.assetsDir)
	}

	sim, err := newMatch(fsys, o)
	if err != nil {
		log.Fatalf("Failed to set up match: %v", err)
	}

	g := NewGame(sim, fsys, o)
	if o.assetsDir != "" {
		if err := g.Watch(o.assetsDir); err != nil {
			log.Printf("Warning: hot reload disabled: %v", err)
		}
	}
	defer g.Close()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("doomerang brawl")
	ebiten.SetTPS(config.C.TPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newMatch(fsys fs.FS, o options) (*match.Simulation, error) {
	fd, err := assets.LoadFighter(fsys, o.fighterDir)
	if err != nil {
		return nil, err
	}
	stage, err := assets.LoadStage(fsys, o.stagePath)
	if err != nil {
		return nil, err
	}

	sim := match.NewSimulation(stage)
	for slot, name := range []string{"P1", "P2"} {
		c, err := fd.NewCombatant(name)
		if err != nil {
			return nil, err
		}
		var ctrl fighter.Controller
		if slot == 1 && !config.Input.TwoPlayers {
			if ctrl, err = opponent(fsys, o); err != nil {
				return nil, err
			}
		}
		if _, err := sim.AddCombatant(c, ctrl); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

// opponent builds the AI for slot 2: the Lua script when one is given,
// otherwise a bot.
func opponent(fsys fs.FS, o options) (fighter.Controller, error) {
	if o.scriptPath != "" {
		src, err := assets.LoadScript(fsys, o.scriptPath)
		if err != nil {
			return nil, err
		}
		return fighter.NewScripted(o.scriptPath, src)
	}

	d, ok := fighter.ParseBotDifficulty(o.bot)
	if !ok {
		log.Printf("Warning: unknown bot difficulty %q, using %s", o.bot, d)
	}
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return fighter.NewBot(d, seed), nil
}
