// Package render draws a match with ebiten: the stage, every combatant's
// frame box and hitboxes, and a debug HUD.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"

	cfg "github.com/automoto/doomerang-brawl/config"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/fonts"
	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/match"
)

type fadeKey struct {
	slot int
	part hitbox.BodyPart
}

// Renderer keeps the per-part highlight state between frames.
type Renderer struct {
	fades map[fadeKey]*contactFade
}

func NewRenderer() *Renderer {
	return &Renderer{fades: make(map[fadeKey]*contactFade)}
}

// Update advances the contact highlights by dt seconds.
func (r *Renderer) Update(sim *match.Simulation, dt float32) {
	for slot, c := range sim.Combatants() {
		c.CurrentPose().Each(func(b *hitbox.Bounds) {
			r.fade(slot, b.Part).update(b.CollisionStatus, dt)
		})
	}
}

func (r *Renderer) fade(slot int, part hitbox.BodyPart) *contactFade {
	key := fadeKey{slot, part}
	f, ok := r.fades[key]
	if !ok {
		f = &contactFade{duration: cfg.UI.ContactFadeSec}
		r.fades[key] = f
	}
	return f
}

// Draw renders the whole match.
func (r *Renderer) Draw(screen *ebiten.Image, sim *match.Simulation) {
	screen.Fill(cfg.UI.Background)
	DrawStage(screen, sim)

	for slot, c := range sim.Combatants() {
		drawFrameBox(screen, c)
		if cfg.Debug.ShowHitboxes {
			r.drawHitboxes(screen, slot, c)
		}
	}

	DrawTitle(screen, sim)
	if cfg.Debug.ShowHUD {
		DrawDebug(screen, sim)
	}
	if cfg.Debug.ShowFPS {
		DrawFPS(screen)
	}
}

// DrawStage draws the floor line.
func DrawStage(screen *ebiten.Image, sim *match.Simulation) {
	stage := sim.Data().Stage
	y := float32(stage.Floor)
	vector.StrokeLine(screen, 0, y, float32(stage.Width), y, 2, cfg.UI.GroundColor, false)
}

func drawFrameBox(screen *ebiten.Image, c *fighter.Combatant) {
	frame := c.CurrentFrameData()
	loc := c.Location()
	vector.StrokeRect(screen, float32(loc.X), float32(loc.Y), float32(frame.Width), float32(frame.Height),
		1, cfg.UI.FrameColor, false)
}

func (r *Renderer) drawHitboxes(screen *ebiten.Image, slot int, c *fighter.Combatant) {
	c.CurrentPose().Each(func(b *hitbox.Bounds) {
		clr := mix(cfg.UI.HitboxColor, cfg.UI.ContactColor, r.fade(slot, b.Part).value)
		DrawHitbox(screen, c, b, clr)
	})
}

// DrawHitbox outlines one hitbox where the collision test sees it.
func DrawHitbox(screen *ebiten.Image, owner hitbox.Owner, b *hitbox.Bounds, clr color.Color) {
	v := hitbox.WorldVertices(owner, b)
	for i := range v {
		p, q := v[i], v[(i+1)%len(v)]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y),
			cfg.UI.HitboxStroke, clr, true)
	}
}

// DrawTitle centres the stage and the combatants' names along the top edge.
func DrawTitle(screen *ebiten.Image, sim *match.Simulation) {
	face := fonts.Title.Get()
	line := TitleLine(sim)
	width := text.BoundString(face, line).Dx()
	x := (screen.Bounds().Dx() - width) / 2
	text.Draw(screen, line, face, x, cfg.UI.HUDMargin+face.Metrics().Height.Ceil(), cfg.UI.TextColor)
}

func TitleLine(sim *match.Simulation) string {
	names := make([]string, 0, match.Slots)
	for _, c := range sim.Combatants() {
		names = append(names, c.Name)
	}
	title := strings.Join(names, " vs ")
	if stage := sim.Data().Stage; stage != nil && stage.Name != "" {
		title = stage.Name + ": " + title
	}
	return title
}

// DrawDebug prints the state of every combatant.
func DrawDebug(screen *ebiten.Image, sim *match.Simulation) {
	face := fonts.HUD.Get()
	lineHeight := face.Metrics().Height.Ceil()
	y := cfg.UI.HUDMargin + lineHeight
	for _, line := range HUDLines(sim) {
		text.Draw(screen, line, face, cfg.UI.HUDMargin, y, cfg.UI.TextColor)
		y += lineHeight
	}
}

// DrawFPS prints the frame and tick rates in the top-right corner.
func DrawFPS(screen *ebiten.Image) {
	face := fonts.HUD.Get()
	line := fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	width := text.BoundString(face, line).Dx()
	x := screen.Bounds().Dx() - width - cfg.UI.HUDMargin
	text.Draw(screen, line, face, x, cfg.UI.HUDMargin+face.Metrics().Height.Ceil(), cfg.UI.TextColor)
}

// HUDLines describes the match in a few lines of text.
func HUDLines(sim *match.Simulation) []string {
	md := sim.Data()
	lines := []string{fmt.Sprintf("tick %d", md.Tick)}
	for slot, c := range sim.Combatants() {
		s := c.Snapshot()
		lines = append(lines, fmt.Sprintf("P%d %s  %s/%s/%s  facing %s  x=%.0f y=%.0f  %s[%d]",
			slot+1, s.Name, s.State, s.Action, s.Modifier, s.Facing, s.X, s.Y, s.FrameSet, s.CurrentFrame))
	}
	if len(md.Contacts) > 0 {
		parts := make([]string, len(md.Contacts))
		for i, ct := range md.Contacts {
			parts[i] = fmt.Sprintf("%s>%s", ct.A, ct.B)
		}
		lines = append(lines, "contacts "+strings.Join(parts, " "))
	}
	for _, st := range md.Stats {
		lines = append(lines, fmt.Sprintf("P%d strikes %d  contact ticks %d", st.Slot+1, st.Strikes, st.ContactTicks))
	}
	return lines
}
