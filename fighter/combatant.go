// Package fighter implements a single combatant: its discrete state machine,
// the physics integrator, the animation cadence and the controllers that
// produce its per-tick intent.
package fighter

import (
	"errors"
	"fmt"

	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/shared/gamemath"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// ErrMissingFrameSet is returned by New when a required frameset is absent
// or has no frames.
var ErrMissingFrameSet = errors.New("fighter: missing frameset")

// Frame is one posed animation frame in world units.
type Frame struct {
	Width, Height float64
	Bounds        *hitbox.FrameBounds
}

// FrameSet is the ordered frames of one animation.
type FrameSet struct {
	Frames []Frame
}

// Len returns the number of frames.
func (fs FrameSet) Len() int { return len(fs.Frames) }

// Stage bounds a combatant's location. Y grows downward; Ground is the
// largest y the location may take, i.e. where a standing combatant rests.
type Stage struct {
	Width, Height, Ground float64
}

// DefaultStage has its ground line at the bottom edge.
func DefaultStage() Stage {
	return Stage{
		Width:  simconfig.DefaultStageWidth,
		Height: simconfig.DefaultStageHeight,
		Ground: simconfig.DefaultStageHeight,
	}
}

// Combatant is one fighter in a match. Its frames are owned exclusively:
// collision results are written into them.
type Combatant struct {
	Name string

	State    simconfig.AnimationState
	Action   simconfig.Action
	Modifier simconfig.MovementModifier

	facing   simconfig.Facing
	location gamemath.Point // top-left of the active frame in stage coordinates

	VelX, VelY float64

	CurrentFrame int
	ActionFrame  int
	FrameElapsed float64 // ms since the last frame advance

	Tunables simconfig.Tunables

	FrameSets       map[simconfig.FrameSetID]FrameSet
	CurrentFrameSet simconfig.FrameSetID
}

// Option configures a Combatant in New.
type Option func(*Combatant)

// WithTunables replaces the default movement and action parameters.
func WithTunables(t simconfig.Tunables) Option {
	return func(c *Combatant) {
		c.Tunables = t.Clone()
	}
}

// WithFacing sets the initial facing.
func WithFacing(f simconfig.Facing) Option {
	return func(c *Combatant) {
		c.facing = f
	}
}

// New creates an idle combatant at start. Every frameset in
// simconfig.AllFrameSets must be present with at least one frame.
func New(name string, start gamemath.Point, frameSets map[simconfig.FrameSetID]FrameSet, opts ...Option) (*Combatant, error) {
	for _, id := range simconfig.AllFrameSets {
		fs, ok := frameSets[id]
		if !ok || fs.Len() == 0 {
			return nil, fmt.Errorf("%s: %s: %w", name, id, ErrMissingFrameSet)
		}
		for i, f := range fs.Frames {
			if f.Bounds == nil {
				return nil, fmt.Errorf("%s: %s frame %d has no bounds: %w", name, id, i, ErrMissingFrameSet)
			}
		}
	}

	c := &Combatant{
		Name:            name,
		State:           simconfig.AnimationIdle,
		Action:          simconfig.ActionNone,
		Modifier:        simconfig.ModifierNone,
		facing:          simconfig.FacingLeft,
		location:        start,
		Tunables:        simconfig.DefaultTunables(),
		FrameSets:       frameSets,
		CurrentFrameSet: simconfig.FrameSetIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Location returns the top-left corner of the active frame.
func (c *Combatant) Location() gamemath.Point { return c.location }

// SetLocation teleports the combatant.
func (c *Combatant) SetLocation(p gamemath.Point) { c.location = p }

// Facing returns the direction the combatant is drawn in.
func (c *Combatant) Facing() simconfig.Facing { return c.facing }

// SetFacing overrides the facing.
func (c *Combatant) SetFacing(f simconfig.Facing) { c.facing = f }

// CurrentFrameData returns the active frame. An out-of-range index means the
// state machine and frameset got out of sync and panics.
func (c *Combatant) CurrentFrameData() Frame {
	fs, ok := c.FrameSets[c.CurrentFrameSet]
	if !ok {
		panic(fmt.Sprintf("fighter: %s has no frameset %s", c.Name, c.CurrentFrameSet))
	}
	if c.CurrentFrame < 0 || c.CurrentFrame >= fs.Len() {
		panic(fmt.Sprintf("fighter: %s frame %d out of range for %s (%d frames)",
			c.Name, c.CurrentFrame, c.CurrentFrameSet, fs.Len()))
	}
	return fs.Frames[c.CurrentFrame]
}

// CurrentPose returns the hitboxes of the active frame.
func (c *Combatant) CurrentPose() *hitbox.FrameBounds {
	return c.CurrentFrameData().Bounds
}

// FrameWidth is the world width of the active frame.
func (c *Combatant) FrameWidth() float64 {
	return c.CurrentFrameData().Width
}

// Posed pairs the active frame with the combatant for collision checks.
func (c *Combatant) Posed() hitbox.Posed {
	return hitbox.Posed{Owner: c, Frame: c.CurrentPose()}
}

// WorldAABB is the stage-space box around the active frame's hitboxes.
func (c *Combatant) WorldAABB() hitbox.AABB {
	return hitbox.WorldAABB(c, c.CurrentPose())
}

// Snapshot is a comparable copy of a combatant's dynamic state.
type Snapshot struct {
	Name         string                     `json:"name"`
	State        simconfig.AnimationState   `json:"state"`
	Action       simconfig.Action           `json:"action"`
	Modifier     simconfig.MovementModifier `json:"modifier"`
	Facing       simconfig.Facing           `json:"facing"`
	X            float64                    `json:"x"`
	Y            float64                    `json:"y"`
	VelX         float64                    `json:"velX"`
	VelY         float64                    `json:"velY"`
	FrameSet     simconfig.FrameSetID       `json:"frameSet"`
	CurrentFrame int                        `json:"frame"`
	ActionFrame  int                        `json:"actionFrame"`
}

// Snapshot captures the dynamic state for logging, summaries and replay
// verification.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		Name:         c.Name,
		State:        c.State,
		Action:       c.Action,
		Modifier:     c.Modifier,
		Facing:       c.facing,
		X:            c.location.X,
		Y:            c.location.Y,
		VelX:         c.VelX,
		VelY:         c.VelY,
		FrameSet:     c.CurrentFrameSet,
		CurrentFrame: c.CurrentFrame,
		ActionFrame:  c.ActionFrame,
	}
}
