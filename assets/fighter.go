package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/shared/gamemath"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

const (
	manifestFile = "fighter.json"
	tunablesFile = "tunables.yaml"
)

type authoredFrameSet struct {
	xScale, yScale float64
	frames         []map[hitbox.BodyPart]hitbox.AuthoredRect
}

// FighterData is a fighter as authored. Posed frames are built from it on
// demand so that every combatant owns its own hitboxes.
type FighterData struct {
	Manifest *Manifest
	Tunables simconfig.Tunables

	sets map[simconfig.FrameSetID]authoredFrameSet
}

// LoadFighter reads dir/fighter.json, every bounds file it names and the
// optional dir/tunables.yaml.
func LoadFighter(fsys fs.FS, dir string) (*FighterData, error) {
	raw, err := fs.ReadFile(fsys, path.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	m, err := ParseManifest(raw)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", dir, err)
	}

	fd := &FighterData{
		Manifest: m,
		Tunables: simconfig.DefaultTunables(),
		sets:     make(map[simconfig.FrameSetID]authoredFrameSet, len(m.FrameSets)),
	}

	for _, id := range m.IDs() {
		set, err := loadFrameSet(fsys, dir, m, m.FrameSets[id])
		if err != nil {
			return nil, fmt.Errorf("assets: %s: %w", dir, err)
		}
		fd.sets[id] = set
	}

	tunables, err := LoadTunables(fsys, path.Join(dir, tunablesFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		fd.Tunables = tunables
	}

	// Build once so geometry errors surface at load time.
	if _, err := fd.FrameSets(); err != nil {
		return nil, fmt.Errorf("assets: %s: %w", dir, err)
	}
	log.Printf("[assets] loaded fighter %s (%d framesets)", m.Name, len(fd.sets))
	return fd, nil
}

func loadFrameSet(fsys fs.FS, dir string, m *Manifest, info FrameSetInfo) (authoredFrameSet, error) {
	var set authoredFrameSet
	if info.NumFrames == 0 {
		return set, nil
	}

	f, err := fsys.Open(path.Join(dir, info.BoundsPath))
	if err != nil {
		return set, fmt.Errorf("%s: open bounds: %w", info.ID, err)
	}
	defer f.Close()

	bf, err := ParseBoundsSVG(f)
	if err != nil {
		return set, fmt.Errorf("%s: %w", info.ID, err)
	}

	set.xScale = m.FrameWidth / bf.ViewBoxWidth
	set.yScale = m.FrameWidth * info.Aspect() / bf.ViewBoxHeight
	for i := 0; i < info.NumFrames; i++ {
		rects, ok := bf.Frames[i]
		if !ok {
			return set, fmt.Errorf("%s: frame %d has no bounds: %w", info.ID, i, ErrInvalidBounds)
		}
		set.frames = append(set.frames, rects)
	}
	return set, nil
}

// FrameHeight is the world height of frames in set id.
func (fd *FighterData) FrameHeight(id simconfig.FrameSetID) float64 {
	return fd.Manifest.FrameWidth * fd.Manifest.FrameSets[id].Aspect()
}

// FrameSets builds a fresh set of posed frames.
func (fd *FighterData) FrameSets() (map[simconfig.FrameSetID]fighter.FrameSet, error) {
	out := make(map[simconfig.FrameSetID]fighter.FrameSet, len(fd.sets))
	for id, set := range fd.sets {
		var frames fighter.FrameSet
		for i, rects := range set.frames {
			fb, err := hitbox.NewFrameBounds(set.xScale, set.yScale, rects)
			if err != nil {
				return nil, fmt.Errorf("%s frame %d: %w", id, i, err)
			}
			frames.Frames = append(frames.Frames, fighter.Frame{
				Width:  fd.Manifest.FrameWidth,
				Height: fd.FrameHeight(id),
				Bounds: fb,
			})
		}
		out[id] = frames
	}
	return out, nil
}

// NewCombatant creates a combatant of this fighter with its own frames, at
// the origin until placed.
func (fd *FighterData) NewCombatant(name string, opts ...fighter.Option) (*fighter.Combatant, error) {
	sets, err := fd.FrameSets()
	if err != nil {
		return nil, err
	}
	opts = append([]fighter.Option{fighter.WithTunables(fd.Tunables)}, opts...)
	return fighter.New(name, gamemath.Point{}, sets, opts...)
}

type tunablesDoc struct {
	MovementSpeed  *float64       `yaml:"movementSpeed"`
	RunModifier    *float64       `yaml:"runModifier"`
	CrouchModifier *float64       `yaml:"crouchModifier"`
	JumpPower      *float64       `yaml:"jumpPower"`
	ActionFrames   map[string]int `yaml:"actionFrames"`
}

// ParseTunables overlays a YAML document on the defaults. Unknown keys are
// errors, and so is a document with no content: a file caught halfway
// through being saved must not reset every value.
func ParseTunables(data []byte) (simconfig.Tunables, error) {
	t := simconfig.DefaultTunables()
	var doc tunablesDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return t, fmt.Errorf("assets: tunables: %w", ErrEmptyTunables)
		}
		return t, fmt.Errorf("assets: tunables: %w", err)
	}
	if doc.MovementSpeed != nil {
		t.MovementSpeed = *doc.MovementSpeed
	}
	if doc.RunModifier != nil {
		t.RunModifier = *doc.RunModifier
	}
	if doc.CrouchModifier != nil {
		t.CrouchModifier = *doc.CrouchModifier
	}
	if doc.JumpPower != nil {
		t.JumpPower = *doc.JumpPower
	}
	for name, n := range doc.ActionFrames {
		a, ok := simconfig.ParseAction(name)
		if !ok || a == simconfig.ActionNone {
			return t, fmt.Errorf("assets: tunables: unknown action %q", name)
		}
		if n <= 0 {
			return t, fmt.Errorf("assets: tunables: %s must last at least one frame", name)
		}
		t.ActionFrames[a] = n
	}
	return t, nil
}

// LoadTunables reads and parses a tunables file.
func LoadTunables(fsys fs.FS, name string) (simconfig.Tunables, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return simconfig.DefaultTunables(), err
	}
	return ParseTunables(data)
}
