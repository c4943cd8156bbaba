package assets

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// FrameSetInfo describes one animation of a fighter.
type FrameSetInfo struct {
	ID          simconfig.FrameSetID
	NumFrames   int
	ImageWidth  float64 // source artwork size, used for the aspect ratio
	ImageHeight float64
	BoundsPath  string // relative to the fighter directory
}

// Aspect is height over width of the artwork.
func (fi FrameSetInfo) Aspect() float64 {
	return fi.ImageHeight / fi.ImageWidth
}

// Manifest is the parsed fighter.json of a fighter.
type Manifest struct {
	Name       string
	FrameWidth float64 // world width every frame is scaled to
	FrameSets  map[simconfig.FrameSetID]FrameSetInfo
}

// IDs returns the frameset ids in a stable order.
func (m *Manifest) IDs() []simconfig.FrameSetID {
	ids := make([]simconfig.FrameSetID, 0, len(m.FrameSets))
	for id := range m.FrameSets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ParseManifest reads a fighter manifest:
//
//	{"Name": "Aaron", "FrameWidth": 300, "NumFramesets": 1,
//	 "Framesets": {"Idle": {"NumFrames": 4, "ImageWidth": 600,
//	               "ImageHeight": 800, "BoundsPath": "bounds/idle.svg"}}}
//
// FrameWidth defaults to simconfig.DefaultFighterWidth. NumFramesets, when
// present, must match the number of framesets listed.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("malformed JSON: %w", ErrInvalidManifest)
	}
	root := gjson.ParseBytes(data)

	m := &Manifest{
		Name:       root.Get("Name").String(),
		FrameWidth: simconfig.DefaultFighterWidth,
		FrameSets:  make(map[simconfig.FrameSetID]FrameSetInfo),
	}
	if m.Name == "" {
		return nil, fmt.Errorf("missing Name: %w", ErrInvalidManifest)
	}
	if fw := root.Get("FrameWidth"); fw.Exists() {
		m.FrameWidth = fw.Float()
	}
	if m.FrameWidth <= 0 {
		return nil, fmt.Errorf("%s: FrameWidth %v: %w", m.Name, m.FrameWidth, ErrInvalidManifest)
	}

	var parseErr error
	root.Get("Framesets").ForEach(func(key, value gjson.Result) bool {
		info := FrameSetInfo{
			ID:          simconfig.FrameSetID(key.String()),
			NumFrames:   int(value.Get("NumFrames").Int()),
			ImageWidth:  value.Get("ImageWidth").Float(),
			ImageHeight: value.Get("ImageHeight").Float(),
			BoundsPath:  value.Get("BoundsPath").String(),
		}
		switch {
		case !info.ID.Valid():
			parseErr = fmt.Errorf("%s: unknown frameset %q: %w", m.Name, info.ID, ErrInvalidManifest)
		case info.NumFrames < 0:
			parseErr = fmt.Errorf("%s: %s: negative NumFrames: %w", m.Name, info.ID, ErrInvalidManifest)
		case info.ImageWidth <= 0 || info.ImageHeight <= 0:
			parseErr = fmt.Errorf("%s: %s: image size must be positive: %w", m.Name, info.ID, ErrInvalidManifest)
		case info.BoundsPath == "" && info.NumFrames > 0:
			parseErr = fmt.Errorf("%s: %s: missing BoundsPath: %w", m.Name, info.ID, ErrInvalidManifest)
		}
		if parseErr != nil {
			return false
		}
		m.FrameSets[info.ID] = info
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if n := root.Get("NumFramesets"); n.Exists() && int(n.Int()) != len(m.FrameSets) {
		return nil, fmt.Errorf("%s: NumFramesets is %d but %d are listed: %w",
			m.Name, n.Int(), len(m.FrameSets), ErrInvalidManifest)
	}
	return m, nil
}
