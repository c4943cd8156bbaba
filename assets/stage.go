package assets

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Spawn is where a player slot starts. X is the left edge of the frame.
type Spawn struct {
	Slot int
	X, Y float64
}

// StageData is the playable area of a stage in world units.
type StageData struct {
	Name          string
	Width, Height float64
	Floor         float64 // y of the floor surface
	Spawns        []Spawn
}

// SpawnFor returns the spawn of slot.
func (s *StageData) SpawnFor(slot int) (Spawn, bool) {
	for _, sp := range s.Spawns {
		if sp.Slot == slot {
			return sp, true
		}
	}
	return Spawn{}, false
}

// LoadStage parses a TMX stage. The "Stage" object group may hold an object
// named "ground" whose top edge is the floor (default: the bottom of the
// map); the "Spawns" group holds one object per player slot with an int
// "slot" property. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
func LoadStage(fsys fs.FS, tmxPath string) (*StageData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("assets: load TMX %s: %w", tmxPath, err)
	}

	data := &StageData{
		Name:   strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
	}
	if data.Width <= 0 || data.Height <= 0 {
		return nil, fmt.Errorf("assets: %s: empty map: %w", tmxPath, ErrInvalidStage)
	}
	data.Floor = data.Height

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Stage":
			for _, o := range og.Objects {
				if o.Name == "ground" {
					data.Floor = o.Y
				}
			}
		case "Spawns":
			for _, o := range og.Objects {
				data.Spawns = append(data.Spawns, Spawn{
					Slot: o.Properties.GetInt("slot"),
					X:    o.X,
					Y:    o.Y,
				})
			}
		}
	}

	if data.Floor <= 0 || data.Floor > data.Height {
		return nil, fmt.Errorf("assets: %s: ground at %v is outside the map: %w", tmxPath, data.Floor, ErrInvalidStage)
	}

	sort.Slice(data.Spawns, func(i, j int) bool {
		return data.Spawns[i].Slot < data.Spawns[j].Slot
	})
	for i := 1; i < len(data.Spawns); i++ {
		if data.Spawns[i].Slot == data.Spawns[i-1].Slot {
			return nil, fmt.Errorf("assets: %s: duplicate spawn for slot %d: %w", tmxPath, data.Spawns[i].Slot, ErrInvalidStage)
		}
	}
	return data, nil
}
