package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/hitbox"
)

// ObjectData is a combatant's broad-phase box in the match space.
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Fit moves the object over box, shifted by offset into space coordinates
// and padded by one unit on every side so that boxes which only touch still
// share a cell.
func (o *ObjectData) Fit(box hitbox.AABB, offset float64) {
	o.X = box.Min.X + offset - 1
	o.Y = box.Min.Y + offset - 1
	o.W = box.Width() + 2
	o.H = box.Height() + 2
	o.Update()
}
