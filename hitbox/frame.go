package hitbox

import (
	"fmt"

	"github.com/automoto/doomerang-brawl/shared/gamemath"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// Owner is the fighter a frame is posed on. Frames never hold an owner;
// callers pass it alongside so the same frame data can be shared.
type Owner interface {
	Location() gamemath.Point
	Facing() simconfig.Facing
	FrameWidth() float64
}

// FrameBounds is the set of six hitboxes of one animation frame.
type FrameBounds struct {
	XScale, YScale float64
	Parts          [NumParts]*Bounds
}

// NewFrameBounds builds every body part of a frame with the given scale.
func NewFrameBounds(xScale, yScale float64, rects map[BodyPart]AuthoredRect) (*FrameBounds, error) {
	fb := &FrameBounds{XScale: xScale, YScale: yScale}
	for part := LeftLeg; part <= Head; part++ {
		r, ok := rects[part]
		if !ok {
			return nil, fmt.Errorf("%s: %w", part, ErrMissingPart)
		}
		b, err := NewBounds(part, r.Rect, r.Transform, xScale, yScale)
		if err != nil {
			return nil, err
		}
		fb.Parts[part-1] = b
	}
	return fb, nil
}

// Part returns the hitbox of p. Asking for None is a programming error.
func (fb *FrameBounds) Part(p BodyPart) *Bounds {
	if p <= None || p > Head {
		panic(fmt.Sprintf("hitbox: no bounds for body part %d", p))
	}
	return fb.Parts[p-1]
}

func (fb *FrameBounds) Head() *Bounds     { return fb.Part(Head) }
func (fb *FrameBounds) Body() *Bounds     { return fb.Part(Body) }
func (fb *FrameBounds) LeftArm() *Bounds  { return fb.Part(LeftArm) }
func (fb *FrameBounds) RightArm() *Bounds { return fb.Part(RightArm) }
func (fb *FrameBounds) LeftLeg() *Bounds  { return fb.Part(LeftLeg) }
func (fb *FrameBounds) RightLeg() *Bounds { return fb.Part(RightLeg) }

// Each calls fn for every body part in BodyPart order.
func (fb *FrameBounds) Each(fn func(*Bounds)) {
	for _, b := range fb.Parts {
		fn(b)
	}
}

// Reset clears the collision result on every part.
func (fb *FrameBounds) Reset() {
	fb.Each((*Bounds).Reset)
}

// Colliding reports whether any part touched something in the last pass.
func (fb *FrameBounds) Colliding() bool {
	for _, b := range fb.Parts {
		if b.CollisionStatus {
			return true
		}
	}
	return false
}

// AABB is an axis-aligned box in stage coordinates.
type AABB struct {
	Min, Max gamemath.Point
}

func (a AABB) Width() float64  { return a.Max.X - a.Min.X }
func (a AABB) Height() float64 { return a.Max.Y - a.Min.Y }

// Overlaps reports whether a and o share any point, edges included.
func (a AABB) Overlaps(o AABB) bool {
	return a.Min.X <= o.Max.X && a.Max.X >= o.Min.X &&
		a.Min.Y <= o.Max.Y && a.Max.Y >= o.Min.Y
}

func toWorld(owner Owner, p gamemath.Point) gamemath.Point {
	x := p.X
	if owner.Facing() == simconfig.FacingLeft {
		x = owner.FrameWidth() - x
	}
	loc := owner.Location()
	return gamemath.Point{X: x + loc.X, Y: p.Y + loc.Y}
}

// worldAxis mirrors a frame-local normal the same way toWorld mirrors points.
func worldAxis(owner Owner, n gamemath.Vector) gamemath.Vector {
	if owner.Facing() == simconfig.FacingLeft {
		return gamemath.Vector{X: -n.X, Y: n.Y}
	}
	return n
}

// WorldVertices projects b's corners into stage coordinates for owner. A
// left-facing owner is drawn mirrored inside its frame, so x becomes
// frameWidth - x before translation.
func WorldVertices(owner Owner, b *Bounds) [4]gamemath.Point {
	var out [4]gamemath.Point
	for i, v := range b.Vertices {
		out[i] = toWorld(owner, v)
	}
	return out
}

// WorldAABB is the stage-space box enclosing every part of fb.
func WorldAABB(owner Owner, fb *FrameBounds) AABB {
	first := true
	var box AABB
	fb.Each(func(b *Bounds) {
		for _, v := range WorldVertices(owner, b) {
			if first {
				box = AABB{Min: v, Max: v}
				first = false
				continue
			}
			box.Min.X = min(box.Min.X, v.X)
			box.Min.Y = min(box.Min.Y, v.Y)
			box.Max.X = max(box.Max.X, v.X)
			box.Max.Y = max(box.Max.Y, v.Y)
		}
	})
	return box
}
