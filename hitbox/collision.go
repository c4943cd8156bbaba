package hitbox

import (
	"math"

	"github.com/automoto/doomerang-brawl/shared/gamemath"
)

// IsColliding runs the separating-axis test between a posed on ownerA and b
// posed on ownerB. Touching edges count as a collision.
func IsColliding(ownerA Owner, a *Bounds, ownerB Owner, b *Bounds) bool {
	va := WorldVertices(ownerA, a)
	vb := WorldVertices(ownerB, b)

	axes := [4]gamemath.Vector{
		worldAxis(ownerA, a.Normal1),
		worldAxis(ownerA, a.Normal2),
		worldAxis(ownerB, b.Normal1),
		worldAxis(ownerB, b.Normal2),
	}
	for _, axis := range axes {
		minA, maxA := project(va, axis)
		minB, maxB := project(vb, axis)
		if maxA < minB || minA > maxB {
			return false
		}
	}
	return true
}

func project(vertices [4]gamemath.Point, axis gamemath.Vector) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		d := gamemath.Dot(gamemath.Vector{X: v.X, Y: v.Y}, axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// Pair is one cross-fighter body-part combination to test.
type Pair struct {
	A, B BodyPart
}

func crossPairs(parts ...BodyPart) []Pair {
	pairs := make([]Pair, 0, len(parts)*len(parts))
	for _, a := range parts {
		for _, b := range parts {
			pairs = append(pairs, Pair{A: a, B: b})
		}
	}
	return pairs
}

var (
	// DefaultPairs tests the leading limbs, body and head of each fighter
	// against the same four parts of the other.
	DefaultPairs = crossPairs(LeftLeg, LeftArm, Body, Head)
	// FullPairs tests all six parts against all six.
	FullPairs = crossPairs(LeftLeg, RightLeg, LeftArm, RightArm, Body, Head)
)

// Posed is a frame placed on its owner.
type Posed struct {
	Owner Owner
	Frame *FrameBounds
}

// Contact is one touching pair found in a collision pass. A is the part of
// the first fighter, B the part of the second.
type Contact struct {
	A, B BodyPart
}

// CheckCollisions recomputes the collision fields of both frames from
// scratch. Each pair is tested once from each fighter's side. A part that
// touches several enemy parts keeps only the last one in CollidingPart.
// The returned contacts are de-duplicated, in discovery order.
func CheckCollisions(a, b Posed, pairs []Pair) []Contact {
	if a.Frame == nil || b.Frame == nil {
		panic("hitbox: collision check on a fighter with no posed frame")
	}
	a.Frame.Reset()
	b.Frame.Reset()

	var contacts []Contact
	var seen [Head + 1][Head + 1]bool
	hit := func(pa, pb *Bounds) {
		pa.CollisionStatus, pa.CollidingPart = true, pb.Part
		pb.CollisionStatus, pb.CollidingPart = true, pa.Part
		if !seen[pa.Part][pb.Part] {
			seen[pa.Part][pb.Part] = true
			contacts = append(contacts, Contact{A: pa.Part, B: pb.Part})
		}
	}

	for _, p := range pairs {
		pa, pb := a.Frame.Part(p.A), b.Frame.Part(p.B)
		if IsColliding(a.Owner, pa, b.Owner, pb) {
			hit(pa, pb)
		}
	}
	for _, p := range pairs {
		pb, pa := b.Frame.Part(p.A), a.Frame.Part(p.B)
		if IsColliding(b.Owner, pb, a.Owner, pa) {
			hit(pa, pb)
		}
	}
	return contacts
}
