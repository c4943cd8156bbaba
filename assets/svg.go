package assets

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/shared/gamemath"
)

// BoundsFile is the hitbox artwork of one frameset: a viewBox and one
// rectangle per body part per frame, with ids like "frame3-leftarm".
type BoundsFile struct {
	ViewBoxWidth, ViewBoxHeight float64
	Frames                      map[int]map[hitbox.BodyPart]hitbox.AuthoredRect
}

var rectID = regexp.MustCompile(`^frame(\d+)-([a-z]+)$`)

// ParseBoundsSVG reads a bounds file. Rectangles may be nested in groups;
// rectangles whose id does not follow the frame naming are ignored.
func ParseBoundsSVG(r io.Reader) (*BoundsFile, error) {
	bf := &BoundsFile{Frames: make(map[int]map[hitbox.BodyPart]hitbox.AuthoredRect)}
	dec := xml.NewDecoder(r)
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidBounds)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "svg":
			if sawRoot {
				continue
			}
			sawRoot = true
			if err := bf.parseViewBox(attr(se, "viewBox")); err != nil {
				return nil, err
			}
		case "rect":
			if err := bf.parseRect(se); err != nil {
				return nil, err
			}
		}
	}
	if !sawRoot {
		return nil, fmt.Errorf("no <svg> element: %w", ErrInvalidBounds)
	}
	return bf, nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (bf *BoundsFile) parseViewBox(s string) error {
	nums, err := parseNumbers(s)
	if err != nil || len(nums) != 4 {
		return fmt.Errorf("viewBox %q: %w", s, ErrInvalidBounds)
	}
	if nums[2] <= 0 || nums[3] <= 0 {
		return fmt.Errorf("viewBox %q has no area: %w", s, ErrInvalidBounds)
	}
	bf.ViewBoxWidth, bf.ViewBoxHeight = nums[2], nums[3]
	return nil
}

func (bf *BoundsFile) parseRect(se xml.StartElement) error {
	id := attr(se, "id")
	m := rectID.FindStringSubmatch(id)
	if m == nil {
		return nil
	}
	frame, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("rect %q: frame number: %w", id, ErrInvalidBounds)
	}
	part, ok := hitbox.ParseBodyPart(m[2])
	if !ok {
		return fmt.Errorf("rect %q: unknown body part: %w", id, ErrInvalidBounds)
	}

	var r hitbox.Rect
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"x", &r.X}, {"y", &r.Y}, {"width", &r.Width}, {"height", &r.Height}} {
		s := attr(se, f.name)
		if s == "" {
			continue // SVG defaults to 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("rect %q: %s %q: %w", id, f.name, s, ErrInvalidBounds)
		}
		*f.dst = v
	}

	var transform *gamemath.Affine
	if s := attr(se, "transform"); s != "" {
		t, err := ParseTransform(s)
		if err != nil {
			return fmt.Errorf("rect %q: %w", id, err)
		}
		if !t.IsIdentity() {
			transform = &t
		}
	}

	if bf.Frames[frame] == nil {
		bf.Frames[frame] = make(map[hitbox.BodyPart]hitbox.AuthoredRect)
	}
	bf.Frames[frame][part] = hitbox.AuthoredRect{Rect: r, Transform: transform}
	return nil
}

var transformFunc = regexp.MustCompile(`([a-zA-Z]+)\s*\(([^)]*)\)`)

// ParseTransform reads an SVG transform list such as
// "translate(10 0) rotate(-30 5 5)". Supported functions are matrix,
// translate, scale and rotate.
func ParseTransform(s string) (gamemath.Affine, error) {
	out := gamemath.Identity
	matches := transformFunc.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return out, fmt.Errorf("transform %q: %w", s, ErrInvalidBounds)
	}
	for _, m := range matches {
		args, err := parseNumbers(m[2])
		if err != nil {
			return out, fmt.Errorf("transform %q: %w", s, ErrInvalidBounds)
		}
		t, ok := transformStep(m[1], args)
		if !ok {
			return out, fmt.Errorf("transform %q: unsupported %s with %d args: %w", s, m[1], len(args), ErrInvalidBounds)
		}
		out = out.Mul(t)
	}
	return out, nil
}

func transformStep(name string, args []float64) (gamemath.Affine, bool) {
	switch {
	case name == "matrix" && len(args) == 6:
		return gamemath.Affine{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, true
	case name == "translate" && len(args) == 1:
		return gamemath.Affine{A: 1, D: 1, E: args[0]}, true
	case name == "translate" && len(args) == 2:
		return gamemath.Affine{A: 1, D: 1, E: args[0], F: args[1]}, true
	case name == "scale" && len(args) == 1:
		return gamemath.Affine{A: args[0], D: args[0]}, true
	case name == "scale" && len(args) == 2:
		return gamemath.Affine{A: args[0], D: args[1]}, true
	case name == "rotate" && (len(args) == 1 || len(args) == 3):
		rad := args[0] * math.Pi / 180
		s, c := math.Sin(rad), math.Cos(rad)
		r := gamemath.Affine{A: c, B: s, C: -s, D: c}
		if len(args) == 1 {
			return r, true
		}
		cx, cy := args[1], args[2]
		to := gamemath.Affine{A: 1, D: 1, E: cx, F: cy}
		back := gamemath.Affine{A: 1, D: 1, E: -cx, F: -cy}
		return to.Mul(r).Mul(back), true
	}
	return gamemath.Affine{}, false
}

func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		nums = append(nums, v)
	}
	return nums, nil
}
