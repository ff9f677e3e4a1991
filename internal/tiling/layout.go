package tiling

import (
	"fmt"
	"strings"

	"github.com/1broseidon/halfsnap/internal/geom"
)

// Direction selects which half of a display a window is tiled into.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts "left" or "right" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want left or right)", s)
	}
}

// Compute returns the half of visible selected by dir, in visible's space.
//
// The left half is floor(width/2) wide and the right half takes the rest, so
// the two halves always partition visible exactly with the odd pixel on the
// right.
func Compute(visible geom.Rect, dir Direction) geom.Rect {
	width := visible.Width
	if width < 0 {
		width = 0
	}
	halfWidth := width / 2

	switch dir {
	case Right:
		return geom.Rect{
			Space:  visible.Space,
			X:      visible.MinX() + halfWidth,
			Y:      visible.MinY(),
			Width:  width - halfWidth,
			Height: visible.Height,
		}
	default:
		return geom.Rect{
			Space:  visible.Space,
			X:      visible.MinX(),
			Y:      visible.MinY(),
			Width:  halfWidth,
			Height: visible.Height,
		}
	}
}

// Halves returns both halves of visible.
func Halves(visible geom.Rect) (left, right geom.Rect) {
	return Compute(visible, Left), Compute(visible, Right)
}
