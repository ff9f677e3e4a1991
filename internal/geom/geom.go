// Package geom holds the rectangle types shared by the tiling engine and the
// platform backends.
//
// Two coordinate conventions are in play. Displays are enumerated in
// BottomLeft space (y grows upward from the bottom edge of the desktop) and
// windows are read and written in TopLeft space (y grows downward from the
// top edge). Every Rect and Point carries the space it is expressed in, and
// nothing in this package combines values from different spaces.
package geom

import "fmt"

// Space names a coordinate convention.
type Space int

const (
	SpaceUnknown Space = iota
	BottomLeft
	TopLeft
)

func (s Space) String() string {
	switch s {
	case BottomLeft:
		return "bottom-left"
	case TopLeft:
		return "top-left"
	default:
		return "unknown"
	}
}

// Other returns the opposite convention.
func (s Space) Other() Space {
	switch s {
	case BottomLeft:
		return TopLeft
	case TopLeft:
		return BottomLeft
	default:
		return SpaceUnknown
	}
}

// Point is a pixel position in a stated space.
type Point struct {
	Space Space
	X     int
	Y     int
}

// Rect is an axis-aligned rectangle in a stated space.
type Rect struct {
	Space  Space
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect is shorthand for a rect in the given space.
func NewRect(space Space, x, y, width, height int) Rect {
	return Rect{Space: space, X: x, Y: y, Width: width, Height: height}
}

func (r Rect) MinX() int { return r.X }
func (r Rect) MinY() int { return r.Y }
func (r Rect) MaxX() int { return r.X + r.Width }
func (r Rect) MaxY() int { return r.Y + r.Height }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center point, rounded toward the origin corner.
func (r Rect) Center() Point {
	return Point{
		Space: r.Space,
		X:     r.X + r.Width/2,
		Y:     r.Y + r.Height/2,
	}
}

// Contains reports whether p lies inside r. Edges follow the half-open rule:
// the min edges are inside and the max edges are outside. Points from a
// different space are never contained.
func (r Rect) Contains(p Point) bool {
	if r.Space == SpaceUnknown || p.Space != r.Space {
		return false
	}
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Union returns the smallest rect covering every input. All inputs must share
// a space; an empty input yields the zero Rect.
func Union(rects ...Rect) (Rect, error) {
	if len(rects) == 0 {
		return Rect{}, nil
	}
	out := rects[0]
	for _, r := range rects[1:] {
		if r.Space != out.Space {
			return Rect{}, fmt.Errorf("union: mixed spaces %s and %s", out.Space, r.Space)
		}
		minX := min(out.X, r.X)
		minY := min(out.Y, r.Y)
		maxX := max(out.MaxX(), r.MaxX())
		maxY := max(out.MaxY(), r.MaxY())
		out = Rect{Space: out.Space, X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
	return out, nil
}

// Intersect returns the overlap of a and b, or an empty rect when they do not
// overlap.
func Intersect(a, b Rect) (Rect, error) {
	if a.Space != b.Space {
		return Rect{}, fmt.Errorf("intersect: mixed spaces %s and %s", a.Space, b.Space)
	}
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.MaxX(), b.MaxX())
	y2 := min(a.MaxY(), b.MaxY())
	if x2 <= x1 || y2 <= y1 {
		return Rect{Space: a.Space}, nil
	}
	return Rect{Space: a.Space, X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, nil
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d(%s)", r.Width, r.Height, r.X, r.Y, r.Space)
}
