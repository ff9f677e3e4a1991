package geom

import "fmt"

// Flip mirrors r across the horizontal axis defined by ref and toggles its
// space:
//
//	y' = ref.MaxY() - (r.Y + r.Height)
//
// X and the dimensions are unchanged. Flip is its own inverse for a fixed
// ref, so Flip(Flip(r, ref), ref) == r for every r.
func Flip(r Rect, ref Rect) Rect {
	return Rect{
		Space:  r.Space.Other(),
		X:      r.X,
		Y:      ref.MaxY() - (r.Y + r.Height),
		Width:  r.Width,
		Height: r.Height,
	}
}

// ToTopLeft converts a BottomLeft rect into TopLeft space against ref.
func ToTopLeft(r Rect, ref Rect) (Rect, error) {
	if r.Space != BottomLeft {
		return Rect{}, fmt.Errorf("to top-left: rect %s is not in bottom-left space", r)
	}
	return Flip(r, ref), nil
}

// ToBottomLeft converts a TopLeft rect into BottomLeft space against ref.
func ToBottomLeft(r Rect, ref Rect) (Rect, error) {
	if r.Space != TopLeft {
		return Rect{}, fmt.Errorf("to bottom-left: rect %s is not in top-left space", r)
	}
	return Flip(r, ref), nil
}
