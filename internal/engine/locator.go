package engine

import (
	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/platform"
)

// Locate returns the first display, in enumeration order, whose frame
// contains the center of frame. frame is in geom.TopLeft space; each display
// frame is converted into that space against reference(display) before the
// test. Overlap area plays no part: a window straddling two displays belongs
// to whichever one holds its center.
//
// The second result is false when the center is on no display, which happens
// transiently while monitors are being reconfigured.
func Locate(frame geom.Rect, displays []platform.Display, reference func(platform.Display) geom.Rect) (platform.Display, bool) {
	if frame.Space != geom.TopLeft {
		return platform.Display{}, false
	}
	center := frame.Center()

	for _, d := range displays {
		bounds, err := geom.ToTopLeft(d.Frame, reference(d))
		if err != nil {
			continue
		}
		if bounds.Contains(center) {
			return d, true
		}
	}
	return platform.Display{}, false
}
