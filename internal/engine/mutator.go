package engine

import (
	"errors"
	"fmt"

	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/platform"
)

// Apply moves win to rect, which must be in geom.TopLeft space.
//
// Position is written before size because some window managers clamp a new
// size against the current position. Both writes are always attempted; a
// failed write is reported but the other write is not rolled back.
func Apply(win platform.Window, rect geom.Rect) error {
	if rect.Space != geom.TopLeft {
		return fmt.Errorf("%w: target %s is not in %s space", ErrAttributeWriteFailed, rect, geom.TopLeft)
	}

	var errs []error
	if err := win.SetPosition(geom.Point{Space: geom.TopLeft, X: rect.X, Y: rect.Y}); err != nil {
		errs = append(errs, fmt.Errorf("%w: position: %w", ErrAttributeWriteFailed, err))
	}
	if err := win.SetSize(rect.Width, rect.Height); err != nil {
		errs = append(errs, fmt.Errorf("%w: size: %w", ErrAttributeWriteFailed, err))
	}
	return errors.Join(errs...)
}
