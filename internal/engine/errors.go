package engine

import "errors"

// Failure kinds of a tile call. Every kind is handled inside Tile by logging
// and returning; none reaches the shortcut dispatcher.
var (
	ErrPermissionDenied     = errors.New("window control permission denied")
	ErrNoActiveApplication  = errors.New("no active application")
	ErrNoResolvableWindow   = errors.New("no focused or main window")
	ErrNoContainingDisplay  = errors.New("window center is on no display")
	ErrNoDisplayAvailable   = errors.New("no display available")
	ErrAttributeWriteFailed = errors.New("window attribute write failed")
)
