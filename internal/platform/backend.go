package platform

import (
	"errors"

	"github.com/1broseidon/halfsnap/internal/geom"
)

// ErrNotFound reports that a window, application or display the caller asked
// about does not exist, including one that disappeared since it was resolved.
var ErrNotFound = errors.New("not found")

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Display describes a physical display. Frame and Visible are in
// geom.BottomLeft space; Visible excludes panels and docks.
type Display struct {
	ID      int
	Name    string
	Primary bool
	Frame   geom.Rect
	Visible geom.Rect
}

// AppRef identifies the application that currently holds focus.
type AppRef struct {
	PID    int
	Window WindowID
	Class  string
}

// PermissionGate reports whether this process may read and move windows
// owned by other processes.
type PermissionGate interface {
	CheckOrRequest(promptIfNeeded bool) bool
}

// Prompter is a PermissionGate that can tell whether a failed check showed
// the user a prompt. A prompt is itself a diagnostic, so callers that log
// failures stay quiet when one was shown.
type Prompter interface {
	CheckOrPrompt(promptIfNeeded bool) (granted, prompted bool)
}

// Applications resolves the active application and its windows.
type Applications interface {
	ActiveApplication() (AppRef, error)
	FocusedWindow(app AppRef) (WindowID, error)
	MainWindow(app AppRef) (WindowID, error)
}

// Screens enumerates displays.
type Screens interface {
	Displays() ([]Display, error)
	MainDisplay() (Display, error)
}

// WindowControl reads and writes window geometry in geom.TopLeft space.
// Position and size are separate privileged calls and may fail
// independently.
type WindowControl interface {
	Frame(id WindowID) (geom.Rect, error)
	SetPosition(id WindowID, p geom.Point) error
	SetSize(id WindowID, width, height int) error
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	PermissionGate
	Applications
	Screens
	WindowControl
}

// Window is a non-owning handle to a window owned by another process. It is
// only valid for the call that resolved it and every operation on it may
// return ErrNotFound.
type Window struct {
	ID  WindowID
	ctl WindowControl
}

// NewWindow binds id to the control surface that manages it.
func NewWindow(id WindowID, ctl WindowControl) Window {
	return Window{ID: id, ctl: ctl}
}

// Frame returns the window's outer frame in geom.TopLeft space.
func (w Window) Frame() (geom.Rect, error) {
	if w.ctl == nil {
		return geom.Rect{}, ErrNotFound
	}
	return w.ctl.Frame(w.ID)
}

// SetPosition moves the window's outer frame.
func (w Window) SetPosition(p geom.Point) error {
	if w.ctl == nil {
		return ErrNotFound
	}
	return w.ctl.SetPosition(w.ID, p)
}

// SetSize resizes the window's outer frame.
func (w Window) SetSize(width, height int) error {
	if w.ctl == nil {
		return ErrNotFound
	}
	return w.ctl.SetSize(w.ID, width, height)
}
