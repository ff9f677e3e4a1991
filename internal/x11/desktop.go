package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// RequiredAtoms are the EWMH hints halfsnap needs from the window manager to
// find and move the active window.
var RequiredAtoms = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_MOVERESIZE_WINDOW",
}

// WindowManagerName returns the name of the running EWMH window manager.
func (c *Connection) WindowManagerName() (string, error) {
	name, err := ewmh.GetEwmhWM(c.XUtil)
	if err != nil {
		return "", fmt.Errorf("no EWMH window manager detected: %w", err)
	}
	return name, nil
}

// MissingSupport returns the RequiredAtoms the window manager does not list
// in _NET_SUPPORTED. All of them are returned when _NET_SUPPORTED cannot be
// read.
func (c *Connection) MissingSupport() []string {
	supported, err := ewmh.SupportedGet(c.XUtil)
	if err != nil {
		return append([]string(nil), RequiredAtoms...)
	}

	have := make(map[string]struct{}, len(supported))
	for _, atom := range supported {
		have[atom] = struct{}{}
	}

	var missing []string
	for _, atom := range RequiredAtoms {
		if _, ok := have[atom]; !ok {
			missing = append(missing, atom)
		}
	}
	return missing
}
