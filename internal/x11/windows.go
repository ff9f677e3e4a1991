package x11

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ErrBadWindow is returned when the server no longer knows a window, usually
// because it was destroyed after it was looked up.
var ErrBadWindow = errors.New("x11: window no longer exists")

// Geometry is an outer window frame in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// GetActiveWindow returns _NET_ACTIVE_WINDOW, 0 when nothing is active.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// GetInputFocus returns the window holding keyboard focus, or 0 when focus
// is None or PointerRoot.
func (c *Connection) GetInputFocus() (xproto.Window, error) {
	reply, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to get input focus: %w", err)
	}
	switch reply.Focus {
	case xproto.InputFocusNone, xproto.InputFocusPointerRoot:
		return 0, nil
	}
	return reply.Focus, nil
}

// IsClient reports whether windowID is a managed top-level client listed in
// _NET_CLIENT_LIST.
func (c *Connection) IsClient(windowID xproto.Window) bool {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}
	for _, client := range clients {
		if client == windowID {
			return true
		}
	}
	return false
}

// TopLevelClient walks up from windowID to the managed client that contains
// it. It returns 0 when no ancestor is a managed client.
func (c *Connection) TopLevelClient(windowID xproto.Window) (xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get client list: %w", err)
	}
	managed := make(map[xproto.Window]struct{}, len(clients))
	for _, client := range clients {
		managed[client] = struct{}{}
	}

	current := windowID
	for current != 0 && current != c.Root {
		if _, ok := managed[current]; ok {
			return current, nil
		}
		tree, err := xproto.QueryTree(c.XUtil.Conn(), current).Reply()
		if err != nil {
			return 0, translateError(err)
		}
		current = tree.Parent
	}
	return 0, nil
}

// WindowPID returns _NET_WM_PID, 0 when the client does not set it.
func (c *Connection) WindowPID(windowID xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return int(pid)
}

// WindowClass returns the WM_CLASS class name.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// OuterGeometry returns the window's frame including decorations, in root
// coordinates.
func (c *Connection) OuterGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, translateError(err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Geometry{}, translateError(err)
	}

	left, right, top, bottom := c.GetFrameExtents(windowID)
	return Geometry{
		X:      int(translate.DstX) - left,
		Y:      int(translate.DstY) - top,
		Width:  int(geom.Width) + left + right,
		Height: int(geom.Height) + top + bottom,
	}, nil
}

// MoveWindow places the window's outer frame at x, y. Maximized windows are
// un-maximized first since most window managers ignore moves otherwise.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	if err := c.ensureExists(windowID); err != nil {
		return err
	}
	c.unmaximizeWindow(windowID)

	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
	return nil
}

// ResizeWindow sizes the window so its outer frame is width x height.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) error {
	if err := c.ensureExists(windowID); err != nil {
		return err
	}

	left, right, top, bottom := c.GetFrameExtents(windowID)
	clientWidth := max(width-left-right, 1)
	clientHeight := max(height-top-bottom, 1)

	if err := ewmh.ResizeWindow(c.XUtil, windowID, clientWidth, clientHeight); err != nil {
		xwindow.New(c.XUtil, windowID).Resize(clientWidth, clientHeight)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_FULLSCREEN":
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
}

// GetFrameExtents returns the window decoration sizes, zeros when the window
// manager does not publish them.
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

func (c *Connection) ensureExists(windowID xproto.Window) error {
	if _, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply(); err != nil {
		return translateError(err)
	}
	return nil
}

func translateError(err error) error {
	var badWindow xproto.WindowError
	if errors.As(err, &badWindow) {
		return fmt.Errorf("%w: %v", ErrBadWindow, err)
	}
	var badDrawable xproto.DrawableError
	if errors.As(err, &badDrawable) {
		return fmt.Errorf("%w: %v", ErrBadWindow, err)
	}
	return err
}
