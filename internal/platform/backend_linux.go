//go:build linux

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
//
// X11 reports everything relative to the top-left corner of the root window.
// Displays are converted to geom.BottomLeft against the root window so the
// engine sees the same split of conventions on every platform.
type LinuxBackend struct {
	*Gate
	conn   *x11.Connection
	logger *slog.Logger
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	b := &LinuxBackend{conn: conn, logger: logger}
	b.Gate = NewGate(b.probeSupport, b.promptSupport)
	return b
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11
// connection to display ("" means $DISPLAY).
func NewLinuxBackendFromDisplay(display string, logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, err
	}
	return NewLinuxBackend(conn, logger), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// ActiveApplication returns the owner of _NET_ACTIVE_WINDOW.
func (b *LinuxBackend) ActiveApplication() (AppRef, error) {
	conn, err := b.connection()
	if err != nil {
		return AppRef{}, err
	}

	active, err := conn.GetActiveWindow()
	if err != nil {
		return AppRef{}, fmt.Errorf("active window: %w: %v", ErrNotFound, err)
	}
	if active == 0 {
		return AppRef{}, fmt.Errorf("active window: %w", ErrNotFound)
	}

	return AppRef{
		PID:    conn.WindowPID(active),
		Window: WindowID(active),
		Class:  conn.WindowClass(active),
	}, nil
}

// FocusedWindow returns the managed client holding keyboard focus, provided
// it belongs to app.
func (b *LinuxBackend) FocusedWindow(app AppRef) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	focus, err := conn.GetInputFocus()
	if err != nil {
		return 0, err
	}
	if focus == 0 {
		return 0, fmt.Errorf("focused window: %w", ErrNotFound)
	}

	client, err := conn.TopLevelClient(focus)
	if err != nil {
		return 0, mapX11Error("focused window", err)
	}
	if client == 0 {
		return 0, fmt.Errorf("focused window: %w", ErrNotFound)
	}

	if app.PID != 0 {
		if pid := conn.WindowPID(client); pid != 0 && pid != app.PID {
			return 0, fmt.Errorf("focused window belongs to pid %d, not %d: %w", pid, app.PID, ErrNotFound)
		}
	}
	return WindowID(client), nil
}

// MainWindow returns the application's active window if it is still managed.
func (b *LinuxBackend) MainWindow(app AppRef) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	if app.Window == 0 || !conn.IsClient(xproto.Window(app.Window)) {
		return 0, fmt.Errorf("main window: %w", ErrNotFound)
	}
	return app.Window, nil
}

// Displays returns all active displays in RandR CRTC order.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	rootWidth, rootHeight, err := conn.RootGeometry()
	if err != nil {
		return nil, err
	}
	desktop := geom.NewRect(geom.BottomLeft, 0, 0, rootWidth, rootHeight)

	return displaysFromMonitors(monitors, conn.UsableArea, desktop)
}

// displaysFromMonitors converts monitors in the order given. GetMonitors
// enumerates CRTCs in index order and uses the index as the ID, so the
// result is already ordered by ID.
func displaysFromMonitors(monitors []x11.Monitor, usable func(x11.Monitor) x11.Monitor, desktop geom.Rect) ([]Display, error) {
	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		d, err := displayFromMonitor(m, usable(m), desktop)
		if err != nil {
			return nil, err
		}
		displays = append(displays, d)
	}
	return displays, nil
}

// MainDisplay returns the RandR primary display, or the first display when
// no primary output is configured.
func (b *LinuxBackend) MainDisplay() (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	if len(displays) == 0 {
		return Display{}, fmt.Errorf("main display: %w", ErrNotFound)
	}
	for _, d := range displays {
		if d.Primary {
			return d, nil
		}
	}
	return displays[0], nil
}

// Frame returns the window's outer frame in root coordinates.
func (b *LinuxBackend) Frame(id WindowID) (geom.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return geom.Rect{}, err
	}

	g, err := conn.OuterGeometry(xproto.Window(id))
	if err != nil {
		return geom.Rect{}, mapX11Error("window frame", err)
	}
	return geom.NewRect(geom.TopLeft, g.X, g.Y, g.Width, g.Height), nil
}

// SetPosition moves the window's outer frame to p.
func (b *LinuxBackend) SetPosition(id WindowID, p geom.Point) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if p.Space != geom.TopLeft {
		return fmt.Errorf("set position: point is in %s space, want %s", p.Space, geom.TopLeft)
	}
	return mapX11Error("set position", conn.MoveWindow(xproto.Window(id), p.X, p.Y))
}

// SetSize resizes the window's outer frame.
func (b *LinuxBackend) SetSize(id WindowID, width, height int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return mapX11Error("set size", conn.ResizeWindow(xproto.Window(id), width, height))
}

func (b *LinuxBackend) probeSupport() error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if _, err := conn.WindowManagerName(); err != nil {
		return err
	}
	if missing := conn.MissingSupport(); len(missing) > 0 {
		return fmt.Errorf("window manager does not support %s", strings.Join(missing, ", "))
	}
	return nil
}

func (b *LinuxBackend) promptSupport(reason error) {
	b.logger.Warn("window control unavailable; run an EWMH-compliant window manager to enable tiling",
		"reason", reason.Error())
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m, usable x11.Monitor, desktop geom.Rect) (Display, error) {
	frame, err := geom.ToBottomLeft(geom.NewRect(geom.TopLeft, m.X, m.Y, m.Width, m.Height), desktop)
	if err != nil {
		return Display{}, err
	}
	visible, err := geom.ToBottomLeft(geom.NewRect(geom.TopLeft, usable.X, usable.Y, usable.Width, usable.Height), desktop)
	if err != nil {
		return Display{}, err
	}
	return Display{
		ID:      m.ID,
		Name:    m.Name,
		Primary: m.Primary,
		Frame:   frame,
		Visible: visible,
	}, nil
}

func mapX11Error(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, x11.ErrBadWindow) {
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
