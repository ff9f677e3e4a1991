package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display in root window coordinates (origin
// at the top-left of the root window).
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	X       int
	Y       int
	Width   int
	Height  int
}

// GetMonitors retrieves all active monitors using XRandR, in CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		isPrimary := false
		for _, out := range crtcInfo.Outputs {
			if primary != 0 && out == primary {
				isPrimary = true
				break
			}
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    outputName,
			Primary: isPrimary,
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// UsableArea returns the part of monitor not covered by docks and panels.
// Dock struts are preferred; _NET_WORKAREA is the fallback. When neither
// applies the full monitor is returned.
func (c *Connection) UsableArea(monitor Monitor) Monitor {
	usable := monitor
	if applyDockStruts(c, &usable) {
		return usable
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return usable
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	// Only adjust if work area intersects with our monitor
	x1 := max(monitor.X, int(wa.X))
	y1 := max(monitor.Y, int(wa.Y))
	x2 := min(monitor.X+monitor.Width, int(wa.X)+int(wa.Width))
	y2 := min(monitor.Y+monitor.Height, int(wa.Y)+int(wa.Height))
	if x2 > x1 && y2 > y1 {
		usable.X = x1
		usable.Y = y1
		usable.Width = x2 - x1
		usable.Height = y2 - y1
	}
	return usable
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func applyDockStruts(c *Connection, monitor *Monitor) bool {
	rootWidth, rootHeight, err := c.RootGeometry()
	if err != nil {
		return false
	}

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}

	var struts dockStruts
	for _, windowID := range clients {
		if !c.hasWindowType(windowID, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			updateStrutsForMonitor(monitor, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(rootHeight - 1),
				RightStartY:  0,
				RightEndY:    uint(rootHeight - 1),
				TopStartX:    0,
				TopEndX:      uint(rootWidth - 1),
				BottomStartX: 0,
				BottomEndX:   uint(rootWidth - 1),
			}
			updateStrutsForMonitor(monitor, rootWidth, rootHeight, sp, &struts)
		}
	}

	if struts.left == 0 && struts.right == 0 && struts.top == 0 && struts.bottom == 0 {
		return false
	}

	monitor.X += struts.left
	monitor.Y += struts.top
	monitor.Width -= (struts.left + struts.right)
	monitor.Height -= (struts.top + struts.bottom)

	if monitor.Width < 1 {
		monitor.Width = 1
	}
	if monitor.Height < 1 {
		monitor.Height = 1
	}

	return true
}

func updateStrutsForMonitor(monitor *Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	mon := span{monitor.X, monitor.Y, monitor.X + monitor.Width, monitor.Y + monitor.Height}

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		s := span{int(sp.TopStartX), 0, int(sp.TopEndX) + 1, int(sp.Top)}
		acc.top = max(acc.top, mon.intersection(s).h)
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		s := span{int(sp.BottomStartX), rootHeight - int(sp.Bottom), int(sp.BottomEndX) + 1, rootHeight}
		acc.bottom = max(acc.bottom, mon.intersection(s).h)
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		s := span{0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY) + 1}
		acc.left = max(acc.left, mon.intersection(s).w)
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		s := span{rootWidth - int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY) + 1}
		acc.right = max(acc.right, mon.intersection(s).w)
	}
}

// span is a rectangle given by its corners, x2/y2 exclusive.
type span struct {
	x1, y1, x2, y2 int
}

type extent struct {
	w int
	h int
}

func (a span) intersection(b span) extent {
	x1 := max(a.x1, b.x1)
	y1 := max(a.y1, b.y1)
	x2 := min(a.x2, b.x2)
	y2 := min(a.y2, b.y2)

	if x2 <= x1 || y2 <= y1 {
		return extent{}
	}
	return extent{w: x2 - x1, h: y2 - y1}
}

func (c *Connection) hasWindowType(windowID xproto.Window, want string) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
