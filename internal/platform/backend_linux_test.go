//go:build linux

package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/x11"
)

func TestDisplayFromMonitor_ConvertsToBottomLeft(t *testing.T) {
	// A 1920x1080 monitor next to a taller 1920x1200 one; the root window is
	// 3840x1200 and the short monitor is aligned to the top.
	desktop := geom.NewRect(geom.BottomLeft, 0, 0, 3840, 1200)
	short := x11.Monitor{ID: 0, Name: "DP-1", X: 0, Y: 0, Width: 1920, Height: 1080}
	usable := short
	usable.Y = 30
	usable.Height = 1050

	d, err := displayFromMonitor(short, usable, desktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := geom.NewRect(geom.BottomLeft, 0, 120, 1920, 1080); d.Frame != want {
		t.Fatalf("frame = %v, want %v", d.Frame, want)
	}
	if want := geom.NewRect(geom.BottomLeft, 0, 120, 1920, 1050); d.Visible != want {
		t.Fatalf("visible = %v, want %v", d.Visible, want)
	}
	if d.Name != "DP-1" || d.ID != 0 {
		t.Fatalf("identity not carried over: %+v", d)
	}
}

func TestDisplaysFromMonitors_KeepsEnumerationOrder(t *testing.T) {
	desktop := geom.NewRect(geom.BottomLeft, 0, 0, 3200, 1080)
	// CRTC 0 is disabled, so the enumerated IDs skip it.
	monitors := []x11.Monitor{
		{ID: 1, Name: "eDP-1", X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{ID: 2, Name: "HDMI-1", X: 1920, Y: 0, Width: 1280, Height: 1024},
	}
	var asked []int
	usable := func(m x11.Monitor) x11.Monitor {
		asked = append(asked, m.ID)
		return m
	}

	displays, err := displaysFromMonitors(monitors, usable, desktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(displays) != 2 {
		t.Fatalf("got %d displays, want 2", len(displays))
	}
	for i, m := range monitors {
		if displays[i].ID != m.ID || displays[i].Name != m.Name {
			t.Fatalf("display %d = %+v, want monitor %+v", i, displays[i], m)
		}
	}
	if len(asked) != 2 || asked[0] != 1 || asked[1] != 2 {
		t.Fatalf("usable area asked for %v", asked)
	}
}

func TestMapX11Error(t *testing.T) {
	if mapX11Error("op", nil) != nil {
		t.Fatal("nil error should stay nil")
	}

	gone := fmt.Errorf("%w: BadWindow", x11.ErrBadWindow)
	if err := mapX11Error("frame", gone); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	other := errors.New("connection reset")
	if err := mapX11Error("frame", other); errors.Is(err, ErrNotFound) || !errors.Is(err, other) {
		t.Fatalf("unexpected mapping: %v", err)
	}
}
