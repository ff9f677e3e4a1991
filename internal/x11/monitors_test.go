package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestUpdateStrutsForMonitor_TopPanelOnlyAffectsCoveredMonitor(t *testing.T) {
	// Two 1920x1080 monitors side by side; a 30px panel across the left one.
	left := &Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := &Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}
	sp := &ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919}

	var accLeft, accRight dockStruts
	updateStrutsForMonitor(left, 3840, 1080, sp, &accLeft)
	updateStrutsForMonitor(right, 3840, 1080, sp, &accRight)

	if accLeft.top != 30 {
		t.Fatalf("left monitor top strut = %d, want 30", accLeft.top)
	}
	if accRight != (dockStruts{}) {
		t.Fatalf("right monitor struts = %+v, want none", accRight)
	}
}

func TestUpdateStrutsForMonitor_BottomAndSideStruts(t *testing.T) {
	mon := &Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	sp := &ewmh.WmStrutPartial{
		Bottom:       48,
		BottomStartX: 0,
		BottomEndX:   1919,
		Left:         64,
		LeftStartY:   0,
		LeftEndY:     1079,
	}

	var acc dockStruts
	updateStrutsForMonitor(mon, 1920, 1080, sp, &acc)

	if acc.bottom != 48 || acc.left != 64 || acc.top != 0 || acc.right != 0 {
		t.Fatalf("struts = %+v", acc)
	}
}

func TestSpanIntersection(t *testing.T) {
	a := span{0, 0, 100, 100}
	if got := a.intersection(span{50, 50, 150, 150}); got != (extent{w: 50, h: 50}) {
		t.Fatalf("overlap = %+v", got)
	}
	if got := a.intersection(span{100, 0, 200, 100}); got != (extent{}) {
		t.Fatalf("touching spans should not overlap, got %+v", got)
	}
}
