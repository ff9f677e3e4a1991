package geom

import "testing"

func TestFlip_RoundTripIsIdentity(t *testing.T) {
	refs := []Rect{
		NewRect(BottomLeft, 0, 0, 1920, 1080),
		NewRect(BottomLeft, 1920, 0, 2560, 1440),
		NewRect(BottomLeft, 0, 1080, 1280, 1024),
		NewRect(BottomLeft, -1280, -200, 1280, 1024),
	}
	rects := []Rect{
		NewRect(BottomLeft, 0, 0, 0, 0),
		NewRect(BottomLeft, 0, 0, 960, 1080),
		NewRect(BottomLeft, 960, 25, 961, 1055),
		NewRect(BottomLeft, -50, -70, 1, 1),
		NewRect(BottomLeft, 3000, 4000, 800, 600),
	}

	for _, ref := range refs {
		for _, r := range rects {
			tl, err := ToTopLeft(r, ref)
			if err != nil {
				t.Fatalf("ToTopLeft(%v, %v): %v", r, ref, err)
			}
			if tl.Space != TopLeft {
				t.Fatalf("ToTopLeft space = %s, want top-left", tl.Space)
			}
			back, err := ToBottomLeft(tl, ref)
			if err != nil {
				t.Fatalf("ToBottomLeft(%v, %v): %v", tl, ref, err)
			}
			if back != r {
				t.Fatalf("round trip of %v against %v = %v", r, ref, back)
			}
		}
	}
}

func TestFlip_FormulaUsesReferenceMaxY(t *testing.T) {
	ref := NewRect(BottomLeft, 0, 0, 1920, 1080)
	// A visible frame that excludes a 25px bar at the top of the screen.
	visible := NewRect(BottomLeft, 0, 0, 1920, 1055)

	got, err := ToTopLeft(visible, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := NewRect(TopLeft, 0, 25, 1920, 1055)
	if got != want {
		t.Fatalf("ToTopLeft = %v, want %v", got, want)
	}
}

func TestToTopLeft_RejectsWrongSpace(t *testing.T) {
	ref := NewRect(BottomLeft, 0, 0, 100, 100)
	if _, err := ToTopLeft(NewRect(TopLeft, 0, 0, 10, 10), ref); err == nil {
		t.Fatal("expected error converting a top-left rect to top-left")
	}
	if _, err := ToBottomLeft(NewRect(BottomLeft, 0, 0, 10, 10), ref); err == nil {
		t.Fatal("expected error converting a bottom-left rect to bottom-left")
	}
	if _, err := ToTopLeft(Rect{Width: 10, Height: 10}, ref); err == nil {
		t.Fatal("expected error for unknown space")
	}
}
