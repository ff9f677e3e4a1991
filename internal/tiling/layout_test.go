package tiling

import (
	"testing"

	"github.com/1broseidon/halfsnap/internal/geom"
)

func TestCompute_FullHDScenario(t *testing.T) {
	visible := geom.NewRect(geom.BottomLeft, 0, 0, 1920, 1080)

	left := Compute(visible, Left)
	if want := geom.NewRect(geom.BottomLeft, 0, 0, 960, 1080); left != want {
		t.Fatalf("left = %v, want %v", left, want)
	}

	right := Compute(visible, Right)
	if want := geom.NewRect(geom.BottomLeft, 960, 0, 960, 1080); right != want {
		t.Fatalf("right = %v, want %v", right, want)
	}
}

func TestCompute_OddWidthGivesRemainderToRight(t *testing.T) {
	visible := geom.NewRect(geom.BottomLeft, 0, 0, 1441, 900)

	left, right := Halves(visible)
	if left.Width != 720 {
		t.Fatalf("left width = %d, want 720", left.Width)
	}
	if right.Width != 721 {
		t.Fatalf("right width = %d, want 721", right.Width)
	}
}

func TestCompute_HalvesPartitionWidth(t *testing.T) {
	for _, x := range []int{0, 37, -1920} {
		for width := 0; width <= 257; width++ {
			visible := geom.NewRect(geom.BottomLeft, x, 40, width, 700)
			left, right := Halves(visible)

			if left.Width+right.Width != width {
				t.Fatalf("width=%d: %d + %d != %d", width, left.Width, right.Width, width)
			}
			if left.Width != width/2 {
				t.Fatalf("width=%d: left width %d, want %d", width, left.Width, width/2)
			}
			if left.X != visible.X {
				t.Fatalf("width=%d: left starts at %d, want %d", width, left.X, visible.X)
			}
			if left.MaxX() != right.X {
				t.Fatalf("width=%d: gap or overlap between %v and %v", width, left, right)
			}
			if right.MaxX() != visible.MaxX() {
				t.Fatalf("width=%d: right ends at %d, want %d", width, right.MaxX(), visible.MaxX())
			}
			if left.Y != visible.Y || right.Y != visible.Y || left.Height != 700 || right.Height != 700 {
				t.Fatalf("width=%d: vertical extent changed: %v %v", width, left, right)
			}
		}
	}
}

func TestCompute_KeepsSpaceAndOffset(t *testing.T) {
	visible := geom.NewRect(geom.TopLeft, 1920, 25, 2560, 1415)
	right := Compute(visible, Right)
	if right.Space != geom.TopLeft {
		t.Fatalf("space = %s, want top-left", right.Space)
	}
	if right.X != 1920+1280 || right.Y != 25 {
		t.Fatalf("right = %v", right)
	}
}

func TestCompute_NegativeWidthClamped(t *testing.T) {
	visible := geom.NewRect(geom.BottomLeft, 10, 10, -5, 100)
	left, right := Halves(visible)
	if left.Width != 0 || right.Width != 0 {
		t.Fatalf("expected zero widths, got %v %v", left, right)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"left", Left, false},
		{"RIGHT", Right, false},
		{" Left ", Left, false},
		{"up", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
