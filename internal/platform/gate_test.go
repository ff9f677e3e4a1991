package platform

import (
	"errors"
	"testing"
)

func TestGate_PromptsOncePerFailureStreak(t *testing.T) {
	checkErr := errors.New("no window manager")
	prompts := 0
	gate := NewGate(
		func() error { return checkErr },
		func(error) { prompts++ },
	)

	for i := 0; i < 3; i++ {
		if gate.CheckOrRequest(true) {
			t.Fatalf("call %d: expected denied", i)
		}
	}
	if prompts != 1 {
		t.Fatalf("prompts = %d, want 1", prompts)
	}

	// Granting clears the pending prompt; a later revocation prompts again.
	checkErr = nil
	if !gate.CheckOrRequest(true) {
		t.Fatal("expected granted")
	}
	checkErr = errors.New("revoked")
	if gate.CheckOrRequest(true) {
		t.Fatal("expected denied after revocation")
	}
	if prompts != 2 {
		t.Fatalf("prompts = %d, want 2", prompts)
	}
}

func TestGate_NoPromptWhenNotRequested(t *testing.T) {
	prompts := 0
	gate := NewGate(
		func() error { return errors.New("denied") },
		func(error) { prompts++ },
	)

	if gate.CheckOrRequest(false) {
		t.Fatal("expected denied")
	}
	if prompts != 0 {
		t.Fatalf("prompts = %d, want 0", prompts)
	}

	// A later prompting call still gets its prompt.
	gate.CheckOrRequest(true)
	if prompts != 1 {
		t.Fatalf("prompts = %d, want 1", prompts)
	}
}

func TestWindow_ZeroHandleIsNotFound(t *testing.T) {
	var w Window
	if _, err := w.Frame(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Frame() error = %v, want ErrNotFound", err)
	}
	if err := w.SetSize(10, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetSize() error = %v, want ErrNotFound", err)
	}
}

func TestGate_CheckOrPromptReportsPrompt(t *testing.T) {
	gate := NewGate(
		func() error { return errors.New("no window manager") },
		func(error) {},
	)

	if granted, prompted := gate.CheckOrPrompt(false); granted || prompted {
		t.Fatalf("silent check = (%v, %v), want (false, false)", granted, prompted)
	}
	if granted, prompted := gate.CheckOrPrompt(true); granted || !prompted {
		t.Fatalf("first prompting check = (%v, %v), want (false, true)", granted, prompted)
	}
	if granted, prompted := gate.CheckOrPrompt(true); granted || prompted {
		t.Fatalf("pending check = (%v, %v), want (false, false)", granted, prompted)
	}

	silent := NewGate(func() error { return errors.New("denied") }, nil)
	if _, prompted := silent.CheckOrPrompt(true); prompted {
		t.Fatal("a gate without a prompt func must not report a prompt")
	}
}
