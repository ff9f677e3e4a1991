// Package engine turns a left/right tiling request into window writes: it
// gates on the window control privilege, resolves the focused window, finds
// the display holding it, computes the half and moves the window there.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/platform"
	"github.com/1broseidon/halfsnap/internal/tiling"
)

// State is a stage of a tile call. Calls start and finish in Idle.
type State int

const (
	Idle State = iota
	CheckingPermission
	ResolvingWindow
	LocatingScreen
	ComputingTarget
	Mutating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CheckingPermission:
		return "checking-permission"
	case ResolvingWindow:
		return "resolving-window"
	case LocatingScreen:
		return "locating-screen"
	case ComputingTarget:
		return "computing-target"
	case Mutating:
		return "mutating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reference selects the rect display frames are flipped against when moving
// between BottomLeft and TopLeft space.
type Reference string

const (
	// ReferenceDisplay flips against the frame of the display being used.
	ReferenceDisplay Reference = "display"
	// ReferenceDesktop flips against the union of all display frames.
	ReferenceDesktop Reference = "desktop"
)

// ParseReference validates a reference name. The empty string selects
// ReferenceDisplay.
func ParseReference(s string) (Reference, error) {
	switch Reference(s) {
	case "", ReferenceDisplay:
		return ReferenceDisplay, nil
	case ReferenceDesktop:
		return ReferenceDesktop, nil
	default:
		return "", fmt.Errorf("unknown flip reference %q (want %q or %q)", s, ReferenceDisplay, ReferenceDesktop)
	}
}

// Options tune a Tiler. They may be replaced at runtime with SetOptions.
type Options struct {
	PromptForPermission bool
	FlipReference       Reference
}

// DefaultOptions prompts for permission and flips against the display frame.
func DefaultOptions() Options {
	return Options{PromptForPermission: true, FlipReference: ReferenceDisplay}
}

// Outcome reports how a tile call ended. State is the last stage entered;
// Err is nil only when both window writes succeeded.
type Outcome struct {
	Direction tiling.Direction
	State     State
	Window    platform.WindowID
	Display   *platform.Display
	Target    geom.Rect
	Err       error
}

// OK reports whether the window was moved.
func (o Outcome) OK() bool { return o.Err == nil }

// Stats summarizes the calls a Tiler has handled.
type Stats struct {
	Calls     int
	Succeeded int
	Failed    int
	Last      *Outcome
	LastAt    time.Time
}

// Tiler runs tile calls against a platform backend. Tile is not reentrant;
// callers serialize it, normally through a dispatch queue.
type Tiler struct {
	backend platform.Backend
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	opts  Options
	stats Stats
}

// NewTiler returns a tiler over backend. A nil logger discards output.
func NewTiler(backend platform.Backend, opts Options, logger *slog.Logger) *Tiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.FlipReference == "" {
		opts.FlipReference = ReferenceDisplay
	}
	return &Tiler{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		opts:    opts,
	}
}

// Options returns the options the next call will use.
func (t *Tiler) Options() Options {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.opts
}

// SetOptions replaces the options used by subsequent calls.
func (t *Tiler) SetOptions(opts Options) {
	if opts.FlipReference == "" {
		opts.FlipReference = ReferenceDisplay
	}
	t.mu.Lock()
	t.opts = opts
	t.mu.Unlock()
}

// Stats returns a snapshot of the call counters.
func (t *Tiler) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.stats
	if s.Last != nil {
		last := *s.Last
		s.Last = &last
	}
	return s
}

// Tile moves the focused window into the dir half of the visible area of the
// display holding it. Every failure is logged once and returned in the
// Outcome; nothing is retried.
func (t *Tiler) Tile(dir tiling.Direction) Outcome {
	opts := t.Options()
	log := t.logger.With("direction", dir.String())
	out := Outcome{Direction: dir, State: Idle}

	enter := func(s State) {
		log.Debug("tile state", "from", out.State.String(), "to", s.String())
		out.State = s
	}

	enter(CheckingPermission)
	if granted, prompted := checkPermission(t.backend, opts.PromptForPermission); !granted {
		if prompted {
			log.Debug("tile aborted after prompt", "state", out.State.String())
			return t.record(out, ErrPermissionDenied)
		}
		return t.finish(log, out, ErrPermissionDenied)
	}

	enter(ResolvingWindow)
	win, err := ResolveFocusedWindow(t.backend, t.backend)
	if err != nil {
		return t.finish(log, out, err)
	}
	out.Window = win.ID

	enter(LocatingScreen)
	displays, err := t.backend.Displays()
	if err != nil {
		log.Debug("display enumeration failed", "error", err)
		displays = nil
	}
	reference := referenceFunc(opts.FlipReference, displays)

	display, found := platform.Display{}, false
	if frame, err := win.Frame(); err != nil {
		log.Debug("window frame unreadable", "window", win.ID, "error", err)
	} else {
		display, found = Locate(frame, displays, reference)
	}
	if !found {
		log.Debug("falling back to main display", "error", ErrNoContainingDisplay)
		display, err = t.backend.MainDisplay()
		if err != nil {
			return t.finish(log, out, fmt.Errorf("%w: %v", ErrNoDisplayAvailable, err))
		}
	}
	out.Display = &display

	enter(ComputingTarget)
	half := tiling.Compute(display.Visible, dir)
	target, err := geom.ToTopLeft(half, reference(display))
	if err != nil {
		return t.finish(log, out, err)
	}
	out.Target = target

	enter(Mutating)
	if err := Apply(win, target); err != nil {
		return t.finish(log, out, err)
	}

	log.Info("window tiled",
		"window", win.ID,
		"display", display.Name,
		"target", target.String(),
	)
	return t.finish(log, out, nil)
}

// finish records out and, on failure, logs the single diagnostic for the
// call.
func (t *Tiler) finish(log *slog.Logger, out Outcome, err error) Outcome {
	if err != nil {
		log.Warn("tile aborted", "state", out.State.String(), "error", err)
	}
	return t.record(out, err)
}

// record stores out as the last result and updates the counters.
func (t *Tiler) record(out Outcome, err error) Outcome {
	out.Err = err

	t.mu.Lock()
	t.stats.Calls++
	if err == nil {
		t.stats.Succeeded++
	} else {
		t.stats.Failed++
	}
	last := out
	t.stats.Last = &last
	t.stats.LastAt = t.now()
	t.mu.Unlock()

	return out
}

// checkPermission asks gate for the privilege. prompted is true only when
// the gate showed the user a prompt during this call.
func checkPermission(gate platform.PermissionGate, promptIfNeeded bool) (granted, prompted bool) {
	if p, ok := gate.(platform.Prompter); ok {
		return p.CheckOrPrompt(promptIfNeeded)
	}
	return gate.CheckOrRequest(promptIfNeeded), false
}

// referenceFunc returns the flip reference for a display under policy ref.
// The desktop union falls back to the display's own frame when the display
// list is empty or mixes spaces.
func referenceFunc(ref Reference, displays []platform.Display) func(platform.Display) geom.Rect {
	own := func(d platform.Display) geom.Rect { return d.Frame }
	if ref != ReferenceDesktop || len(displays) == 0 {
		return own
	}

	frames := make([]geom.Rect, 0, len(displays))
	for _, d := range displays {
		frames = append(frames, d.Frame)
	}
	desktop, err := geom.Union(frames...)
	if err != nil {
		return own
	}
	return func(platform.Display) geom.Rect { return desktop }
}
