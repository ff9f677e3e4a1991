package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/platform"
)

// fakeBackend is an in-memory window system. Writes update frames so repeated
// calls see their own effects.
type fakeBackend struct {
	permitted bool
	prompts   []bool

	app        platform.AppRef
	appErr     error
	focused    platform.WindowID
	focusedErr error
	main       platform.WindowID
	mainErr    error

	displays       []platform.Display
	displaysErr    error
	mainDisplay    platform.Display
	mainDisplayErr error

	frames      map[platform.WindowID]geom.Rect
	positionErr error
	sizeErr     error

	calls     []string
	positions []geom.Point
	sizes     [][2]int
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		permitted: true,
		app:       platform.AppRef{PID: 4242, Window: 1, Class: "editor"},
		focused:   1,
		frames:    map[platform.WindowID]geom.Rect{},
	}
}

func (f *fakeBackend) CheckOrRequest(promptIfNeeded bool) bool {
	f.calls = append(f.calls, "CheckOrRequest")
	f.prompts = append(f.prompts, promptIfNeeded)
	return f.permitted
}

func (f *fakeBackend) ActiveApplication() (platform.AppRef, error) {
	f.calls = append(f.calls, "ActiveApplication")
	if f.appErr != nil {
		return platform.AppRef{}, f.appErr
	}
	return f.app, nil
}

func (f *fakeBackend) FocusedWindow(platform.AppRef) (platform.WindowID, error) {
	f.calls = append(f.calls, "FocusedWindow")
	return f.focused, f.focusedErr
}

func (f *fakeBackend) MainWindow(platform.AppRef) (platform.WindowID, error) {
	f.calls = append(f.calls, "MainWindow")
	return f.main, f.mainErr
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	f.calls = append(f.calls, "Displays")
	return f.displays, f.displaysErr
}

func (f *fakeBackend) MainDisplay() (platform.Display, error) {
	f.calls = append(f.calls, "MainDisplay")
	if f.mainDisplayErr != nil {
		return platform.Display{}, f.mainDisplayErr
	}
	return f.mainDisplay, nil
}

func (f *fakeBackend) Frame(id platform.WindowID) (geom.Rect, error) {
	f.calls = append(f.calls, "Frame")
	r, ok := f.frames[id]
	if !ok {
		return geom.Rect{}, platform.ErrNotFound
	}
	return r, nil
}

func (f *fakeBackend) SetPosition(id platform.WindowID, p geom.Point) error {
	f.calls = append(f.calls, "SetPosition")
	if f.positionErr != nil {
		return f.positionErr
	}
	f.positions = append(f.positions, p)
	r := f.frames[id]
	r.Space, r.X, r.Y = geom.TopLeft, p.X, p.Y
	f.frames[id] = r
	return nil
}

func (f *fakeBackend) SetSize(id platform.WindowID, width, height int) error {
	f.calls = append(f.calls, "SetSize")
	if f.sizeErr != nil {
		return f.sizeErr
	}
	f.sizes = append(f.sizes, [2]int{width, height})
	r := f.frames[id]
	r.Width, r.Height = width, height
	f.frames[id] = r
	return nil
}

func (f *fakeBackend) called(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// recordHandler keeps every record it is handed.
type recordHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
}

func newRecordHandler() *recordHandler {
	return &recordHandler{mu: &sync.Mutex{}, records: &[]slog.Record{}}
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

// atLeast returns the records at or above level.
func (h *recordHandler) atLeast(level slog.Level) []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []slog.Record
	for _, r := range *h.records {
		if r.Level >= level {
			out = append(out, r)
		}
	}
	return out
}

// gatedBackend answers permission checks through a real platform.Gate and
// everything else through the embedded fake.
type gatedBackend struct {
	*fakeBackend
	gate *platform.Gate
}

func (g gatedBackend) CheckOrRequest(promptIfNeeded bool) bool {
	return g.gate.CheckOrRequest(promptIfNeeded)
}

func (g gatedBackend) CheckOrPrompt(promptIfNeeded bool) (bool, bool) {
	return g.gate.CheckOrPrompt(promptIfNeeded)
}
