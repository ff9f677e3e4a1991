package daemon

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/platform"
)

type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.Level >= level {
			out = append(out, r.Message)
		}
	}
	return out
}

func TestWatcher_LogsChangesOnly(t *testing.T) {
	b := newFakeBackend()
	h := &recordHandler{}
	w := NewWatcher(WatcherConfig{Logger: slog.New(h)}, b, b)

	w.CheckNow()
	w.CheckNow()
	if msgs := h.messages(slog.LevelInfo); len(msgs) != 0 {
		t.Fatalf("expected a quiet baseline, got %v", msgs)
	}

	b.mu.Lock()
	b.permitted = false
	b.mu.Unlock()
	w.CheckNow()

	b.mu.Lock()
	b.permitted = true
	b.displays = append(b.displays, platform.Display{
		Name:    "HDMI-1",
		Frame:   geom.NewRect(geom.BottomLeft, 1920, 0, 1920, 1080),
		Visible: geom.NewRect(geom.BottomLeft, 1920, 0, 1920, 1080),
	})
	b.mu.Unlock()
	w.CheckNow()

	msgs := h.messages(slog.LevelInfo)
	joined := strings.Join(msgs, "|")
	for _, want := range []string{"support lost", "support available again", "display layout changed"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %v", want, msgs)
		}
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 change records, got %v", msgs)
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	b := newFakeBackend()
	w := NewWatcher(WatcherConfig{}, b, b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()
	<-done
}

func TestLayoutKey(t *testing.T) {
	a := []platform.Display{{Name: "A", Frame: geom.NewRect(geom.BottomLeft, 0, 0, 10, 10)}}
	b := []platform.Display{{Name: "A", Frame: geom.NewRect(geom.BottomLeft, 0, 0, 10, 20)}}
	if layoutKey(a) == layoutKey(b) {
		t.Fatal("different frames should give different keys")
	}
	if layoutKey(a) != layoutKey(append([]platform.Display(nil), a...)) {
		t.Fatal("same layout should give the same key")
	}
}
