package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1broseidon/halfsnap/internal/platform"
)

// WatcherConfig holds configuration for the watcher.
type WatcherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Watcher periodically re-checks window manager support and the display
// layout and logs when either changes. It never prompts and never tiles.
type Watcher struct {
	interval time.Duration
	gate     platform.PermissionGate
	screens  platform.Screens
	logger   *slog.Logger

	checked   bool
	permitted bool
	layout    string
}

// NewWatcher creates a new watcher with the given configuration.
func NewWatcher(cfg WatcherConfig, gate platform.PermissionGate, screens platform.Screens) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		interval: interval,
		gate:     gate,
		screens:  screens,
		logger:   logger.With("component", "watcher"),
	}
}

// Run starts the watch loop. Blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Debug("watcher started", "interval", w.interval)
	w.check()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// CheckNow triggers an immediate pass.
func (w *Watcher) CheckNow() {
	w.check()
}

// check performs a single pass.
func (w *Watcher) check() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("watcher panic recovered", "error", err)
		}
	}()

	permitted := w.gate.CheckOrRequest(false)
	if w.checked && permitted != w.permitted {
		if permitted {
			w.logger.Info("window manager support available again")
		} else {
			w.logger.Warn("window manager support lost; tiling will fail until it returns")
		}
	}

	displays, err := w.screens.Displays()
	if err != nil {
		w.logger.Debug("display enumeration failed", "error", err)
	} else {
		layout := layoutKey(displays)
		if w.checked && layout != w.layout {
			w.logger.Info("display layout changed", "displays", len(displays), "layout", layout)
		}
		w.layout = layout
	}

	w.permitted = permitted
	w.checked = true
}

// layoutKey summarizes displays so two enumerations of the same layout
// compare equal.
func layoutKey(displays []platform.Display) string {
	parts := make([]string, 0, len(displays))
	for _, d := range displays {
		parts = append(parts, fmt.Sprintf("%s=%s/%s", d.Name, d.Frame, d.Visible))
	}
	return strings.Join(parts, ";")
}
