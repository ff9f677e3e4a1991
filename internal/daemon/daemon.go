// Package daemon runs the long-lived halfsnap process: global hotkeys, the
// dispatch queue, the IPC server and the watcher, all around one X event
// loop.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/halfsnap/internal/config"
	"github.com/1broseidon/halfsnap/internal/dispatch"
	"github.com/1broseidon/halfsnap/internal/engine"
	"github.com/1broseidon/halfsnap/internal/hotkeys"
	"github.com/1broseidon/halfsnap/internal/ipc"
	"github.com/1broseidon/halfsnap/internal/logging"
	"github.com/1broseidon/halfsnap/internal/platform"
	"github.com/1broseidon/halfsnap/internal/tiling"
)

// Backend is a platform backend that owns an event loop.
type Backend interface {
	platform.Backend
	EventLoop()
	Quit()
}

// Options configure a Daemon beyond what the config file holds.
type Options struct {
	// ConfigPath is reread on Reload.
	ConfigPath string
	// SocketPath is where the IPC server listens.
	SocketPath string
	// Level is adjusted on Reload when set.
	Level         *slog.LevelVar
	WatchInterval time.Duration
	Logger        *slog.Logger
}

// Daemon wires the tiler to its triggers. It implements ipc.Handler.
type Daemon struct {
	backend Backend
	tiler   *engine.Tiler
	queue   *dispatch.Queue
	opts    Options
	logger  *slog.Logger
	started time.Time

	mu      sync.RWMutex
	cfg     *config.Config
	hotkeys rebinder
}

// rebinder swaps the grabbed hotkeys. A failed Rebind leaves the previous
// bindings grabbed.
type rebinder interface {
	Rebind(bindings []hotkeys.Binding) error
}

var _ ipc.Handler = (*Daemon)(nil)

// New builds a daemon over backend. Nothing runs until Run.
func New(cfg *config.Config, backend Backend, opts Options) (*Daemon, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	tilerOpts, err := tilerOptions(cfg)
	if err != nil {
		return nil, err
	}

	tiler := engine.NewTiler(backend, tilerOpts, opts.Logger.With("component", "tiler"))
	logConfigWarnings(opts.Logger, cfg)
	return &Daemon{
		backend: backend,
		tiler:   tiler,
		queue:   dispatch.New(tiler, cfg.QueueSize, opts.Logger.With("component", "dispatch")),
		opts:    opts,
		logger:  opts.Logger,
		started: time.Now(),
		cfg:     cfg,
	}, nil
}

// Config returns the configuration in effect.
func (d *Daemon) Config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// Run starts every component and blocks in the event loop until ctx ends.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.Config()

	d.queue.Start()
	defer d.queue.Stop()

	// Ask once at launch so the user learns about a missing window manager
	// before the first keypress.
	if d.backend.CheckOrRequest(cfg.PromptForPermission) {
		d.logger.Info("window manager support detected")
	}

	bindings, err := hotkeys.Bindings(cfg.LeftHotkey, cfg.RightHotkey)
	if err != nil {
		return err
	}
	hk, err := hotkeys.NewHandler(d.backend, d.queue, d.logger)
	if err != nil {
		return err
	}
	if err := hk.Register(bindings); err != nil {
		return err
	}
	defer hk.Unregister()
	d.mu.Lock()
	d.hotkeys = hk
	d.mu.Unlock()

	if d.opts.SocketPath != "" {
		srv := ipc.NewServer(d.opts.SocketPath, d, d.logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("failed to start IPC server: %w", err)
		}
		defer srv.Stop()
	}

	watcher := NewWatcher(WatcherConfig{Interval: d.opts.WatchInterval, Logger: d.logger}, d.backend, d.backend)
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go watcher.Run(watchCtx)

	go func() {
		<-ctx.Done()
		d.backend.Quit()
	}()

	d.logger.Info("halfsnap running",
		"left", cfg.LeftHotkey,
		"right", cfg.RightHotkey,
		"flip_reference", cfg.FlipReference,
	)
	d.backend.EventLoop()
	d.logger.Info("halfsnap stopping")
	return nil
}

// Post enqueues a tile without waiting.
func (d *Daemon) Post(dir tiling.Direction) {
	d.queue.Post(dir)
}

// Tile enqueues a tile and waits for its outcome.
func (d *Daemon) Tile(ctx context.Context, dir tiling.Direction) (engine.Outcome, error) {
	return d.queue.Do(ctx, dir)
}

// Displays enumerates the displays fresh.
func (d *Daemon) Displays() ([]platform.Display, error) {
	return d.backend.Displays()
}

// Status reports uptime, support and counters.
func (d *Daemon) Status() ipc.StatusData {
	stats := d.tiler.Stats()
	status := ipc.StatusData{
		DaemonRunning: true,
		PID:           os.Getpid(),
		UptimeSeconds: int64(time.Since(d.started).Seconds()),
		Permission:    d.backend.CheckOrRequest(false),
		FlipReference: string(d.tiler.Options().FlipReference),
		QueuePending:  d.queue.Pending(),
		Calls:         stats.Calls,
		Succeeded:     stats.Succeeded,
		Failed:        stats.Failed,
	}
	if stats.Last != nil {
		last := ipc.NewTileResult(*stats.Last)
		status.Last = &last
		status.LastAt = stats.LastAt.Format(time.RFC3339)
	}
	return status
}

// Reload rereads the config file and applies it. Nothing changes unless the
// whole config applies, hotkeys included. The queue size only takes effect
// after a restart.
func (d *Daemon) Reload() error {
	res, err := config.LoadFromPath(d.opts.ConfigPath)
	if err != nil {
		return err
	}
	next := res.Config

	tilerOpts, err := tilerOptions(next)
	if err != nil {
		return err
	}
	bindings, err := hotkeys.Bindings(next.LeftHotkey, next.RightHotkey)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(next.LogLevel)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.cfg

	if d.hotkeys != nil && (prev.LeftHotkey != next.LeftHotkey || prev.RightHotkey != next.RightHotkey) {
		if err := d.hotkeys.Rebind(bindings); err != nil {
			return err
		}
	}

	d.cfg = next
	d.tiler.SetOptions(tilerOpts)
	if d.opts.Level != nil {
		d.opts.Level.Set(level)
	}

	logConfigWarnings(d.logger, next)
	if prev.QueueSize != next.QueueSize {
		d.logger.Warn("queue_size change needs a restart", "current", prev.QueueSize, "configured", next.QueueSize)
	}
	if prev.Display != next.Display {
		d.logger.Warn("display change needs a restart", "current", prev.Display, "configured", next.Display)
	}

	d.logger.Info("config reloaded", "files", len(res.Files))
	return nil
}

func logConfigWarnings(logger *slog.Logger, cfg *config.Config) {
	for _, w := range cfg.Warnings() {
		logger.Warn("config warning", "detail", w)
	}
}

func tilerOptions(cfg *config.Config) (engine.Options, error) {
	ref, err := engine.ParseReference(cfg.FlipReference)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		PromptForPermission: cfg.PromptForPermission,
		FlipReference:       ref,
	}, nil
}
