// Package dispatch serializes tile requests from every trigger source onto a
// single worker goroutine.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/1broseidon/halfsnap/internal/engine"
	"github.com/1broseidon/halfsnap/internal/tiling"
)

// DefaultSize is the request buffer used when none is configured.
const DefaultSize = 8

var (
	// ErrStopped is returned for requests made after Stop.
	ErrStopped = errors.New("dispatch queue stopped")
	// ErrFull is returned when the buffer has no room for a request.
	ErrFull = errors.New("dispatch queue full")
)

// Tiler is the work a Queue runs.
type Tiler interface {
	Tile(dir tiling.Direction) engine.Outcome
}

type request struct {
	dir   tiling.Direction
	reply chan engine.Outcome
}

// Queue runs tile requests one at a time in arrival order.
type Queue struct {
	tiler  Tiler
	logger *slog.Logger
	reqs   chan request

	mu      sync.RWMutex
	started bool
	stopped bool
	done    chan struct{}
}

// New returns a stopped queue with room for size pending requests.
func New(tiler Tiler, size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Queue{
		tiler:  tiler,
		logger: logger,
		reqs:   make(chan request, size),
		done:   make(chan struct{}),
	}
}

// Start launches the worker. Calling Start more than once has no effect.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.stopped {
		return
	}
	q.started = true
	go q.run()
}

// Stop rejects new requests, lets the worker finish what is already queued
// and waits for it to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.stopped = true
	started := q.started
	close(q.reqs)
	q.mu.Unlock()

	if !started {
		close(q.done)
		return
	}
	<-q.done
}

// Post enqueues a request and returns without waiting for it. A request that
// does not fit is dropped with a warning.
func (q *Queue) Post(dir tiling.Direction) {
	if err := q.enqueue(request{dir: dir}); err != nil {
		q.logger.Warn("tile request dropped", "direction", dir.String(), "error", err)
	}
}

// Do enqueues a request and waits for its outcome or for ctx to end. A
// request abandoned by ctx still runs.
func (q *Queue) Do(ctx context.Context, dir tiling.Direction) (engine.Outcome, error) {
	reply := make(chan engine.Outcome, 1)
	if err := q.enqueue(request{dir: dir, reply: reply}); err != nil {
		return engine.Outcome{}, err
	}

	select {
	case out := <-reply:
		return out, nil
	case <-ctx.Done():
		return engine.Outcome{}, ctx.Err()
	}
}

// Pending returns the number of queued requests not yet picked up.
func (q *Queue) Pending() int {
	return len(q.reqs)
}

func (q *Queue) enqueue(req request) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		return ErrStopped
	}
	select {
	case q.reqs <- req:
		return nil
	default:
		return ErrFull
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for req := range q.reqs {
		out := q.handle(req.dir)
		if req.reply != nil {
			req.reply <- out
		}
	}
}

// handle runs one request. A panic inside the tiler is logged and turned
// into a failed outcome so the worker keeps serving.
func (q *Queue) handle(dir tiling.Direction) (out engine.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("tile panic recovered", "direction", dir.String(), "panic", r)
			out = engine.Outcome{Direction: dir, Err: errors.New("tile panicked")}
		}
	}()
	return q.tiler.Tile(dir)
}
