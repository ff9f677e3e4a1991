package hotkeys

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/1broseidon/halfsnap/internal/platform"
	"github.com/1broseidon/halfsnap/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Poster accepts tile requests without waiting for them.
type Poster interface {
	Post(dir tiling.Direction)
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Binding ties a key sequence to a tile direction.
type Binding struct {
	Keys      string
	Direction tiling.Direction
}

// Bindings validates the left and right key sequences.
func Bindings(left, right string) ([]Binding, error) {
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)
	if left == "" || right == "" {
		return nil, fmt.Errorf("both left and right hotkeys are required")
	}
	if strings.EqualFold(left, right) {
		return nil, fmt.Errorf("left and right hotkeys are both %q", left)
	}
	return []Binding{
		{Keys: left, Direction: tiling.Left},
		{Keys: right, Direction: tiling.Right},
	}, nil
}

// grabber owns the key grabs on the root window.
type grabber interface {
	// parse checks that keys name a grabbable sequence without grabbing it.
	parse(keys string) error
	grab(keys string, fn func()) error
	releaseAll()
}

type x11Grabber struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

func (g x11Grabber) parse(keys string) error {
	_, codes, err := keybind.ParseString(g.xu, keys)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		return fmt.Errorf("no keycode for %q", keys)
	}
	return nil
}

func (g x11Grabber) grab(keys string, fn func()) error {
	return keybind.KeyPressFun(func(*xgbutil.XUtil, xevent.KeyPressEvent) {
		fn()
	}).Connect(g.xu, g.root, keys, true)
}

func (g x11Grabber) releaseAll() {
	keybind.Detach(g.xu, g.root)
}

// Handler manages global keyboard shortcuts
type Handler struct {
	grabs  grabber
	poster Poster
	logger *slog.Logger

	mu     sync.Mutex
	active []Binding
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, poster Poster, logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("global hotkeys need an X11 backend")
	}
	if logger == nil {
		logger = slog.Default()
	}

	xu := accessor.XUtil()
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		grabs:  x11Grabber{xu: xu, root: accessor.RootWindow()},
		poster: poster,
		logger: logger.With("component", "hotkeys"),
	}, nil
}

// Register grabs every binding. Every key sequence is parsed before the first
// grab. Callbacks only enqueue; tiling runs on the dispatch worker.
func (h *Handler) Register(bindings []Binding) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.parseAll(bindings); err != nil {
		return err
	}
	if err := h.grabAll(bindings); err != nil {
		h.releaseLocked()
		return err
	}
	return nil
}

// Rebind replaces the grabbed bindings. Nothing is released when a key
// sequence fails to parse, and a failed grab restores the previous bindings.
func (h *Handler) Rebind(bindings []Binding) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.parseAll(bindings); err != nil {
		return err
	}
	prev := h.active
	h.releaseLocked()
	if err := h.grabAll(bindings); err != nil {
		h.releaseLocked()
		if rerr := h.grabAll(prev); rerr != nil {
			h.logger.Error("failed to restore hotkeys", "error", rerr)
		}
		return err
	}
	return nil
}

// Unregister releases every grab made by Register.
func (h *Handler) Unregister() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.releaseLocked()
}

func (h *Handler) parseAll(bindings []Binding) error {
	for _, b := range bindings {
		if err := h.grabs.parse(b.Keys); err != nil {
			return fmt.Errorf("invalid %s hotkey %q: %w", b.Direction, b.Keys, err)
		}
	}
	return nil
}

func (h *Handler) grabAll(bindings []Binding) error {
	for _, b := range bindings {
		b := b
		err := h.grabs.grab(b.Keys, func() {
			h.logger.Debug("hotkey pressed", "keys", b.Keys, "direction", b.Direction.String())
			h.poster.Post(b.Direction)
		})
		if err != nil {
			return fmt.Errorf("failed to register %s hotkey %q: %w", b.Direction, b.Keys, err)
		}
		h.active = append(h.active, b)
		h.logger.Info("hotkey registered", "keys", b.Keys, "direction", b.Direction.String())
	}
	return nil
}

func (h *Handler) releaseLocked() {
	h.grabs.releaseAll()
	h.active = nil
}

// Active returns the bindings currently grabbed.
func (h *Handler) Active() []Binding {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Binding(nil), h.active...)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	xevent.IgnoreMods = ignoreList(unique)
}

func ignoreList(unique map[uint16]struct{}) []uint16 {
	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
