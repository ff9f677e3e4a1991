package platform

import "sync"

// Gate is a PermissionGate built from a probe and a prompt. The probe runs on
// every call because the answer can change between calls. The prompt fires
// once per failure streak: after it has fired, further failed checks stay
// quiet until a check succeeds again.
type Gate struct {
	probe  func() error
	prompt func(reason error)

	mu      sync.Mutex
	pending bool
}

var _ PermissionGate = (*Gate)(nil)

// NewGate returns a gate that calls probe to test for the privilege and
// prompt to ask the user for it.
func NewGate(probe func() error, prompt func(reason error)) *Gate {
	return &Gate{probe: probe, prompt: prompt}
}

var _ Prompter = (*Gate)(nil)

// CheckOrRequest reports whether the privilege is held. When it is not and
// promptIfNeeded is set, the user is prompted unless a prompt is already
// pending.
func (g *Gate) CheckOrRequest(promptIfNeeded bool) bool {
	granted, _ := g.CheckOrPrompt(promptIfNeeded)
	return granted
}

// CheckOrPrompt is CheckOrRequest that also reports whether this call
// prompted the user.
func (g *Gate) CheckOrPrompt(promptIfNeeded bool) (granted, prompted bool) {
	err := g.probe()

	g.mu.Lock()
	defer g.mu.Unlock()

	if err == nil {
		g.pending = false
		return true, false
	}
	if promptIfNeeded && !g.pending {
		g.pending = true
		if g.prompt != nil {
			g.prompt(err)
			return false, true
		}
	}
	return false, false
}
