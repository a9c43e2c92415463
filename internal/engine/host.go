package engine

import "sync"

// Host owns the one session allowed per output. Launching a new session
// stops the previous one first, so two sessions never share a surface.
type Host struct {
	mu      sync.Mutex
	current *Session
}

// Launch tears down any running session, then creates and starts a new one.
// When start fails the host is left without a session.
func (h *Host) Launch(cfg Config, opts Options) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		h.current.Stop()
		h.current = nil
	}

	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Start(opts); err != nil {
		s.Stop()
		return nil, err
	}
	h.current = s
	return s, nil
}

// Current returns the running session, or nil.
func (h *Host) Current() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Stop stops the current session, if any.
func (h *Host) Stop() {
	h.mu.Lock()
	s := h.current
	h.current = nil
	h.mu.Unlock()

	if s != nil {
		s.Stop()
	}
}
