package chat

import (
	"fmt"
	"sync"

	"grillbook/models"
)

// SummaryLoader supplies the grounding text for new sessions.
type SummaryLoader interface {
	Load() (string, error)
}

// Registry is the process-wide session store, keyed by the caller-supplied
// session identifier. Safe for concurrent use across transports. Sessions
// without an explicit disconnect stay registered until process exit.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	loader   SummaryLoader
}

func NewRegistry(loader SummaryLoader) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		loader:   loader,
	}
}

// GetOrCreate returns the session for id, creating it on first access.
// The summary is loaded at most once per session, at creation. The second
// return value reports whether the session was newly created.
func (r *Registry) GetOrCreate(id string) (*Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[id]; ok {
		return sess, false, nil
	}

	summary, err := r.loader.Load()
	if err != nil {
		return nil, false, fmt.Errorf("load session summary: %w", err)
	}
	sess := &Session{
		Summary: summary,
		State:   models.StateNone,
	}
	r.sessions[id] = sess
	return sess, true, nil
}

// Get returns the session for id, or false when none is registered.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove deregisters the session for id. The Session struct itself is left
// to the garbage collector.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
