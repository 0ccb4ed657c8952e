package match

import (
	"sync"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
)

// Registry tracks every live Match by game-id, guarded by a mutex since
// matches are created and torn down by concurrent HTTP requests.
type Registry struct {
	mu      sync.Mutex
	matches map[string]*Match
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

// Create adds m under m.ID. It fails with KindDuplicateGameID if a match is
// already registered under that id: one game-id maps to exactly one active
// player.
func (r *Registry) Create(m *Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[m.ID]; ok {
		return ggerrors.Newf(ggerrors.KindDuplicateGameID, "game id %q already has an active match", m.ID)
	}
	r.matches[m.ID] = m
	return nil
}

// Get returns the match registered under id, or KindUnknownGameID if none
// exists.
func (r *Registry) Get(id string) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, ggerrors.Newf(ggerrors.KindUnknownGameID, "no active match for game id %q", id)
	}
	return m, nil
}

// Remove discards the match registered under id, if any.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, id)
}

// Len returns the number of currently active matches, used to answer the
// (info) message's busy/available status.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}
