// Package match adapts the core game/player layer into the stateful
// objects the HTTP driver juggles across requests: one Match per live
// game-id, and a Service that sequences the five wire messages against the
// registry. There is no persistence: a match exists only in memory between
// (start) and (stop)/(abort).
package match

import (
	"sync"

	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// Match is one game-id's live player, from (start) until (stop)/(abort).
type Match struct {
	ID     string
	Game   *ggame.Game
	Role   term.Term
	Player player.Player

	// mu serializes play/update_moves/stop/abort against a single match, so
	// a slow play request can't race a concurrent stop for the same id.
	mu sync.Mutex
}

func (m *Match) Lock()   { m.mu.Lock() }
func (m *Match) Unlock() { m.mu.Unlock() }
