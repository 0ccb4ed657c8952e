package search

import (
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// Legal always returns the first legal action for its role. It never
// errors on time and needs no search budget at all, making it the
// fallback of last resort for every other player.
type Legal struct {
	*player.Base
}

// NewLegal constructs a Legal player.
func NewLegal(base *player.Base) *Legal {
	return &Legal{Base: base}
}

func (p *Legal) GetMove() (term.Term, error) {
	actions, err := p.State.LegalActions(p.Role, nil)
	if err != nil {
		return term.Term{}, err
	}
	return actions[0], nil
}

var _ player.Player = (*Legal)(nil)
