package search

import (
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// Random returns a uniformly chosen legal action, selected with reservoir
// sampling in a single pass over the slice that LegalActions returns. That
// slice of all legal actions is still built in full before sampling starts.
type Random struct {
	*player.Base
}

// NewRandom constructs a Random player.
func NewRandom(base *player.Base) *Random {
	return &Random{Base: base}
}

func (p *Random) GetMove() (term.Term, error) {
	actions, err := p.State.LegalActions(p.Role, nil)
	if err != nil {
		return term.Term{}, err
	}
	var chosen term.Term
	for i, a := range actions {
		if p.RNG.Intn(i+1) == 0 {
			chosen = a
		}
	}
	return chosen, nil
}

var _ player.Player = (*Random)(nil)
