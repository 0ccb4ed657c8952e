package search

import (
	"math"

	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// DefaultExplorationConstant is the C in the UCB formula
// x̄ + C*sqrt(ln(N)/n) used when a player does not override it. √2 is the
// standard UCT constant for a reward normalized to [0, 1].
var DefaultExplorationConstant = math.Sqrt2

// mctsNode is one node of the partial-move tree: GDL's simultaneous moves
// are split into one tree level per role, cycling in Game.Roles() order,
// so a full game ply spans len(roles) levels and the state only advances
// once every role has contributed its part of the joint move.
type mctsNode struct {
	state      *ggame.State
	roleIdx    int // index into game.Roles() of the role choosing at this node
	pending    []ggame.Move
	totalScore float64
	visits     int
	children   map[string]*mctsNode
	childMoves map[string]term.Term
	unseen     []term.Term

	terminal    bool
	terminalVal int
}

func (n *mctsNode) mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.totalScore / float64(n.visits)
}

// MCTS implements the UCT move-selection strategy over the partial-move
// tree described in the player framework's §4.5. The tree is retained
// between New and successive GetMove calls, and advanced in UpdateMoves
// whenever every edge of the executed joint move has already been
// explored; otherwise it is rebuilt from the new state.
type MCTS struct {
	*player.Base
	root *mctsNode
	c    float64
}

// NewMCTS constructs an MCTS player with DefaultExplorationConstant and
// runs simulations for the remainder of the start clock.
func NewMCTS(base *player.Base) (*MCTS, error) {
	return NewMCTSWithC(base, DefaultExplorationConstant)
}

// NewMCTSWithC is NewMCTS with an explicit UCB exploration constant.
func NewMCTSWithC(base *player.Base, c float64) (*MCTS, error) {
	p := &MCTS{Base: base, c: c}
	root, err := p.newNode(base.State, nil)
	if err != nil {
		return nil, err
	}
	p.root = root

	tmr, leave, err := base.EnterStart()
	if err != nil {
		return nil, err
	}
	defer leave()
	if err := p.simulateUntil(tmr); err != nil && !ggerrors.Is(err, ggerrors.KindTimeUp) {
		return nil, err
	}
	return p, nil
}

// agentRoleIdx returns this player's own index into Game.Roles().
func (p *MCTS) agentRoleIdx() int {
	for i, r := range p.Game.Roles() {
		if r.Equal(p.Role) {
			return i
		}
	}
	return 0
}

func (p *MCTS) newNode(s *ggame.State, pending []ggame.Move) (*mctsNode, error) {
	terminal, err := s.IsTerminal(nil)
	if err != nil {
		return nil, err
	}
	roles := p.Game.Roles()
	n := &mctsNode{
		state:      s,
		roleIdx:    (p.agentRoleIdx() + len(pending)) % len(roles),
		pending:    pending,
		children:   map[string]*mctsNode{},
		childMoves: map[string]term.Term{},
		terminal:   terminal,
	}
	if terminal {
		n.terminalVal, err = s.Utility(p.Role, nil)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	role := roles[n.roleIdx]
	actions, err := s.LegalActions(role, nil)
	if err != nil {
		return nil, err
	}
	n.unseen = shuffled(actions, p.RNG)
	return n, nil
}

func (p *MCTS) GetMove() (term.Term, error) {
	tmr, leave, err := p.EnterPlay()
	if err != nil {
		return term.Term{}, err
	}
	defer leave()
	return withReasonerFallback(p.State, p.Role, func() (term.Term, error) {
		if err := p.simulateUntil(tmr); err != nil && !ggerrors.Is(err, ggerrors.KindTimeUp) {
			return term.Term{}, err
		}
		return p.bestRootMove()
	})
}

var _ player.Player = (*MCTS)(nil)

// bestRootMove returns the action with the highest mean score among root
// children with a positive visit count.
func (p *MCTS) bestRootMove() (term.Term, error) {
	role := p.Game.Roles()[p.root.roleIdx]
	if only, ok, err := oneLegalMove(p.root.state, role, nil); err != nil {
		return term.Term{}, err
	} else if ok {
		return only, nil
	}

	var best term.Term
	bestMean := math.Inf(-1)
	found := false
	for key, child := range p.root.children {
		if child.visits == 0 {
			continue
		}
		if child.mean() > bestMean {
			bestMean = child.mean()
			best = p.root.childMoves[key]
			found = true
		}
	}
	if !found {
		legal, err := p.root.state.LegalActions(role, nil)
		if err != nil {
			return term.Term{}, err
		}
		return legal[0], nil
	}
	return best, nil
}

func (p *MCTS) simulateUntil(tmr *clock.Timer) error {
	for {
		if err := tmr.Check(); err != nil {
			return err
		}
		if err := p.simulate(tmr); err != nil {
			return err
		}
	}
}

// simulate runs one select/expand/simulate/backpropagate iteration from
// the root.
func (p *MCTS) simulate(tmr *clock.Timer) error {
	path := []*mctsNode{p.root}
	node := p.root

	for !node.terminal && len(node.unseen) == 0 {
		node = p.selectChild(node)
		path = append(path, node)
	}

	var rolloutValue int
	if node.terminal {
		rolloutValue = node.terminalVal
	} else {
		child, err := p.expand(node)
		if err != nil {
			return err
		}
		path = append(path, child)
		if child.terminal {
			rolloutValue = child.terminalVal
		} else {
			v, err := randomPlayout(p.Game, child.state, p.Role, p.RNG, tmr)
			if err != nil {
				return err
			}
			rolloutValue = v
		}
	}

	// Every node stores this player's own normalized utility, regardless of
	// which role is deciding there. selectChild is what flips perspective,
	// since it is the only place a specific role's choice is being made.
	normalized := float64(rolloutValue-ggame.MinUtility) / float64(ggame.MaxUtility-ggame.MinUtility)
	for _, n := range path {
		n.totalScore += normalized
		n.visits++
	}
	return nil
}

// selectChild picks the child maximizing UCB, flipping the mean's sign at
// nodes whose role-to-move is not this player's (adversarial), with
// random tie-breaks.
func (p *MCTS) selectChild(node *mctsNode) *mctsNode {
	logN := math.Log(float64(node.visits + 1))
	adversarial := !p.Game.Roles()[node.roleIdx].Equal(p.Role)

	var tied []*mctsNode
	bestUCB := math.Inf(-1)

	for _, child := range node.children {
		var ucb float64
		if child.visits == 0 {
			ucb = math.Inf(1)
		} else {
			mean := child.mean()
			if adversarial {
				mean = 1 - mean
			}
			ucb = mean + p.c*math.Sqrt(logN/float64(child.visits))
		}
		switch {
		case ucb > bestUCB:
			bestUCB = ucb
			tied = []*mctsNode{child}
		case ucb == bestUCB:
			tied = append(tied, child)
		}
	}
	return tied[p.RNG.Intn(len(tied))]
}

// expand pops one unseen action from node (already shuffled at node
// creation), builds its child, and attaches it.
func (p *MCTS) expand(node *mctsNode) (*mctsNode, error) {
	i := len(node.unseen) - 1
	action := node.unseen[i]
	node.unseen = node.unseen[:i]

	role := p.Game.Roles()[node.roleIdx]
	pending := make([]ggame.Move, len(node.pending), len(node.pending)+1)
	copy(pending, node.pending)
	pending = append(pending, ggame.Move{Role: role, Action: action})

	childState := node.state
	if len(pending) == len(p.Game.Roles()) {
		next, err := node.state.Apply(pending, nil)
		if err != nil {
			return nil, err
		}
		childState = next
		pending = nil
	}

	child, err := p.newNode(childState, pending)
	if err != nil {
		return nil, err
	}
	key := moveKey(action)
	node.children[key] = child
	node.childMoves[key] = action
	return child, nil
}

func moveKey(t term.Term) string { return t.String() }

// UpdateMoves advances the retained search tree to the child reached by
// playing joint's moves one role at a time, starting with this player's own
// role and cycling through Game.Roles() order, as newNode does. If any
// edge along the way is unexplored, the tree is dropped and rebuilt fresh
// from the resulting state.
func (p *MCTS) UpdateMoves(joint []ggame.Move) error {
	next, err := p.State.Apply(joint, nil)
	if err != nil {
		return err
	}
	p.State = next

	roles := p.Game.Roles()
	agentIdx := p.agentRoleIdx()
	node := p.root
	ok := true
	for i := 0; i < len(roles); i++ {
		role := roles[(agentIdx+i)%len(roles)]
		child, found := node.children[moveKey(ownMove(joint, role))]
		if !found {
			ok = false
			break
		}
		node = child
	}
	if ok {
		p.root = node
		return nil
	}

	root, err := p.newNode(next, nil)
	if err != nil {
		return err
	}
	p.root = root
	return nil
}
