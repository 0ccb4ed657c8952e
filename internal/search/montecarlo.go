package search

import "github.com/dekarrin/ggpagent/internal/player"

// NewMonteCarlo constructs a BoundedDepth player configured with the
// probe-average heuristic: at each frontier node it averages NumProbes
// random playouts instead of a static evaluator.
func NewMonteCarlo(base *player.Base, maxDepth, numProbes int) *BoundedDepth {
	bd := NewBoundedDepth(base, maxDepth, HeuristicMonteCarlo)
	bd.NumProbes = numProbes
	return bd
}
