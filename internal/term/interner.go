package term

import "sync"

// Interner maps atom and functor names to small integer ids so that term
// construction and structural equality are pointer/int comparisons instead
// of string comparisons. One Interner is owned per engine instance (one per
// match, in practice one per Game) and is never shared across games; two
// Terms built from different Interners are never considered equal, which
// matches the rule that actions/roles/propositions from different games are
// not comparable.
//
// Interner is internally synchronized because rule-set construction and
// reasoner evaluation may be invoked from a player's own goroutine while the
// HTTP layer logs diagnostics concurrently.
type Interner struct {
	mu    sync.Mutex
	ids   map[string]int32
	names []string
}

// NewInterner creates an empty, ready-to-use Interner.
func NewInterner() *Interner {
	return &Interner{
		ids: make(map[string]int32, 64),
	}
}

// Intern returns the id for s, assigning a new one if s has not been seen by
// this Interner before.
func (in *Interner) Intern(s string) int32 {
	in.mu.Lock()
	defer in.mu.Unlock()

	if id, ok := in.ids[s]; ok {
		return id
	}

	id := int32(len(in.names))
	in.names = append(in.names, s)
	in.ids[s] = id
	return id
}

// Lookup returns the id for s without assigning one, and whether it exists.
func (in *Interner) Lookup(s string) (int32, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	id, ok := in.ids[s]
	return id, ok
}

// Name returns the interned string for id. It panics if id was never
// assigned by this Interner, which indicates a term was built with a
// foreign Interner -- a programming error.
func (in *Interner) Name(id int32) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id < 0 || int(id) >= len(in.names) {
		panic("term: id not known to this Interner")
	}
	return in.names[id]
}
