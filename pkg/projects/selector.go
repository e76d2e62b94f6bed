package projects

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
)

// Selector picks one eligible project per person with a
// no-repeat-until-exhausted policy: unused projects are preferred, and
// only once every eligible project has been handed out does it fall
// back to reuse. The used set is shared across a whole generation run
// and must be threaded sequentially (see Assembler).
type Selector struct {
	rng  *rand.Rand
	used mapset.Set[int]
}

// NewSelector builds a selector with a deterministic seed so a
// generation run is reproducible.
func NewSelector(seed int64) (s *Selector) {
	s = &Selector{
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec // Reproducible assignment shuffling, not cryptography
		used: mapset.NewSet[int](),
	}
	return s
}

// Pick selects a project index from the eligible set. Unused indices
// win; the chosen one is marked used. When every eligible index has
// been used already, any of them may be returned (reuse) without
// growing the used set. An empty eligible set yields ok=false.
func (s *Selector) Pick(eligible []int) (idx int, ok bool) {
	if len(eligible) == 0 {
		return 0, false
	}

	unused := make([]int, 0, len(eligible))
	for _, candidate := range eligible {
		if !s.used.Contains(candidate) {
			unused = append(unused, candidate)
		}
	}

	if len(unused) > 0 {
		idx = unused[s.rng.Intn(len(unused))]
		s.used.Add(idx)
		return idx, true
	}

	idx = eligible[s.rng.Intn(len(eligible))]
	return idx, true
}

// UsedCount returns how many distinct projects have been assigned.
func (s *Selector) UsedCount() (n int) {
	n = s.used.Cardinality()
	return n
}
