package selector

import (
	"fmt"
	"sort"
)

// minEnergyWithinWindow solves the optimizing selection for one
// destination: choose non-negative integer counts c_i per candidate so that
//
//	minimize   Σ c_i · energy_i
//	subject to Σ c_i        == count
//	           Σ c_i · time_i within [TypicalTime-Tolerance, TypicalTime+Tolerance]
//
// by exact branch-and-bound over the candidate counts. Candidate sets are
// small (a handful of modes per destination), so exhaustive search with
// pruning finds the true optimum. Ties are broken by the first optimum
// encountered with candidates ordered by ascending energy.
func minEnergyWithinWindow(dest string, candidates []Alternative, count int, opts Options) ([]Alternative, error) {
	lo := opts.TypicalTime - opts.Tolerance
	hi := opts.TypicalTime + opts.Tolerance

	// Ascending energy makes the first feasible leaves cheap, tightening
	// the incumbent bound early.
	sorted := make([]Alternative, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Energy < sorted[j].Energy })

	n := len(sorted)

	// Suffix bounds over candidates i..n-1, used for pruning: the least
	// energy any remaining trip can cost, and the least/greatest time any
	// remaining trip can take.
	minEnergy := make([]float64, n+1)
	minTime := make([]float64, n+1)
	maxTime := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		minEnergy[i] = sorted[i].Energy
		if i < n-1 && minEnergy[i+1] < minEnergy[i] {
			minEnergy[i] = minEnergy[i+1]
		}
		minTime[i] = sorted[i].Time
		if i < n-1 && minTime[i+1] < minTime[i] {
			minTime[i] = minTime[i+1]
		}
		maxTime[i] = sorted[i].Time
		if i < n-1 && maxTime[i+1] > maxTime[i] {
			maxTime[i] = maxTime[i+1]
		}
	}

	budget := opts.MaxNodes
	if budget <= 0 {
		budget = DefaultOptions().MaxNodes
	}

	s := &search{
		cands:     sorted,
		minEnergy: minEnergy,
		minTime:   minTime,
		maxTime:   maxTime,
		lo:        lo,
		hi:        hi,
		budget:    budget,
		counts:    make([]int, n),
		best:      make([]int, n),
	}
	s.explore(0, count, 0, 0)

	if s.budget <= 0 || !s.found {
		return nil, fmt.Errorf("%w: destination %q, %d trips, time window [%.1f, %.1f] min",
			ErrInfeasibleSelection, dest, count, lo, hi)
	}

	chosen := make([]Alternative, 0, count)
	for i, c := range s.best {
		for j := 0; j < c; j++ {
			chosen = append(chosen, sorted[i])
		}
	}
	return chosen, nil
}

// search carries the branch-and-bound state for one destination.
type search struct {
	cands                       []Alternative
	minEnergy, minTime, maxTime []float64
	lo, hi                      float64
	budget                      int

	counts     []int
	best       []int
	bestEnergy float64
	found      bool
}

// explore assigns a count to candidate i with remaining trips to place and
// accumulated time/energy, pruning branches that cannot beat the incumbent
// or reach the time window.
func (s *search) explore(i, remaining int, time, energy float64) {
	if s.budget <= 0 {
		return
	}
	s.budget--

	if remaining == 0 {
		if time < s.lo || time > s.hi {
			return
		}
		if !s.found || energy < s.bestEnergy {
			s.found = true
			s.bestEnergy = energy
			copy(s.best, s.counts)
		}
		return
	}
	if i == len(s.cands) {
		return
	}

	// Energy bound: even all-cheapest remaining trips cannot beat the
	// incumbent.
	if s.found && energy+float64(remaining)*s.minEnergy[i] >= s.bestEnergy {
		return
	}
	// Time reachability: the window is out of reach no matter the split.
	if time+float64(remaining)*s.minTime[i] > s.hi {
		return
	}
	if time+float64(remaining)*s.maxTime[i] < s.lo {
		return
	}

	// Last candidate takes whatever is left; otherwise try every count,
	// largest first so the cheapest candidates are used greedily.
	if i == len(s.cands)-1 {
		s.counts[i] = remaining
		s.explore(i+1, 0, time+float64(remaining)*s.cands[i].Time, energy+float64(remaining)*s.cands[i].Energy)
		s.counts[i] = 0
		return
	}
	for c := remaining; c >= 0; c-- {
		s.counts[i] = c
		s.explore(i+1, remaining-c, time+float64(c)*s.cands[i].Time, energy+float64(c)*s.cands[i].Energy)
	}
	s.counts[i] = 0
}
