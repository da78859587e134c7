// Package selector chooses concrete travel alternatives to fill a
// destination-indexed trip demand.
//
// Selection is with repetition: a destination needing five trips may be
// served by the same alternative five times, matching draw-with-replacement
// semantics for the random method and integer selection counts for the
// optimizing method. A call either fully succeeds or returns an error with
// no partial result, so a travel plan can never be half-written.
package selector

import (
	"fmt"
	"math/rand"
	"sort"
)

// Alternative is a catalog entry: one mode-specific way to reach a
// destination. Destination names are the same keys used by the demand
// table.
type Alternative struct {
	Destination string  `json:"destination"`
	Mode        string  `json:"mode"`
	Cost        float64 `json:"cost"`     // Monetary cost of one trip
	Distance    float64 `json:"distance"` // [km]
	Time        float64 `json:"time"`     // [minutes]
	Energy      float64 `json:"energy"`   // Final energy demand [kJ]
}

// Demand maps a destination to the number of trips required.
type Demand map[string]int

// Selection maps a destination to its chosen alternatives, exactly as many
// as the demand required.
type Selection map[string][]Alternative

// Method identifies a selection strategy.
type Method string

const (
	// MethodUniformRandom draws each trip independently and uniformly from
	// the feasible candidates, with replacement.
	MethodUniformRandom Method = "uniform-random"
	// MethodMinEnergyTypicalTime minimizes total energy demand while
	// keeping total travel time within a tolerance band around the typical
	// travel time.
	MethodMinEnergyTypicalTime Method = "min-energy-typical-time"
)

// Options carries the selection parameters shared across destinations.
type Options struct {
	// Rand is the entropy source for MethodUniformRandom. Callers seed it
	// explicitly so runs are reproducible and safely parallel.
	Rand *rand.Rand

	// TypicalTime anchors the travel-time window [minutes] for
	// MethodMinEnergyTypicalTime.
	TypicalTime float64

	// Tolerance is the half-width of the travel-time window [minutes]:
	// per destination, total selected time must lie within
	// [TypicalTime-Tolerance, TypicalTime+Tolerance].
	Tolerance float64

	// Unavailable lists modes that must not be chosen.
	Unavailable []string

	// MaxNodes bounds the optimizer's search. Exhausting the budget is
	// reported as ErrInfeasibleSelection, the same as a provably empty
	// feasible region.
	MaxNodes int
}

// DefaultOptions returns selection parameters with the standard ±10 minute
// tolerance band.
func DefaultOptions() Options {
	return Options{
		Tolerance: 10,
		MaxNodes:  1 << 20,
	}
}

// SelectTrips chooses, for every destination in demand, exactly the
// demanded number of alternatives from catalog using the given method.
// Destinations with zero demand yield an empty choice. Modes listed in
// opts.Unavailable are never chosen.
//
// Errors: ErrUnsupportedMethod for an unknown method; ErrNoFeasibleAlternative
// when a destination with positive demand has no usable candidate;
// ErrInfeasibleSelection when the optimizing method cannot meet the time
// window. On any error the whole call fails and no selection is returned.
func SelectTrips(demand Demand, catalog []Alternative, method Method, opts Options) (Selection, error) {
	switch method {
	case MethodUniformRandom, MethodMinEnergyTypicalTime:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(method))
	}

	excluded := make(map[string]bool, len(opts.Unavailable))
	for _, m := range opts.Unavailable {
		excluded[m] = true
	}

	// Destinations in sorted order so failures are deterministic.
	destinations := make([]string, 0, len(demand))
	for dest := range demand {
		destinations = append(destinations, dest)
	}
	sort.Strings(destinations)

	result := make(Selection, len(demand))
	for _, dest := range destinations {
		count := demand[dest]
		if count <= 0 {
			// Vacuously satisfied.
			result[dest] = nil
			continue
		}

		candidates := filterCandidates(catalog, dest, excluded)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoFeasibleAlternative, dest)
		}

		var chosen []Alternative
		var err error
		switch method {
		case MethodUniformRandom:
			chosen, err = drawUniform(candidates, count, opts.Rand)
		case MethodMinEnergyTypicalTime:
			chosen, err = minEnergyWithinWindow(dest, candidates, count, opts)
		}
		if err != nil {
			return nil, err
		}
		result[dest] = chosen
	}
	return result, nil
}

// filterCandidates keeps catalog entries that reach dest by an available
// mode.
func filterCandidates(catalog []Alternative, dest string, excluded map[string]bool) []Alternative {
	var candidates []Alternative
	for _, alt := range catalog {
		if alt.Destination == dest && !excluded[alt.Mode] {
			candidates = append(candidates, alt)
		}
	}
	return candidates
}

// drawUniform draws count alternatives with replacement, uniform over
// candidates.
func drawUniform(candidates []Alternative, count int, rng *rand.Rand) ([]Alternative, error) {
	if rng == nil {
		return nil, fmt.Errorf("selector: %s requires an explicit Options.Rand source", MethodUniformRandom)
	}
	chosen := make([]Alternative, count)
	for i := range chosen {
		chosen[i] = candidates[rng.Intn(len(candidates))]
	}
	return chosen, nil
}
