package mobility

import "fmt"

// Agent represents a specific individual, a persona, or a representative
// agent in a population.
type Agent struct {
	// Location maps each role to the agent's concrete place for that role.
	// Every role referenced by a need must be present before matching.
	Location map[LocationType]Location `json:"location"`

	// Needs are the agent's declared trip needs.
	Needs []Need `json:"needs"`

	// Plan is the agent's current set of alternatives intended to satisfy
	// the needs. It may be empty, partial, or complete.
	Plan []Alternative `json:"plan"`
}

// MatchPair is one entry of the need–alternative pairing. Either side may be
// nil: a need without a planned alternative, or a planned alternative that
// serves no declared need.
type MatchPair struct {
	Need        *Need
	Alternative *Alternative
}

// tripKey is the matching key: a resolved (origin, destination) pair.
type tripKey struct {
	origin      Location
	destination Location
}

// Match pairs the agent's needs with the alternatives in its plan, keyed by
// resolved (origin, destination). Pairs are returned in first-seen key
// order, and calling Match again on unchanged state yields the identical
// pairing.
//
// Collision policy: when two needs resolve to the same key, the later need
// overwrites the earlier one; likewise only the last alternative attached
// under a key is retained. Both are deliberate last-write-wins rules, kept
// from the model this engine operationalizes.
//
// Returns ErrUnresolvedLocation if any need references a role missing from
// the agent's location mapping.
func (a *Agent) Match() ([]MatchPair, error) {
	type entry struct {
		need *Need
		alt  *Alternative
	}

	table := make(map[tripKey]*entry, len(a.Needs)+len(a.Plan))
	order := make([]tripKey, 0, len(a.Needs)+len(a.Plan))

	// Transform needs into resolved (origin, destination) keys.
	for i := range a.Needs {
		n := &a.Needs[i]
		origin, ok := a.Location[n.Origin]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedLocation, LocationTypeName(n.Origin))
		}
		destination, ok := a.Location[n.Destination]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedLocation, LocationTypeName(n.Destination))
		}
		key := tripKey{origin: origin, destination: destination}
		if e, seen := table[key]; seen {
			e.need = n
			continue
		}
		table[key] = &entry{need: n}
		order = append(order, key)
	}

	// Attach planned alternatives to the needs they serve.
	for i := range a.Plan {
		alt := &a.Plan[i]
		key := tripKey{origin: alt.Origin, destination: alt.Destination}
		if e, seen := table[key]; seen {
			e.alt = alt
			continue
		}
		table[key] = &entry{alt: alt}
		order = append(order, key)
	}

	pairs := make([]MatchPair, 0, len(order))
	for _, key := range order {
		e := table[key]
		pairs = append(pairs, MatchPair{Need: e.need, Alternative: e.alt})
	}
	return pairs, nil
}

// Strictness selects which decent-mobility criterion an evaluation applies.
type Strictness uint8

const (
	// StrictMatched requires every need to have a matched alternative for
	// its resolved (origin, destination) pair.
	StrictMatched Strictness = iota

	// StrictCount only requires at least as many planned alternatives as
	// declared needs, ignoring what they serve. Retained as a weaker,
	// cheaper criterion for coarse screening.
	StrictCount
)

// HasDecentMobility reports whether the agent's plan provides decent
// mobility under the given strictness.
func (a *Agent) HasDecentMobility(s Strictness) (bool, error) {
	if s == StrictCount {
		return len(a.Plan) >= len(a.Needs), nil
	}

	pairs, err := a.Match()
	if err != nil {
		return false, err
	}
	for _, p := range pairs {
		if p.Need != nil && p.Alternative == nil {
			// No alternative for this need, so it cannot be met.
			return false, nil
		}
	}
	return true, nil
}

// TotalDistance returns the total weekly travel distance of the agent's
// plan: for every fully matched pair, the need's trip count times the
// alternative's distance. Unmatched needs and surplus alternatives
// contribute nothing.
func (a *Agent) TotalDistance() (float64, error) {
	pairs, err := a.Match()
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, p := range pairs {
		if p.Need == nil || p.Alternative == nil {
			continue
		}
		total += float64(p.Need.Count) * p.Alternative.Distance
	}
	return total, nil
}
