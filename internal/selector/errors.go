package selector

import "errors"

var (
	// ErrNoFeasibleAlternative indicates a destination with positive demand
	// has no catalog alternative left after destination and mode filtering.
	ErrNoFeasibleAlternative = errors.New("selector: no feasible alternative for destination")
	// ErrUnsupportedMethod indicates an unrecognized selection method.
	ErrUnsupportedMethod = errors.New("selector: unsupported selection method")
	// ErrInfeasibleSelection indicates no count-sized selection satisfies
	// the travel-time window, or the search budget was exhausted.
	ErrInfeasibleSelection = errors.New("selector: no selection satisfies the travel-time window")
)
