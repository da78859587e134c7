package mobility

import "fmt"

// TripPurpose enumerates why a trip is made.
type TripPurpose uint8

const (
	PurposeCommute TripPurpose = iota
	PurposeOther
)

// TripPurposeName returns a human-readable name for a trip purpose.
func TripPurposeName(p TripPurpose) string {
	switch p {
	case PurposeCommute:
		return "commute"
	case PurposeOther:
		return "other"
	default:
		return fmt.Sprintf("trip_purpose(%d)", p)
	}
}

// Need is a declared requirement for mobility: a number of trips per
// reference week, for a purpose, between two location roles. A need never
// references concrete places; roles are resolved through the agent's
// location mapping when matching.
type Need struct {
	Purpose     TripPurpose  `json:"purpose"`
	Origin      LocationType `json:"origin"`
	Destination LocationType `json:"destination"`

	// Count is the number of times the trip must be made in a typical week.
	// A zero count is vacuously satisfied.
	Count int `json:"count"`
}

// Alternative is a concrete, mode-specific way to make a trip between two
// resolved locations. Values are immutable once constructed; Distance is
// derived from the endpoints at construction time.
type Alternative struct {
	Origin      Location `json:"origin"`
	Destination Location `json:"destination"`

	Mode string `json:"mode"`

	Cost     float64 `json:"cost"`     // Monetary cost of one trip
	Distance float64 `json:"distance"` // Trip length [km], derived
	Energy   float64 `json:"energy"`   // Final energy demand [kJ]
	Time     float64 `json:"time"`     // Duration [hours]
}

// NewAlternative constructs an alternative between two locations. When both
// endpoints are grid locations, Distance is set to their Euclidean distance;
// the true distance would depend on the path taken, so this is a
// simplifying assumption. Other endpoint kinds leave Distance at zero for
// the caller to supply.
func NewAlternative(origin, destination Location, mode string) Alternative {
	a := Alternative{Origin: origin, Destination: destination, Mode: mode}
	if o, ok := origin.(GridLocation); ok {
		if d, ok := destination.(GridLocation); ok {
			a.Distance = o.DistanceTo(d)
		}
	}
	return a
}
