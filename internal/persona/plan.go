package persona

import "fmt"

// POI is a point of interest: a place whose visit satisfies a purpose.
type POI struct {
	// Serves is the need satisfied by a trip to this place.
	Serves Purpose `json:"serves"`
}

// Trip is a single realized trip to a point of interest.
type Trip struct {
	Distance    float64 `json:"distance"` // [km]
	Time        float64 `json:"time"`     // [hours]
	Destination POI     `json:"destination"`
}

// TravelPlan is the concrete collection of trips attributed to a person
// over a covered period. Plans are not edited in place; recomputation
// produces a new plan.
type TravelPlan struct {
	// PeriodCovered is the duration covered by the plan [days].
	PeriodCovered int `json:"period_covered"`

	Trips []Trip `json:"trips"`
}

// DefaultPeriod is the default plan coverage [days]: one week.
const DefaultPeriod = 7

// DistanceBase selects the time base for TravelDistance.
type DistanceBase uint8

const (
	BaseTotal DistanceBase = iota // Plain sum over the covered period
	BaseDay                       // Per day
	BaseYear                      // Per year
)

func (tp TravelPlan) String() string {
	return fmt.Sprintf("<travel plan with %d trips in %d days>", len(tp.Trips), tp.PeriodCovered)
}

// TravelDistance sums the plan's trip distances, scaled to the requested
// base [km, km/day, or km/year].
func (tp TravelPlan) TravelDistance(base DistanceBase) float64 {
	total := 0.0
	for _, t := range tp.Trips {
		total += t.Distance
	}
	switch base {
	case BaseDay:
		return total / float64(tp.PeriodCovered)
	case BaseYear:
		return total / (float64(tp.PeriodCovered) / 365.0)
	default:
		return total
	}
}

// TravelTime sums the plan's trip durations [hours].
func (tp TravelPlan) TravelTime() float64 {
	total := 0.0
	for _, t := range tp.Trips {
		total += t.Time
	}
	return total
}

// TripCount counts the plan's trips serving the given purpose.
func (tp TravelPlan) TripCount(p Purpose) int {
	count := 0
	for _, t := range tp.Trips {
		if t.Destination.Serves == p {
			count++
		}
	}
	return count
}

// PlanData describes, per purpose, the trip count and the average distance
// and duration of one such trip.
type PlanData struct {
	Count    int
	Distance float64
	Time     float64
}

// MakeTravelPlan constructs a plan from aggregate data: for each purpose,
// Count identical trips with the given distance and duration. Using this is
// the same as assuming the values are averages across all trips for the
// purpose.
func MakeTravelPlan(data map[Purpose]PlanData) TravelPlan {
	var trips []Trip
	for purpose, d := range data {
		poi := POI{Serves: purpose}
		for i := 0; i < d.Count; i++ {
			trips = append(trips, Trip{Distance: d.Distance, Time: d.Time, Destination: poi})
		}
	}
	return TravelPlan{PeriodCovered: DefaultPeriod, Trips: trips}
}
