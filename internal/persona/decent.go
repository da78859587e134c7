package persona

// DefaultTimeBudget is the travel time maximum for decent mobility
// [hours/day].
const DefaultTimeBudget = 1.2

// HasDecentMobility reports whether plan provides decent mobility for
// person under the given daily time budget [hours/day].
//
// Two independent criteria must both hold:
//
//  1. Needs satisfaction: for every purpose, the plan contains at least as
//     many trips serving that purpose as the person needs.
//  2. Time constraint: total travel time divided by the covered period does
//     not exceed budget.
func HasDecentMobility(person Person, plan TravelPlan, budget float64) bool {
	for p, needed := range person.TripNeeds {
		if plan.TripCount(p) < needed {
			return false
		}
	}

	// Travel time [hours/day] = total travel time [hours] / period [days].
	dailyTime := plan.TravelTime() / float64(plan.PeriodCovered)
	return dailyTime <= budget
}
