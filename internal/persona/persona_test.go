package persona_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/decent-mobility/internal/persona"
)

func TestClassifyAndAdopt(t *testing.T) {
	table := persona.DefaultPersonas()

	p := persona.Person{Gender: persona.GenderFlint}
	require.True(t, p.AdoptPersona(table))
	require.Equal(t, 4, p.TripNeeds[persona.PurposeWork])
	require.Equal(t, 1, p.TripNeeds[persona.PurposeLeisure])

	// Adopted needs are a copy; mutating them must not touch the table.
	p.TripNeeds[persona.PurposeWork] = 99
	pa, ok := persona.Classify(p, table)
	require.True(t, ok)
	require.Equal(t, 4, pa.Needs[persona.PurposeWork])
}

func TestAdoptPersona_NoMatch(t *testing.T) {
	table := []persona.Persona{{Gender: persona.GenderMale}}

	p := persona.Person{Gender: persona.GenderFlint, TripNeeds: map[persona.Purpose]int{persona.PurposeWork: 2}}
	require.False(t, p.AdoptPersona(table))
	require.Equal(t, 2, p.TripNeeds[persona.PurposeWork], "needs untouched on no match")
}

func TestIsMember(t *testing.T) {
	pa := persona.Persona{Gender: persona.GenderMale}
	require.True(t, pa.IsMember(persona.Person{Gender: persona.GenderMale}))
	require.False(t, pa.IsMember(persona.Person{Gender: persona.GenderFlint}))
}

func TestHasDecentMobility(t *testing.T) {
	p := persona.Person{Gender: persona.GenderFlint}
	require.True(t, p.AdoptPersona(persona.DefaultPersonas()))

	// 4 work trips of 1 km / 0.1 h, 1 leisure trip of 2 km / 0.2 h:
	// needs met, 0.6 h over 7 days is well under budget.
	plan := persona.MakeTravelPlan(map[persona.Purpose]persona.PlanData{
		persona.PurposeWork:    {Count: 4, Distance: 1.0, Time: 0.1},
		persona.PurposeLeisure: {Count: 1, Distance: 2.0, Time: 0.2},
	})
	require.True(t, persona.HasDecentMobility(p, plan, persona.DefaultTimeBudget))
	require.InDelta(t, 6.0, plan.TravelDistance(persona.BaseTotal), 1e-9)

	// More distance travelled overall, but one work trip short: not decent.
	plan = persona.MakeTravelPlan(map[persona.Purpose]persona.PlanData{
		persona.PurposeWork:    {Count: 3, Distance: 1.0, Time: 0.1},
		persona.PurposeLeisure: {Count: 10, Distance: 2.0, Time: 0.2},
	})
	require.False(t, persona.HasDecentMobility(p, plan, persona.DefaultTimeBudget))
	require.InDelta(t, 23.0, plan.TravelDistance(persona.BaseTotal), 1e-9)
}

func TestHasDecentMobility_TimeBudgetExceeded(t *testing.T) {
	p := persona.Person{
		Gender:    persona.GenderMale,
		TripNeeds: map[persona.Purpose]int{persona.PurposeWork: 1},
	}

	// Needs are covered but 14 hours over 7 days blows the 1.2 h/day budget.
	plan := persona.MakeTravelPlan(map[persona.Purpose]persona.PlanData{
		persona.PurposeWork: {Count: 1, Distance: 700, Time: 14},
	})
	require.False(t, persona.HasDecentMobility(p, plan, persona.DefaultTimeBudget))

	// A generous budget accepts the same plan.
	require.True(t, persona.HasDecentMobility(p, plan, 2.0))
}

func TestTravelPlanAggregates(t *testing.T) {
	plan := persona.MakeTravelPlan(map[persona.Purpose]persona.PlanData{
		persona.PurposeWork:    {Count: 2, Distance: 5, Time: 0.5},
		persona.PurposeLeisure: {Count: 1, Distance: 10, Time: 1.0},
	})

	require.Equal(t, 2, plan.TripCount(persona.PurposeWork))
	require.Equal(t, 1, plan.TripCount(persona.PurposeLeisure))
	require.InDelta(t, 2.0, plan.TravelTime(), 1e-9)

	require.InDelta(t, 20.0, plan.TravelDistance(persona.BaseTotal), 1e-9)
	require.InDelta(t, 20.0/7.0, plan.TravelDistance(persona.BaseDay), 1e-9)
	require.InDelta(t, 20.0/(7.0/365.0), plan.TravelDistance(persona.BaseYear), 1e-9)
}
