package selector_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/decent-mobility/internal/selector"
)

// testCatalog mirrors the classic weekly-demand fixture: every destination
// reachable by car, bicycle, and bus at equal time but very different
// energy demand.
func testCatalog() (selector.Demand, []selector.Alternative) {
	demand := selector.Demand{"work": 1, "home": 4, "grocery_store": 1, "leisure": 2}
	modes := map[string]float64{"car": 1000, "bicycle": 0, "bus": 200}

	var catalog []selector.Alternative
	for dest := range demand {
		for mode, energy := range modes {
			catalog = append(catalog, selector.Alternative{
				Destination: dest,
				Mode:        mode,
				Cost:        2,
				Distance:    1.5,
				Time:        10,
				Energy:      energy,
			})
		}
	}
	return demand, catalog
}

func TestSelectTrips_UniformRandom(t *testing.T) {
	demand, catalog := testCatalog()
	opts := selector.DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(1))

	sel, err := selector.SelectTrips(demand, catalog, selector.MethodUniformRandom, opts)
	require.NoError(t, err)

	for dest, count := range demand {
		require.Len(t, sel[dest], count, dest)
		for _, alt := range sel[dest] {
			require.Equal(t, dest, alt.Destination)
		}
	}
}

func TestSelectTrips_UniformRandom_Reproducible(t *testing.T) {
	demand, catalog := testCatalog()

	run := func(seed int64) selector.Selection {
		opts := selector.DefaultOptions()
		opts.Rand = rand.New(rand.NewSource(seed))
		sel, err := selector.SelectTrips(demand, catalog, selector.MethodUniformRandom, opts)
		require.NoError(t, err)
		return sel
	}

	require.Equal(t, run(42), run(42), "same seed, same selection")
}

func TestSelectTrips_UniformRandom_ModeExcluded(t *testing.T) {
	demand, catalog := testCatalog()
	opts := selector.DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(7))
	opts.Unavailable = []string{"car"}

	sel, err := selector.SelectTrips(demand, catalog, selector.MethodUniformRandom, opts)
	require.NoError(t, err)

	for dest := range demand {
		for _, alt := range sel[dest] {
			require.NotEqual(t, "car", alt.Mode)
		}
	}
}

func TestSelectTrips_AllModesExcluded(t *testing.T) {
	demand, catalog := testCatalog()
	opts := selector.DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(7))
	opts.Unavailable = []string{"car", "bicycle", "bus"}

	_, err := selector.SelectTrips(demand, catalog, selector.MethodUniformRandom, opts)
	require.ErrorIs(t, err, selector.ErrNoFeasibleAlternative)
}

func TestSelectTrips_UnsupportedMethod(t *testing.T) {
	demand, catalog := testCatalog()

	_, err := selector.SelectTrips(demand, catalog, selector.Method("blabla"), selector.DefaultOptions())
	require.ErrorIs(t, err, selector.ErrUnsupportedMethod)
	require.ErrorContains(t, err, "blabla")

	// Independent of demand or catalog contents.
	_, err = selector.SelectTrips(nil, nil, selector.Method("blabla"), selector.DefaultOptions())
	require.ErrorIs(t, err, selector.ErrUnsupportedMethod)
}

func TestSelectTrips_UniformRandom_NilSource(t *testing.T) {
	demand, catalog := testCatalog()

	_, err := selector.SelectTrips(demand, catalog, selector.MethodUniformRandom, selector.DefaultOptions())
	require.Error(t, err, "ambient global randomness is not an option")
}

func TestSelectTrips_ZeroDemand(t *testing.T) {
	_, catalog := testCatalog()
	opts := selector.DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(1))

	sel, err := selector.SelectTrips(selector.Demand{"work": 0}, catalog, selector.MethodUniformRandom, opts)
	require.NoError(t, err)
	require.Empty(t, sel["work"])
}

func TestSelectTrips_MinEnergy_KnownOptimum(t *testing.T) {
	catalog := []selector.Alternative{
		{Destination: "work", Mode: "bicycle", Time: 15, Energy: 0},
		{Destination: "work", Mode: "bus", Time: 10, Energy: 5},
		{Destination: "work", Mode: "car", Time: 5, Energy: 50},
	}
	opts := selector.DefaultOptions()
	opts.TypicalTime = 30
	opts.Tolerance = 5

	sel, err := selector.SelectTrips(selector.Demand{"work": 3}, catalog, selector.MethodMinEnergyTypicalTime, opts)
	require.NoError(t, err)
	require.Len(t, sel["work"], 3)

	// 1×bicycle + 2×bus: time 35 within [25, 35], energy 10 — the unique
	// minimum over all 10 count-3 multisets.
	byMode := map[string]int{}
	totalEnergy, totalTime := 0.0, 0.0
	for _, alt := range sel["work"] {
		byMode[alt.Mode]++
		totalEnergy += alt.Energy
		totalTime += alt.Time
	}
	require.Equal(t, map[string]int{"bicycle": 1, "bus": 2}, byMode)
	require.InDelta(t, 10.0, totalEnergy, 1e-9)
	require.GreaterOrEqual(t, totalTime, 25.0)
	require.LessOrEqual(t, totalTime, 35.0)
}

func TestSelectTrips_MinEnergy_MatchesExhaustiveEnumeration(t *testing.T) {
	catalog := []selector.Alternative{
		{Destination: "leisure", Mode: "walk", Time: 40, Energy: 0},
		{Destination: "leisure", Mode: "bicycle", Time: 22, Energy: 1},
		{Destination: "leisure", Mode: "bus", Time: 14, Energy: 180},
		{Destination: "leisure", Mode: "tram", Time: 12, Energy: 150},
		{Destination: "leisure", Mode: "car", Time: 8, Energy: 900},
	}

	for _, count := range []int{1, 2, 3, 4} {
		opts := selector.DefaultOptions()
		opts.TypicalTime = float64(count) * 20
		opts.Tolerance = 10

		want, feasible := bruteForceMinEnergy(catalog, count, opts.TypicalTime-opts.Tolerance, opts.TypicalTime+opts.Tolerance)

		sel, err := selector.SelectTrips(selector.Demand{"leisure": count}, catalog, selector.MethodMinEnergyTypicalTime, opts)
		if !feasible {
			require.ErrorIs(t, err, selector.ErrInfeasibleSelection, "count=%d", count)
			continue
		}
		require.NoError(t, err, "count=%d", count)
		require.Len(t, sel["leisure"], count)

		energy, time := 0.0, 0.0
		for _, alt := range sel["leisure"] {
			energy += alt.Energy
			time += alt.Time
		}
		require.GreaterOrEqual(t, time, opts.TypicalTime-opts.Tolerance)
		require.LessOrEqual(t, time, opts.TypicalTime+opts.Tolerance)
		require.InDelta(t, want, energy, 1e-9, "count=%d", count)
	}
}

// bruteForceMinEnergy enumerates every count-sized multiset of catalog
// entries and returns the minimal feasible energy.
func bruteForceMinEnergy(catalog []selector.Alternative, count int, lo, hi float64) (float64, bool) {
	best, found := 0.0, false
	var walk func(i, remaining int, time, energy float64)
	walk = func(i, remaining int, time, energy float64) {
		if remaining == 0 {
			if time >= lo && time <= hi && (!found || energy < best) {
				best, found = energy, true
			}
			return
		}
		if i == len(catalog) {
			return
		}
		for c := 0; c <= remaining; c++ {
			walk(i+1, remaining-c, time+float64(c)*catalog[i].Time, energy+float64(c)*catalog[i].Energy)
		}
	}
	walk(0, count, 0, 0)
	return best, found
}

func TestSelectTrips_MinEnergy_InfeasibleWindow(t *testing.T) {
	catalog := []selector.Alternative{
		{Destination: "work", Mode: "bus", Time: 10, Energy: 5},
	}
	opts := selector.DefaultOptions()
	opts.TypicalTime = 100
	opts.Tolerance = 5

	_, err := selector.SelectTrips(selector.Demand{"work": 2}, catalog, selector.MethodMinEnergyTypicalTime, opts)
	require.ErrorIs(t, err, selector.ErrInfeasibleSelection)
	require.ErrorContains(t, err, "work")
	require.ErrorContains(t, err, "95.0")
}

func TestSelectTrips_AtomicFailure(t *testing.T) {
	catalog := []selector.Alternative{
		{Destination: "work", Mode: "bus", Time: 10, Energy: 5},
		// "leisure" is absent from the catalog entirely.
	}
	opts := selector.DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(3))

	sel, err := selector.SelectTrips(selector.Demand{"work": 1, "leisure": 1}, catalog, selector.MethodUniformRandom, opts)
	require.ErrorIs(t, err, selector.ErrNoFeasibleAlternative)
	require.Nil(t, sel, "no partial results on failure")
}
