// Package scenario synthesizes and configures mobility scenarios: agent
// populations with locations, needs, and plans, plus the alternative
// catalogs and demand tables the trip selector consumes.
//
// Generation is deterministic for a fixed seed: all randomness flows from
// one seeded source and a simplex density field derived from the same seed.
package scenario

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/decent-mobility/internal/mobility"
	"github.com/talgya/decent-mobility/internal/selector"
)

// ModeSpec describes one transport mode for catalog synthesis.
type ModeSpec struct {
	Name   string  `yaml:"name"`
	Speed  float64 `yaml:"speed"`  // [km/h]
	Energy float64 `yaml:"energy"` // [kJ/km]
	Cost   float64 `yaml:"cost"`   // [per km]
}

// GenConfig holds scenario generation parameters.
type GenConfig struct {
	Seed int64 `yaml:"seed"` // 0 = random

	Agents   int     `yaml:"agents"`
	GridSize float64 `yaml:"grid_size"` // Side length of the square grid [km]

	// PlanCoverage is the fraction of agents whose needs are given a full
	// plan; the rest are left with unmet needs so population evaluation
	// has something to find.
	PlanCoverage float64 `yaml:"plan_coverage"`

	Modes []ModeSpec `yaml:"modes"`
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:         0,
		Agents:       100,
		GridSize:     20,
		PlanCoverage: 0.8,
		Modes: []ModeSpec{
			{Name: "walk", Speed: 5, Energy: 0, Cost: 0},
			{Name: "bicycle", Speed: 15, Energy: 0, Cost: 0},
			{Name: "bus", Speed: 25, Energy: 150, Cost: 1.5},
			{Name: "car", Speed: 40, Energy: 2000, Cost: 4},
		},
	}
}

// Scenario is a generated population together with the selector inputs
// derived from it.
type Scenario struct {
	Agents []*mobility.Agent

	// Demand and Catalog feed SelectTrips: weekly trip counts by
	// destination category, and the mode alternatives serving each.
	Demand  selector.Demand
	Catalog []selector.Alternative
}

// Model wraps the scenario's agents for population-level evaluation.
func (sc *Scenario) Model() *mobility.Model {
	return mobility.NewModel(sc.Agents...)
}

// Generate creates a complete scenario. Home and work locations are placed
// by rejection sampling against a simplex density field, so population
// clusters emerge instead of uniform scatter.
func Generate(cfg GenConfig) *Scenario {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	rng := rand.New(rand.NewSource(seed))
	density := opensimplex.NewNormalized(seed)

	sc := &Scenario{Agents: make([]*mobility.Agent, 0, cfg.Agents)}

	for i := 0; i < cfg.Agents; i++ {
		home := sampleLocation(rng, density, cfg.GridSize)
		work := sampleLocation(rng, density, cfg.GridSize)

		// Weekly commute in both directions; counts vary a little around
		// the five-day work week.
		outbound := 4 + rng.Intn(3)
		a := &mobility.Agent{
			Location: map[mobility.LocationType]mobility.Location{
				mobility.LocationHome: home,
				mobility.LocationWork: work,
			},
			Needs: []mobility.Need{
				{Purpose: mobility.PurposeCommute, Origin: mobility.LocationHome, Destination: mobility.LocationWork, Count: outbound},
				{Purpose: mobility.PurposeCommute, Origin: mobility.LocationWork, Destination: mobility.LocationHome, Count: outbound},
			},
		}

		if rng.Float64() < cfg.PlanCoverage {
			a.Plan = []mobility.Alternative{
				planAlternative(home, work, cfg.Modes[rng.Intn(len(cfg.Modes))]),
				planAlternative(work, home, cfg.Modes[rng.Intn(len(cfg.Modes))]),
			}
		}

		sc.Agents = append(sc.Agents, a)
	}

	sc.Demand, sc.Catalog = synthesizeCatalog(rng, cfg)
	return sc
}

// sampleLocation draws a grid location with acceptance probability tied to
// the density field, clustering placements in high-density areas.
func sampleLocation(rng *rand.Rand, density opensimplex.Noise, size float64) mobility.GridLocation {
	const frequency = 0.15
	for {
		x := rng.Float64() * size
		y := rng.Float64() * size
		// Keep a floor so sparse areas stay reachable.
		accept := 0.15 + 0.85*density.Eval2(x*frequency, y*frequency)
		if rng.Float64() < accept {
			return mobility.GridLocation{X: x, Y: y}
		}
	}
}

// planAlternative builds a planned trip between two resolved locations
// using the given mode's speed, energy, and cost factors.
func planAlternative(origin, destination mobility.GridLocation, mode ModeSpec) mobility.Alternative {
	alt := mobility.NewAlternative(origin, destination, mode.Name)
	alt.Time = alt.Distance / mode.Speed // [hours]
	alt.Energy = alt.Distance * mode.Energy
	alt.Cost = alt.Distance * mode.Cost
	return alt
}

// catalogDestinations are the destination categories the selector serves.
var catalogDestinations = []string{"work", "grocery_store", "leisure"}

// synthesizeCatalog derives a destination-keyed demand table and mode
// catalog. Trip distances per destination vary by draw; times are in
// minutes to match the selector's travel-time window.
func synthesizeCatalog(rng *rand.Rand, cfg GenConfig) (selector.Demand, []selector.Alternative) {
	demand := selector.Demand{
		"work":          4 + rng.Intn(3),
		"grocery_store": 1 + rng.Intn(2),
		"leisure":       1 + rng.Intn(2),
	}

	var catalog []selector.Alternative
	for _, dest := range catalogDestinations {
		distance := 0.5 + rng.Float64()*cfg.GridSize/2
		for _, mode := range cfg.Modes {
			catalog = append(catalog, selector.Alternative{
				Destination: dest,
				Mode:        mode.Name,
				Cost:        distance * mode.Cost,
				Distance:    distance,
				Time:        distance / mode.Speed * 60, // [minutes]
				Energy:      distance * mode.Energy,
			})
		}
	}
	return demand, catalog
}
