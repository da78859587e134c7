// Command mobilitysim generates a mobility scenario, evaluates the
// decent-mobility criterion over its population, and selects trips from the
// alternative catalog.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/decent-mobility/internal/mobility"
	"github.com/talgya/decent-mobility/internal/persona"
	"github.com/talgya/decent-mobility/internal/scenario"
	"github.com/talgya/decent-mobility/internal/selector"
	"github.com/talgya/decent-mobility/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML scenario configuration (optional)")
		seed       = flag.Int64("seed", 42, "generation seed (0 = random)")
		agents     = flag.Int("agents", 100, "population size")
		dbPath     = flag.String("db", "", "SQLite scenario store (optional)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := scenario.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = scenario.Load(*configPath)
		if err != nil {
			slog.Error("failed to load configuration", "error", err)
			os.Exit(1)
		}
	}
	cfg.Generation.Seed = *seed
	cfg.Generation.Agents = *agents

	// ── Scenario ─────────────────────────────────────────────────────
	sc := scenario.Generate(cfg.Generation)
	slog.Info("scenario generated",
		"agents", len(sc.Agents),
		"destinations", len(sc.Demand),
		"catalog", len(sc.Catalog),
	)

	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open scenario store", "error", err)
			os.Exit(1)
		}
		id, err := db.SaveScenario("mobilitysim run", *seed, sc)
		if err != nil {
			slog.Error("failed to save scenario", "error", err)
			os.Exit(1)
		}
		db.Close()
		slog.Info("scenario saved", "path", *dbPath, "id", id)
	}

	// ── Population evaluation ────────────────────────────────────────
	decent := 0
	totalDistance := 0.0
	for _, a := range sc.Agents {
		ok, err := a.HasDecentMobility(mobility.StrictMatched)
		if err != nil {
			slog.Error("evaluation failed", "error", err)
			os.Exit(1)
		}
		if ok {
			decent++
		}
		d, err := a.TotalDistance()
		if err != nil {
			slog.Error("evaluation failed", "error", err)
			os.Exit(1)
		}
		totalDistance += d
	}
	universal, err := sc.Model().UniversalDecentMobility(mobility.StrictMatched)
	if err != nil {
		slog.Error("evaluation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("population evaluated",
		"decent", decent,
		"population", len(sc.Agents),
		"universal_decent_mobility", universal,
		"planned_km_per_week", humanize.CommafWithDigits(totalDistance, 1),
	)

	// ── Persona-level check for one sample person ────────────────────
	table, err := cfg.PersonaTable()
	if err != nil {
		slog.Error("invalid persona table", "error", err)
		os.Exit(1)
	}
	person := persona.Person{Gender: persona.GenderFlint}
	if !person.AdoptPersona(table) {
		slog.Error("no persona classifies the sample person")
		os.Exit(1)
	}

	plan := persona.MakeTravelPlan(map[persona.Purpose]persona.PlanData{
		persona.PurposeWork:    {Count: 4, Distance: 1.0, Time: 0.1},
		persona.PurposeLeisure: {Count: 1, Distance: 2.0, Time: 0.2},
	})
	slog.Info("sample travel plan",
		"plan", plan.String(),
		"decent_mobility", persona.HasDecentMobility(person, plan, cfg.TimeBudget),
		"km_per_year", humanize.CommafWithDigits(plan.TravelDistance(persona.BaseYear), 0),
	)

	// ── Trip selection, both methods ─────────────────────────────────
	opts := cfg.SelectorOptions()
	opts.Rand = rand.New(rand.NewSource(*seed))

	for _, method := range []selector.Method{selector.MethodUniformRandom, selector.MethodMinEnergyTypicalTime} {
		sel, err := selector.SelectTrips(sc.Demand, sc.Catalog, method, opts)
		if err != nil {
			// Infeasibility is a legitimate outcome for a tight window.
			slog.Warn("trip selection failed", "method", method, "error", err)
			continue
		}
		for dest, alts := range sel {
			energy, minutes := 0.0, 0.0
			for _, alt := range alts {
				energy += alt.Energy
				minutes += alt.Time
			}
			slog.Info("destination served",
				"method", method,
				"destination", dest,
				"trips", len(alts),
				"energy_kj", humanize.CommafWithDigits(energy, 0),
				"minutes", humanize.CommafWithDigits(minutes, 1),
			)
		}
	}
}
