package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/decent-mobility/internal/persona"
	"github.com/talgya/decent-mobility/internal/selector"
)

// Config is the YAML scenario configuration: evaluation constants, the
// persona table, and generation parameters.
type Config struct {
	// TimeBudget is the decent-mobility travel time maximum [hours/day].
	TimeBudget float64 `yaml:"time_budget"`

	// TypicalTime and Tolerance parameterize the optimizing selector's
	// travel-time window [minutes].
	TypicalTime float64 `yaml:"typical_time"`
	Tolerance   float64 `yaml:"tolerance"`

	// UnavailableModes are excluded from selection everywhere.
	UnavailableModes []string `yaml:"unavailable_modes"`

	Personas []PersonaConfig `yaml:"personas"`

	Generation GenConfig `yaml:"generation"`
}

// PersonaConfig is one archetype row of the configuration.
type PersonaConfig struct {
	Gender            string         `yaml:"gender"` // "flint" or "male"
	Needs             map[string]int `yaml:"needs"`  // purpose name → weekly trips
	TypicalTravelTime float64        `yaml:"typical_travel_time"`
}

// DefaultConfig mirrors the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		TimeBudget:  persona.DefaultTimeBudget,
		TypicalTime: 30,
		Tolerance:   10,
		Personas: []PersonaConfig{
			{Gender: "male", Needs: map[string]int{"work": 4, "leisure": 1}, TypicalTravelTime: 30},
			{Gender: "flint", Needs: map[string]int{"work": 4, "leisure": 1}, TypicalTravelTime: 30},
		},
		Generation: DefaultGenConfig(),
	}
}

// Load reads a YAML configuration file. Missing generation fields fall back
// to the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.PersonaTable(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PersonaTable converts the configured persona rows into the archetype
// table consumed by the persona package.
func (c *Config) PersonaTable() ([]persona.Persona, error) {
	table := make([]persona.Persona, 0, len(c.Personas))
	for _, pc := range c.Personas {
		g, err := parseGender(pc.Gender)
		if err != nil {
			return nil, err
		}
		needs := make(map[persona.Purpose]int, len(pc.Needs))
		for name, count := range pc.Needs {
			p, err := parsePurpose(name)
			if err != nil {
				return nil, err
			}
			needs[p] = count
		}
		table = append(table, persona.Persona{
			Gender:            g,
			Needs:             needs,
			TypicalTravelTime: pc.TypicalTravelTime,
		})
	}
	return table, nil
}

// SelectorOptions builds the selector parameters from the configuration.
// The caller supplies the entropy source when using the random method.
func (c *Config) SelectorOptions() selector.Options {
	opts := selector.DefaultOptions()
	opts.TypicalTime = c.TypicalTime
	opts.Tolerance = c.Tolerance
	opts.Unavailable = c.UnavailableModes
	return opts
}

func parseGender(name string) (persona.Gender, error) {
	switch name {
	case "flint", "FLINT*":
		return persona.GenderFlint, nil
	case "male":
		return persona.GenderMale, nil
	default:
		return 0, fmt.Errorf("config: unknown gender %q", name)
	}
}

func parsePurpose(name string) (persona.Purpose, error) {
	switch name {
	case "work":
		return persona.PurposeWork, nil
	case "leisure":
		return persona.PurposeLeisure, nil
	default:
		return 0, fmt.Errorf("config: unknown purpose %q", name)
	}
}
