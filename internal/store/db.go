// Package store provides SQLite-backed storage of scenario inputs —
// populations, demand tables, and alternative catalogs — so a run can be
// repeated from exactly the data that produced it. Evaluation and selection
// results are recomputed, never stored.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/decent-mobility/internal/mobility"
	"github.com/talgya/decent-mobility/internal/scenario"
	"github.com/talgya/decent-mobility/internal/selector"
)

// DB wraps a SQLite connection for scenario storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS agents (
		scenario_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		home_x REAL NOT NULL,
		home_y REAL NOT NULL,
		work_x REAL NOT NULL,
		work_y REAL NOT NULL,
		needs_json TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		PRIMARY KEY (scenario_id, idx)
	);

	CREATE TABLE IF NOT EXISTS demand (
		scenario_id TEXT NOT NULL,
		destination TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (scenario_id, destination)
	);

	CREATE TABLE IF NOT EXISTS catalog (
		scenario_id TEXT NOT NULL,
		destination TEXT NOT NULL,
		mode TEXT NOT NULL,
		cost REAL NOT NULL,
		distance REAL NOT NULL,
		time REAL NOT NULL,
		energy REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_catalog_scenario ON catalog(scenario_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// planEntry is the flat, JSON-serializable form of a planned alternative.
// Plans only ever hold grid-located trips, so the endpoints round-trip as
// concrete coordinates.
type planEntry struct {
	Origin      mobility.GridLocation `json:"origin"`
	Destination mobility.GridLocation `json:"destination"`
	Mode        string                `json:"mode"`
	Cost        float64               `json:"cost"`
	Distance    float64               `json:"distance"`
	Energy      float64               `json:"energy"`
	Time        float64               `json:"time"`
}

// SaveScenario writes a scenario under a fresh id and returns it.
func (db *DB) SaveScenario(name string, seed int64, sc *scenario.Scenario) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO scenarios (id, name, seed) VALUES (?, ?, ?)",
		id, name, seed,
	); err != nil {
		return "", fmt.Errorf("insert scenario: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO agents
		(scenario_id, idx, home_x, home_y, work_x, work_y, needs_json, plan_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, a := range sc.Agents {
		home, work, err := agentEndpoints(a)
		if err != nil {
			return "", fmt.Errorf("agent %d: %w", i, err)
		}

		needsJSON, _ := json.Marshal(a.Needs)
		plan := make([]planEntry, 0, len(a.Plan))
		for _, alt := range a.Plan {
			entry, err := toPlanEntry(alt)
			if err != nil {
				return "", fmt.Errorf("agent %d: %w", i, err)
			}
			plan = append(plan, entry)
		}
		planJSON, _ := json.Marshal(plan)

		if _, err := stmt.Exec(
			id, i, home.X, home.Y, work.X, work.Y,
			string(needsJSON), string(planJSON),
		); err != nil {
			return "", fmt.Errorf("insert agent %d: %w", i, err)
		}
	}

	for dest, count := range sc.Demand {
		if _, err := tx.Exec(
			"INSERT INTO demand (scenario_id, destination, count) VALUES (?, ?, ?)",
			id, dest, count,
		); err != nil {
			return "", fmt.Errorf("insert demand %q: %w", dest, err)
		}
	}

	for _, alt := range sc.Catalog {
		if _, err := tx.Exec(
			`INSERT INTO catalog (scenario_id, destination, mode, cost, distance, time, energy)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, alt.Destination, alt.Mode, alt.Cost, alt.Distance, alt.Time, alt.Energy,
		); err != nil {
			return "", fmt.Errorf("insert catalog entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LoadScenario reads a stored scenario back into memory.
func (db *DB) LoadScenario(id string) (*scenario.Scenario, error) {
	var exists int
	if err := db.conn.Get(&exists, "SELECT COUNT(*) FROM scenarios WHERE id = ?", id); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("scenario %q not found", id)
	}

	var agentRows []struct {
		HomeX     float64 `db:"home_x"`
		HomeY     float64 `db:"home_y"`
		WorkX     float64 `db:"work_x"`
		WorkY     float64 `db:"work_y"`
		NeedsJSON string  `db:"needs_json"`
		PlanJSON  string  `db:"plan_json"`
	}
	if err := db.conn.Select(&agentRows,
		"SELECT home_x, home_y, work_x, work_y, needs_json, plan_json FROM agents WHERE scenario_id = ? ORDER BY idx",
		id,
	); err != nil {
		return nil, fmt.Errorf("load agents: %w", err)
	}

	sc := &scenario.Scenario{Demand: selector.Demand{}}
	for i, row := range agentRows {
		a := &mobility.Agent{
			Location: map[mobility.LocationType]mobility.Location{
				mobility.LocationHome: mobility.GridLocation{X: row.HomeX, Y: row.HomeY},
				mobility.LocationWork: mobility.GridLocation{X: row.WorkX, Y: row.WorkY},
			},
		}
		if err := json.Unmarshal([]byte(row.NeedsJSON), &a.Needs); err != nil {
			return nil, fmt.Errorf("agent %d needs: %w", i, err)
		}
		var plan []planEntry
		if err := json.Unmarshal([]byte(row.PlanJSON), &plan); err != nil {
			return nil, fmt.Errorf("agent %d plan: %w", i, err)
		}
		for _, e := range plan {
			a.Plan = append(a.Plan, mobility.Alternative{
				Origin:      e.Origin,
				Destination: e.Destination,
				Mode:        e.Mode,
				Cost:        e.Cost,
				Distance:    e.Distance,
				Energy:      e.Energy,
				Time:        e.Time,
			})
		}
		sc.Agents = append(sc.Agents, a)
	}

	var demandRows []struct {
		Destination string `db:"destination"`
		Count       int    `db:"count"`
	}
	if err := db.conn.Select(&demandRows,
		"SELECT destination, count FROM demand WHERE scenario_id = ?", id,
	); err != nil {
		return nil, fmt.Errorf("load demand: %w", err)
	}
	for _, row := range demandRows {
		sc.Demand[row.Destination] = row.Count
	}

	var catalogRows []selector.Alternative
	if err := db.conn.Select(&catalogRows,
		"SELECT destination, mode, cost, distance, time, energy FROM catalog WHERE scenario_id = ? ORDER BY destination, mode",
		id,
	); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sc.Catalog = catalogRows

	return sc, nil
}

// ScenarioInfo summarizes one stored scenario.
type ScenarioInfo struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Seed      int64  `db:"seed"`
	CreatedAt string `db:"created_at"`
}

// ListScenarios returns stored scenarios, newest first.
func (db *DB) ListScenarios() ([]ScenarioInfo, error) {
	var infos []ScenarioInfo
	err := db.conn.Select(&infos,
		"SELECT id, name, seed, created_at FROM scenarios ORDER BY created_at DESC")
	return infos, err
}

func agentEndpoints(a *mobility.Agent) (home, work mobility.GridLocation, err error) {
	var ok bool
	home, ok = a.Location[mobility.LocationHome].(mobility.GridLocation)
	if !ok {
		return home, work, fmt.Errorf("home location is not grid-based")
	}
	work, ok = a.Location[mobility.LocationWork].(mobility.GridLocation)
	if !ok {
		return home, work, fmt.Errorf("work location is not grid-based")
	}
	return home, work, nil
}

func toPlanEntry(alt mobility.Alternative) (planEntry, error) {
	origin, ok := alt.Origin.(mobility.GridLocation)
	if !ok {
		return planEntry{}, fmt.Errorf("plan origin is not grid-based")
	}
	destination, ok := alt.Destination.(mobility.GridLocation)
	if !ok {
		return planEntry{}, fmt.Errorf("plan destination is not grid-based")
	}
	return planEntry{
		Origin:      origin,
		Destination: destination,
		Mode:        alt.Mode,
		Cost:        alt.Cost,
		Distance:    alt.Distance,
		Energy:      alt.Energy,
		Time:        alt.Time,
	}, nil
}
