// Package export writes simulation results to SQLite for the external
// reporting layer. This is result export only: the simulator never reads
// state back, so it does not provide run durability.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/supplychain-sim/supplychain-sim/sim"
	"github.com/supplychain-sim/supplychain-sim/sim/trace"
)

// DB wraps a SQLite connection for results export.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a results database at the given path.
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
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		scenario TEXT,
		components_built INTEGER NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tick_metrics (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		component_cost REAL NOT NULL,
		sourcing_feasible INTEGER NOT NULL,
		components_built INTEGER NOT NULL,
		total_inventory INTEGER NOT NULL,
		production_failures INTEGER NOT NULL,
		sourcing_changes INTEGER NOT NULL,
		inventory_json TEXT NOT NULL,
		fx_rates_json TEXT NOT NULL,
		tariffs_json TEXT NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE TABLE IF NOT EXISTS scenario_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		action TEXT NOT NULL,
		supplier TEXT,
		country TEXT,
		duration_ticks INTEGER,
		value REAL,
		affected INTEGER,
		applied INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sourcing_changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		part TEXT NOT NULL,
		from_key TEXT,
		to_key TEXT NOT NULL,
		new_cost REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS production_failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		supplier_key TEXT NOT NULL,
		part TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tick_metrics_run ON tick_metrics(run_id);
	CREATE INDEX IF NOT EXISTS idx_scenario_log_run ON scenario_log(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes one run header plus its full metrics trace and scenario log
// in a single transaction.
func (db *DB) SaveRun(runID string, seed int64, scenario string, metrics *sim.Metrics, tr *trace.SimulationTrace) error {
	summary := metrics.Summarize()
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, seed, ticks, scenario, components_built, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, seed, summary.Ticks, scenario, summary.ComponentsBuilt, string(summaryJSON),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, snap := range metrics.Snapshots {
		inventoryJSON, err := json.Marshal(snap.Inventory)
		if err != nil {
			return err
		}
		fxJSON, err := json.Marshal(snap.FXRates)
		if err != nil {
			return err
		}
		tariffsJSON, err := json.Marshal(snap.Tariffs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO tick_metrics (run_id, tick, component_cost, sourcing_feasible,
				components_built, total_inventory, production_failures, sourcing_changes,
				inventory_json, fx_rates_json, tariffs_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, snap.Tick, snap.ComponentCost, snap.SourcingFeasible,
			snap.ComponentsBuilt, snap.TotalInventory, snap.ProductionFailures,
			snap.SourcingChanges, string(inventoryJSON), string(fxJSON), string(tariffsJSON),
		); err != nil {
			return fmt.Errorf("insert tick %d: %w", snap.Tick, err)
		}
	}

	for _, rec := range tr.Scenario {
		if _, err := tx.Exec(
			`INSERT INTO scenario_log (run_id, tick, action, supplier, country, duration_ticks, value, affected, applied)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.Tick, rec.Action, rec.Supplier, rec.Country,
			rec.DurationTicks, rec.Value, rec.Affected, rec.Applied,
		); err != nil {
			return fmt.Errorf("insert scenario record: %w", err)
		}
	}

	for _, rec := range tr.SourcingChanges {
		if _, err := tx.Exec(
			`INSERT INTO sourcing_changes (run_id, tick, part, from_key, to_key, new_cost)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, rec.Tick, rec.Part, rec.FromKey, rec.ToKey, rec.NewCost,
		); err != nil {
			return fmt.Errorf("insert sourcing change: %w", err)
		}
	}

	for _, rec := range tr.ProductionFailures {
		if _, err := tx.Exec(
			`INSERT INTO production_failures (run_id, tick, supplier_key, part)
			 VALUES (?, ?, ?, ?)`,
			runID, rec.Tick, rec.SupplierKey, rec.Part,
		); err != nil {
			return fmt.Errorf("insert production failure: %w", err)
		}
	}

	return tx.Commit()
}
