package cmd

import (
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/supplychain-sim/supplychain-sim/sim"
	"github.com/supplychain-sim/supplychain-sim/sim/export"
)

var (
	// CLI flags for the run command
	seed       int64  // Seed for all simulation randomness
	ticks      int64  // Number of simulation ticks to run
	logLevel   string // Log verbosity level
	rosterPath string // YAML supplier roster file
	scenario   string // Scenario script path or preset name
	outputJSON string // Path for the JSON results document
	outputDB   string // Path for the SQLite results database
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "supplychain-sim",
	Short: "Discrete-event simulator for automotive parts supply chains",
}

// resolveScenario treats the argument as a file path first, then as a preset
// name. An empty argument means no scenario.
func resolveScenario(arg string) (*sim.ScenarioSpec, error) {
	if arg == "" {
		return nil, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return sim.LoadScenarioSpec(arg)
	}
	if preset, ok := sim.ScenarioPresets()[arg]; ok {
		return preset, nil
	}
	return nil, os.ErrNotExist
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the supply-chain simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if rosterPath == "" {
			logrus.Fatalf("Supplier roster not provided. Exiting simulation.")
		}

		roster, err := sim.LoadRoster(rosterPath)
		if err != nil {
			logrus.Fatalf("unable to load roster: %v", err)
		}

		spec, err := resolveScenario(scenario)
		if err != nil {
			logrus.Fatalf("unknown scenario %q: not a file or preset", scenario)
		}

		s, err := sim.NewSimulatorFromRoster(sim.NewSimulationKey(seed), roster)
		if err != nil {
			logrus.Fatalf("unable to build model from roster: %v", err)
		}

		runID := uuid.NewString()
		scenarioName := ""
		if spec != nil {
			scenarioName = spec.Name
		}
		logrus.Infof("starting run %s: %d suppliers, seed=%d, ticks=%d, scenario=%q",
			runID, len(s.Suppliers), seed, ticks, scenarioName)

		startTime := time.Now()
		for i := int64(0); i < ticks; i++ {
			if spec != nil {
				spec.ApplyDue(s.Clock, s.Scenario)
			}
			s.Step()
		}
		logrus.Infof("run %s finished in %s", runID, time.Since(startTime))

		s.Metrics.Print()

		if outputJSON != "" {
			if err := writeJSONResults(outputJSON, runID, seed, scenarioName, s); err != nil {
				logrus.Fatalf("unable to write JSON results: %v", err)
			}
			logrus.Infof("results written to %s", outputJSON)
		}

		if outputDB != "" {
			db, err := export.Open(outputDB)
			if err != nil {
				logrus.Fatalf("unable to open results database: %v", err)
			}
			defer db.Close()
			if err := db.SaveRun(runID, seed, scenarioName, s.Metrics, s.Trace); err != nil {
				logrus.Fatalf("unable to save results: %v", err)
			}
			logrus.Infof("results saved to %s", outputDB)
		}
	},
}

// scenariosCmd lists the built-in scenario presets
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List built-in scenario presets",
	Run: func(cmd *cobra.Command, args []string) {
		presets := sim.ScenarioPresets()
		names := make([]string, 0, len(presets))
		for name := range presets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := presets[name]
			cmd.Printf("%-16s %s (%d actions)\n", name, p.Description, len(p.Actions))
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all simulation randomness")
	runCmd.Flags().Int64Var(&ticks, "ticks", 100, "Number of simulation ticks to run")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&rosterPath, "roster", "", "YAML supplier roster file")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "Scenario script file or preset name (see 'scenarios')")
	runCmd.Flags().StringVar(&outputJSON, "output-json", "", "Write the full results document to this JSON file")
	runCmd.Flags().StringVar(&outputDB, "output-db", "", "Write results to this SQLite database")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
}
