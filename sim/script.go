package sim

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ScenarioAction is one scripted shock, applied strictly between ticks when
// the simulation clock reaches Tick.
type ScenarioAction struct {
	Tick     int64  `yaml:"tick"`
	Action   string `yaml:"action"`
	Supplier string `yaml:"supplier,omitempty"`
	Country  string `yaml:"country,omitempty"`

	DurationTicks int64   `yaml:"duration_ticks,omitempty"`
	Rate          float64 `yaml:"rate,omitempty"`
	Volatility    float64 `yaml:"volatility,omitempty"`
}

// ScenarioSpec is a scripted sequence of shocks, loaded from YAML or built
// by a preset constructor.
type ScenarioSpec struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Actions     []ScenarioAction `yaml:"actions"`
}

var validActions = map[string]bool{
	ActionSupplierDisruption: true,
	ActionTariffShock:        true,
	ActionSanctions:          true,
	ActionRemoveSanctions:    true,
	ActionFXShock:            true,
	ActionFXVolatility:       true,
}

// LoadScenarioSpec reads and validates a YAML scenario script.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects unknown action names and malformed action fields.
func (s *ScenarioSpec) Validate() error {
	for i, a := range s.Actions {
		if !validActions[a.Action] {
			return fmt.Errorf("scenario action %d: unknown action %q", i, a.Action)
		}
		if a.Tick < 0 {
			return fmt.Errorf("scenario action %d: negative tick %d", i, a.Tick)
		}
		switch a.Action {
		case ActionSupplierDisruption:
			if a.Supplier == "" || a.Country == "" {
				return fmt.Errorf("scenario action %d: supplier_disruption needs supplier and country", i)
			}
			if a.DurationTicks <= 0 {
				return fmt.Errorf("scenario action %d: supplier_disruption needs positive duration_ticks", i)
			}
		default:
			if a.Country == "" {
				return fmt.Errorf("scenario action %d: %s needs a country", i, a.Action)
			}
		}
	}
	return nil
}

// ApplyDue applies every action scheduled for the given tick through the
// scenario controller and returns the count applied. Call strictly between
// ticks, before Step().
func (s *ScenarioSpec) ApplyDue(tick int64, ctrl *ScenarioController) int {
	applied := 0
	for _, a := range s.Actions {
		if a.Tick != tick {
			continue
		}
		applied++
		switch a.Action {
		case ActionSupplierDisruption:
			ctrl.ApplySupplierDisruption(a.Supplier, a.Country, a.DurationTicks)
		case ActionTariffShock:
			ctrl.ApplyTariffShock(a.Country, a.Rate)
		case ActionSanctions:
			ctrl.ApplySanctions(a.Country)
		case ActionRemoveSanctions:
			ctrl.RemoveSanctions(a.Country)
		case ActionFXShock:
			ctrl.ApplyFxShock(a.Country, a.Rate)
		case ActionFXVolatility:
			ctrl.SetFxVolatility(a.Country, a.Volatility)
		default:
			// Validate() rejects these; a spec mutated after validation is a caller bug.
			logrus.Warnf("skipping unknown scenario action %q at tick %d", a.Action, tick)
		}
	}
	return applied
}

// Built-in scenario presets for common shock patterns.
// Each returns a valid ScenarioSpec ready for the run driver.

// ScenarioTariffWar escalates tariffs on Chinese parts, then partially
// rolls them back.
func ScenarioTariffWar() *ScenarioSpec {
	return &ScenarioSpec{
		Name:        "tariff-war",
		Description: "Escalating tariffs on China with a late partial rollback",
		Actions: []ScenarioAction{
			{Tick: 10, Action: ActionTariffShock, Country: "China", Rate: 0.25},
			{Tick: 25, Action: ActionTariffShock, Country: "China", Rate: 0.50},
			{Tick: 60, Action: ActionTariffShock, Country: "China", Rate: 0.15},
		},
	}
}

// ScenarioSanctionsWave sanctions every supplier from one country mid-run
// and lifts the sanctions later.
func ScenarioSanctionsWave() *ScenarioSpec {
	return &ScenarioSpec{
		Name:        "sanctions-wave",
		Description: "Blanket sanctions on Russia, lifted after 40 ticks",
		Actions: []ScenarioAction{
			{Tick: 15, Action: ActionSanctions, Country: "Russia"},
			{Tick: 55, Action: ActionRemoveSanctions, Country: "Russia"},
		},
	}
}

// ScenarioCurrencyCrisis shocks an FX rate outside normal bounds and raises
// volatility going forward.
func ScenarioCurrencyCrisis() *ScenarioSpec {
	return &ScenarioSpec{
		Name:        "currency-crisis",
		Description: "Mexican peso collapse with elevated volatility",
		Actions: []ScenarioAction{
			{Tick: 20, Action: ActionFXShock, Country: "Mexico", Rate: 2.8},
			{Tick: 20, Action: ActionFXVolatility, Country: "Mexico", Volatility: 0.15},
		},
	}
}

// ScenarioSupplierOutage knocks a named supplier offline for a fixed window.
func ScenarioSupplierOutage(supplier, country string, startTick, durationTicks int64) *ScenarioSpec {
	return &ScenarioSpec{
		Name:        "supplier-outage",
		Description: fmt.Sprintf("%s (%s) offline for %d ticks", supplier, country, durationTicks),
		Actions: []ScenarioAction{
			{Tick: startTick, Action: ActionSupplierDisruption, Supplier: supplier, Country: country, DurationTicks: durationTicks},
		},
	}
}

// ScenarioPresets lists the parameterless presets by name for the CLI.
func ScenarioPresets() map[string]*ScenarioSpec {
	return map[string]*ScenarioSpec{
		"tariff-war":      ScenarioTariffWar(),
		"sanctions-wave":  ScenarioSanctionsWave(),
		"currency-crisis": ScenarioCurrencyCrisis(),
	}
}
