package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/supplychain-sim/supplychain-sim/sim/trace"
)

// Scenario action names shared by the controller, scenario scripts, and the
// scenario log.
const (
	ActionSupplierDisruption = "supplier_disruption"
	ActionTariffShock        = "tariff_shock"
	ActionSanctions          = "sanctions"
	ActionRemoveSanctions    = "remove_sanctions"
	ActionFXShock            = "fx_shock"
	ActionFXVolatility       = "fx_volatility"
)

// ScenarioController is the exposed mutation API for exogenous shocks. All
// operations take effect immediately and append a scenario-log entry tagged
// with the current tick. The controller must only be invoked strictly
// between ticks by a single driver; it does not defend against concurrent
// mutation.
type ScenarioController struct {
	sim *Simulator
}

// ApplySupplierDisruption sets the named supplier offline for exactly
// durationTicks from the current tick. Returns false (with a warning) if no
// matching supplier exists.
func (c *ScenarioController) ApplySupplierDisruption(name, country string, durationTicks int64) bool {
	key := SourcingKey(name, country)
	record := trace.ScenarioRecord{
		Tick:          c.sim.Clock,
		Action:        ActionSupplierDisruption,
		Supplier:      name,
		Country:       country,
		DurationTicks: durationTicks,
	}

	supplier := c.sim.Supplier(key)
	if supplier == nil {
		logrus.Warnf("disruption targets unknown supplier %s", key)
		c.sim.Trace.RecordScenario(record)
		return false
	}

	supplier.Offline = true
	supplier.OfflineUntil = c.sim.Clock + durationTicks
	record.Applied = true
	c.sim.Trace.RecordScenario(record)
	logrus.Infof("supplier %s offline until tick %d", key, supplier.OfflineUntil)
	return true
}

// ApplyTariffShock overwrites the country's tariff unconditionally.
func (c *ScenarioController) ApplyTariffShock(country string, newRate float64) {
	c.sim.Econ.EnsureCountry(country)
	c.sim.Econ.Tariffs[country] = newRate
	c.sim.Trace.RecordScenario(trace.ScenarioRecord{
		Tick:    c.sim.Clock,
		Action:  ActionTariffShock,
		Country: country,
		Value:   newRate,
		Applied: true,
	})
	logrus.Infof("tariff for %s set to %.2f at tick %d", country, newRate, c.sim.Clock)
}

// ApplySanctions sets isSanctioned on every supplier from the country and
// returns the count affected. Zero matches is a configuration warning, not
// an error.
func (c *ScenarioController) ApplySanctions(country string) int {
	return c.setSanctions(country, true, ActionSanctions)
}

// RemoveSanctions clears isSanctioned on every supplier from the country and
// returns the count affected.
func (c *ScenarioController) RemoveSanctions(country string) int {
	return c.setSanctions(country, false, ActionRemoveSanctions)
}

func (c *ScenarioController) setSanctions(country string, sanctioned bool, action string) int {
	affected := 0
	for _, supplier := range c.sim.Suppliers {
		if supplier.Country == country {
			supplier.Sanctioned = sanctioned
			affected++
		}
	}
	if affected == 0 {
		logrus.Warnf("%s matched no suppliers from %s", action, country)
	}
	c.sim.Trace.RecordScenario(trace.ScenarioRecord{
		Tick:     c.sim.Clock,
		Action:   action,
		Country:  country,
		Affected: affected,
		Applied:  affected > 0,
	})
	return affected
}

// ApplyFxShock overwrites the country's FX rate unconditionally. Deliberate
// shocks bypass the [0.5, 2.0] clamp used by the random-walk updater. The
// base currency is pinned and cannot be shocked.
func (c *ScenarioController) ApplyFxShock(country string, newRate float64) {
	record := trace.ScenarioRecord{
		Tick:    c.sim.Clock,
		Action:  ActionFXShock,
		Country: country,
		Value:   newRate,
	}
	if country == BaseCurrencyCountry {
		logrus.Warnf("fx shock ignored for base currency country %s", country)
		c.sim.Trace.RecordScenario(record)
		return
	}
	c.sim.Econ.EnsureCountry(country)
	c.sim.Econ.FXRates[country] = newRate
	record.Applied = true
	c.sim.Trace.RecordScenario(record)
	logrus.Infof("fx rate for %s set to %.3f at tick %d", country, newRate, c.sim.Clock)
}

// SetFxVolatility overwrites the going-forward volatility used by the FX
// random walk for the country.
func (c *ScenarioController) SetFxVolatility(country string, volatility float64) {
	record := trace.ScenarioRecord{
		Tick:    c.sim.Clock,
		Action:  ActionFXVolatility,
		Country: country,
		Value:   volatility,
	}
	if country == BaseCurrencyCountry {
		logrus.Warnf("fx volatility ignored for base currency country %s", country)
		c.sim.Trace.RecordScenario(record)
		return
	}
	c.sim.Econ.EnsureCountry(country)
	c.sim.Econ.FXVolatility[country] = volatility
	record.Applied = true
	c.sim.Trace.RecordScenario(record)
	logrus.Infof("fx volatility for %s set to %.3f at tick %d", country, volatility, c.sim.Clock)
}
