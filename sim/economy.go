package sim

import (
	"math/rand"
	"sort"
)

const (
	// BaseCurrencyCountry is the pinned numeraire: its FX rate is 1.0,
	// never perturbed by the random walk and never a valid shock target.
	BaseCurrencyCountry = "USA"

	// meanReversionRate is the per-tick pull of every FX rate toward parity.
	meanReversionRate = 0.1

	fxRateMin = 0.5
	fxRateMax = 2.0

	// DefaultFXVolatility applies to countries without an explicit setting.
	DefaultFXVolatility = 0.02
)

// EconomicState holds tariffs, FX rates, FX volatility, and base prices.
// It is owned by the Simulator; agents hold read access and all mutation
// funnels through the ScenarioController and UpdateFXRates.
type EconomicState struct {
	// BasePrices maps part -> country -> unit wholesale price.
	// Immutable after roster load.
	BasePrices map[string]map[string]float64

	Tariffs      map[string]float64
	FXRates      map[string]float64
	FXVolatility map[string]float64
}

// NewEconomicState creates an empty economic state with the base currency
// pinned at parity.
func NewEconomicState() *EconomicState {
	e := &EconomicState{
		BasePrices:   make(map[string]map[string]float64),
		Tariffs:      make(map[string]float64),
		FXRates:      make(map[string]float64),
		FXVolatility: make(map[string]float64),
	}
	e.EnsureCountry(BaseCurrencyCountry)
	return e
}

// EnsureCountry initializes tariff, FX rate, and volatility defaults for a
// country the first time it is seen. Safe to call repeatedly.
func (e *EconomicState) EnsureCountry(country string) {
	if _, ok := e.FXRates[country]; ok {
		return
	}
	e.Tariffs[country] = 0.0
	e.FXRates[country] = 1.0
	e.FXVolatility[country] = DefaultFXVolatility
}

// SetBasePrice records the unit wholesale price for a (part, country) pair.
func (e *EconomicState) SetBasePrice(part, country string, price float64) {
	if e.BasePrices[part] == nil {
		e.BasePrices[part] = make(map[string]float64)
	}
	e.BasePrices[part][country] = price
	e.EnsureCountry(country)
}

// BasePrice returns the unit wholesale price for a (part, country) pair.
func (e *EconomicState) BasePrice(part, country string) (float64, bool) {
	price, ok := e.BasePrices[part][country]
	return price, ok
}

// Countries returns all known countries in sorted order, base currency
// included. Sorted iteration keeps RNG consumption deterministic.
func (e *EconomicState) Countries() []string {
	countries := make([]string, 0, len(e.FXRates))
	for c := range e.FXRates {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// UpdateFXRates applies one step of a mean-reverting random walk to every
// country except the base currency:
//
//	rate += N(0, volatility) + meanReversionRate * (1.0 - rate)
//
// then clamps to [fxRateMin, fxRateMax]. Runs once per tick before any agent
// acts, so all agents in a tick see the same FX snapshot. Always succeeds.
func (e *EconomicState) UpdateFXRates(rng *rand.Rand) {
	for _, country := range e.Countries() {
		if country == BaseCurrencyCountry {
			continue
		}
		rate := e.FXRates[country]
		rate += rng.NormFloat64()*e.FXVolatility[country] + meanReversionRate*(1.0-rate)
		e.FXRates[country] = clampFXRate(rate)
	}
}

func clampFXRate(rate float64) float64 {
	if rate < fxRateMin {
		return fxRateMin
	}
	if rate > fxRateMax {
		return fxRateMax
	}
	return rate
}
