package sim

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// UnknownCountry is the sentinel origin for records without one.
	UnknownCountry = "Unknown"

	// fallbackUnitPrice is the last resort when a part's price cannot be
	// estimated from the roster or the keyword table.
	fallbackUnitPrice = 50.0

	defaultLeadTimeTicks = int64(2)
	defaultReliability   = 0.9
)

// SupplierRecord is one roster row: a supplier offering one part from one
// country. Country and price are optional; see EstimatePrice for the price
// fallback chain.
type SupplierRecord struct {
	Supplier      string   `yaml:"supplier"`
	Part          string   `yaml:"part"`
	Country       string   `yaml:"country,omitempty"`
	Price         *float64 `yaml:"price,omitempty"`
	LeadTimeTicks *int64   `yaml:"lead_time_ticks,omitempty"`
	Reliability   *float64 `yaml:"reliability,omitempty"`
}

// Roster is the top-level supplier roster file. If BillOfMaterials is empty
// the manufacturer requires one unit of each distinct part in the roster.
type Roster struct {
	Suppliers       []SupplierRecord `yaml:"suppliers"`
	BillOfMaterials map[string]int   `yaml:"bill_of_materials,omitempty"`
}

// LoadRoster reads and validates a YAML roster file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return &roster, nil
}

// Validate checks structural requirements; price/country gaps are filled by
// the fallback chain, not rejected.
func (r *Roster) Validate() error {
	if len(r.Suppliers) == 0 {
		return fmt.Errorf("roster has no suppliers")
	}
	for i, rec := range r.Suppliers {
		if rec.Supplier == "" {
			return fmt.Errorf("roster record %d: missing supplier name", i)
		}
		if rec.Part == "" {
			return fmt.Errorf("roster record %d: missing part", i)
		}
		if rec.Reliability != nil && (*rec.Reliability < 0 || *rec.Reliability > 1) {
			return fmt.Errorf("roster record %d: reliability %v outside [0,1]", i, *rec.Reliability)
		}
		if rec.LeadTimeTicks != nil && *rec.LeadTimeTicks < 0 {
			return fmt.Errorf("roster record %d: negative lead time", i)
		}
	}
	for part, qty := range r.BillOfMaterials {
		if qty <= 0 {
			return fmt.Errorf("bill of materials: non-positive quantity for %q", part)
		}
	}
	return nil
}

// priceKeywords maps part-description keywords to default unit prices, used
// when no roster record prices the part. Matched in order against the
// lowercased description.
var priceKeywords = []struct {
	Keyword string
	Price   float64
}{
	{"engine", 450.0},
	{"transmission", 380.0},
	{"battery", 220.0},
	{"electronic", 120.0},
	{"sensor", 85.0},
	{"brake", 60.0},
	{"suspension", 90.0},
	{"glass", 70.0},
	{"body", 150.0},
	{"tire", 95.0},
	{"wheel", 95.0},
}

// EstimatePrice resolves a part's unit price deterministically: per-part
// average across priced roster records, then the keyword table, then the
// fixed fallback constant. Never fails.
func EstimatePrice(part string, categoryAverages map[string]float64) float64 {
	if avg, ok := categoryAverages[part]; ok {
		return avg
	}
	desc := strings.ToLower(part)
	for _, kw := range priceKeywords {
		if strings.Contains(desc, kw.Keyword) {
			return kw.Price
		}
	}
	return fallbackUnitPrice
}

// NewSimulatorFromRoster builds the full model from a roster: one supplier
// agent per unique (supplier, country) pair, aggregated base prices, and a
// manufacturer whose preferred sources start at the cheapest available
// supplier per part. Later records for an already-seen pair are ignored with
// a warning.
func NewSimulatorFromRoster(key SimulationKey, roster *Roster) (*Simulator, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}

	// Per-part average over records that do carry a price, for the first
	// stage of the estimation chain.
	priceSums := make(map[string]float64)
	priceCounts := make(map[string]int)
	for _, rec := range roster.Suppliers {
		if rec.Price != nil {
			priceSums[rec.Part] += *rec.Price
			priceCounts[rec.Part]++
		}
	}
	categoryAverages := make(map[string]float64, len(priceSums))
	for part, sum := range priceSums {
		categoryAverages[part] = sum / float64(priceCounts[part])
	}

	econ := NewEconomicState()
	suppliers := make([]*SupplierAgent, 0, len(roster.Suppliers))
	seen := make(map[string]bool)

	// Base prices aggregate by (part, country): running mean of resolved
	// record prices.
	baseSums := make(map[string]map[string]float64)
	baseCounts := make(map[string]map[string]int)

	for _, rec := range roster.Suppliers {
		country := rec.Country
		if country == "" {
			country = UnknownCountry
		}
		srcKey := SourcingKey(rec.Supplier, country)
		if seen[srcKey] {
			logrus.Warnf("duplicate roster record for %s, keeping first", srcKey)
			continue
		}
		seen[srcKey] = true

		price := EstimatePrice(rec.Part, categoryAverages)
		if rec.Price != nil {
			price = *rec.Price
		}
		if baseSums[rec.Part] == nil {
			baseSums[rec.Part] = make(map[string]float64)
			baseCounts[rec.Part] = make(map[string]int)
		}
		baseSums[rec.Part][country] += price
		baseCounts[rec.Part][country]++

		leadTime := defaultLeadTimeTicks
		if rec.LeadTimeTicks != nil {
			leadTime = *rec.LeadTimeTicks
		}
		reliability := defaultReliability
		if rec.Reliability != nil {
			reliability = *rec.Reliability
		}

		suppliers = append(suppliers, &SupplierAgent{
			Name:          rec.Supplier,
			Part:          rec.Part,
			Country:       country,
			LeadTimeTicks: leadTime,
			Reliability:   reliability,
		})
	}

	for part, byCountry := range baseSums {
		for country, sum := range byCountry {
			econ.SetBasePrice(part, country, sum/float64(baseCounts[part][country]))
		}
	}

	required := roster.BillOfMaterials
	if len(required) == 0 {
		required = make(map[string]int)
		for _, s := range suppliers {
			required[s.Part] = 1
		}
	}

	return NewSimulator(key, econ, suppliers, NewManufacturerAgent(required)), nil
}
