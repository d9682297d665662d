package nscp

import "fmt"

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations covers gravity loading on a roadway deck
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// LoadCases holds the unfactored total roadway loads per load type.
// All loads act in the roadway load direction.
type LoadCases struct {
	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// IsZero reports whether no load case is set
func (c LoadCases) IsZero() bool {
	return c == LoadCases{}
}

// Validate rejects negative or NaN loads, reporting the first in the order
// dead, live, roof, wind, earthquake, rain
func (c LoadCases) Validate() error {
	for _, l := range []struct {
		name  string
		value float64
	}{
		{"dead", c.Dead}, {"live", c.Live}, {"roof", c.Roof},
		{"wind", c.Wind}, {"earthquake", c.Earthquake}, {"rain", c.Rain},
	} {
		if !(l.value >= 0) {
			return fmt.Errorf("%s load must not be negative: %g", l.name, l.value)
		}
	}
	return nil
}

// FactoredLoad calculates the factored roadway load for this combination
func (lc LoadCombination) FactoredLoad(cases LoadCases) float64 {
	return lc.Dead*cases.Dead +
		lc.Live*cases.Live +
		lc.Roof*cases.Roof +
		lc.Wind*cases.Wind +
		lc.Earthquake*cases.Earthquake +
		lc.Rain*cases.Rain
}

// GoverningLoad finds the maximum factored load over the given combinations
func GoverningLoad(cases LoadCases, combinations []LoadCombination) (float64, LoadCombination) {
	var maxLoad float64
	var governingCombo LoadCombination

	for _, combo := range combinations {
		w := combo.FactoredLoad(cases)
		if w > maxLoad {
			maxLoad = w
			governingCombo = combo
		}
	}

	return maxLoad, governingCombo
}
