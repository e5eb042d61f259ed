package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a turn window.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population counts at window end
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`
	Plants     int `csv:"plants"`

	// Events during window
	PlantsEaten   int `csv:"plants_eaten"`
	Kills         int `csv:"kills"`
	HerbBirths    int `csv:"herb_births"`
	CarnBirths    int `csv:"carn_births"`
	HerbDeaths    int `csv:"herb_deaths"`
	CarnDeaths    int `csv:"carn_deaths"`
	PlantsRegrown int `csv:"plants_regrown"`

	// Energy distribution (sampled at window end)
	HerbEnergyMean float64 `csv:"herb_energy_mean"`
	HerbEnergyP10  float64 `csv:"herb_energy_p10"`
	HerbEnergyP50  float64 `csv:"herb_energy_p50"`
	HerbEnergyP90  float64 `csv:"herb_energy_p90"`

	CarnEnergyMean float64 `csv:"carn_energy_mean"`
	CarnEnergyP10  float64 `csv:"carn_energy_p10"`
	CarnEnergyP50  float64 `csv:"carn_energy_p50"`
	CarnEnergyP90  float64 `csv:"carn_energy_p90"`
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
// Returns all zeros for an empty slice.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p10, p50, p90
}
