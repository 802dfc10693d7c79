package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/dataset"
	"github.com/nbahub/stats-hub/internal/models"
)

var housingRequiredCols = []string{
	"Zip Code Population",
	"Median Household Income",
	"State",
	"City",
}

type cityAggregate struct {
	city       string
	state      string
	population float64
	incomeSum  float64
	incomeN    int
}

// importHousing aggregates the housing source per (city, state) and
// populates City and CityDemographics. A missing required column aborts
// only this pipeline.
func (im *Importer) importHousing(u *database.Unit, tbl *dataset.Table) error {
	for _, col := range housingRequiredCols {
		if !tbl.HasColumn(col) {
			im.logger.Errorw("housing dataset missing required column, skipping pipeline",
				"column", col, "found", tbl.Columns())
			return nil
		}
	}

	// Group by (city, state) in first-encountered order: population is
	// summed, median income averaged. Non-numeric cells are skipped.
	aggregates := make(map[string]*cityAggregate)
	var order []string
	for i := 0; i < tbl.Len(); i++ {
		city := strings.TrimSpace(tbl.Get(i, "City"))
		state := strings.TrimSpace(tbl.Get(i, "State"))
		key := city + "-" + state
		agg, ok := aggregates[key]
		if !ok {
			agg = &cityAggregate{city: city, state: state}
			aggregates[key] = agg
			order = append(order, key)
		}
		if pop, err := strconv.ParseFloat(strings.TrimSpace(tbl.Get(i, "Zip Code Population")), 64); err == nil {
			agg.population += pop
		}
		if income, err := strconv.ParseFloat(strings.TrimSpace(tbl.Get(i, "Median Household Income")), 64); err == nil {
			agg.incomeSum += income
			agg.incomeN++
		}
	}

	var (
		cities []models.City
		demos  []models.CityDemographics
	)
	for _, key := range order {
		agg := aggregates[key]
		if agg.city == "" || agg.state == "" {
			continue
		}
		meanIncome := 0.0
		if agg.incomeN > 0 {
			meanIncome = agg.incomeSum / float64(agg.incomeN)
		}
		cityID := int64(len(cities) + 1)
		cities = append(cities, models.City{
			CityID:        cityID,
			Name:          agg.city,
			StateProvince: agg.state,
			Country:       "USA",
		})
		demos = append(demos, models.CityDemographics{
			CityID:                cityID,
			Population:            int64(agg.population),
			MedianHouseholdIncome: int64(meanIncome),
		})
	}

	cityBatch := make([][]any, 0, len(cities))
	for _, c := range cities {
		cityBatch = append(cityBatch, []any{c.CityID, c.Name, c.StateProvince, c.Country})
	}
	demoBatch := make([][]any, 0, len(demos))
	for _, d := range demos {
		demoBatch = append(demoBatch, []any{d.CityID, d.Population, d.MedianHouseholdIncome, d.PovertyRate})
	}
	if err := u.ExecMany(
		"INSERT OR IGNORE INTO "+config.CityTable+" (city_id, city_name, state_province, country) VALUES (?, ?, ?, ?)",
		cityBatch,
	); err != nil {
		return fmt.Errorf("insert cities: %w", err)
	}
	if err := u.ExecMany(
		"INSERT OR IGNORE INTO "+config.CityDemographicsTable+
			" (city_id, population, median_household_income, poverty_rate) VALUES (?, ?, ?, ?)",
		demoBatch,
	); err != nil {
		return fmt.Errorf("insert city demographics: %w", err)
	}
	im.logger.Infow("imported city demographics", "cities", len(cityBatch))
	return nil
}
