package logic

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/models"
)

type analyticsService struct {
	db     *database.Manager
	logger *zap.SugaredLogger
}

func NewAnalyticsService(db *database.Manager, logger *zap.SugaredLogger) AnalyticsService {
	return &analyticsService{db: db, logger: logger}
}

// TopPlayersByStat returns the top 5 players by the given advanced-stat
// abbreviation, ranked descending. Ties share a rank; the next distinct
// value resumes at its position.
func (s *analyticsService) TopPlayersByStat(ctx context.Context, statAbbr string) models.Report {
	headers := []string{"Player Name", statAbbr + " Value", "Rank"}
	rows, err := s.fetch(ctx, `
		SELECT
			p.full_name,
			f.advanced_value,
			RANK() OVER (ORDER BY f.advanced_value DESC) AS stat_rank
		FROM `+config.PlayerBioTable+` p
		JOIN `+config.PlayerStatFactTable+` f ON p.player_id = f.player_id
		JOIN `+config.AdvancedStatTypeTable+` t ON f.stat_id = t.stat_id
		WHERE t.stat_abbreviation = ?
		ORDER BY f.advanced_value DESC
		LIMIT 5`, statAbbr)
	if err != nil {
		s.logger.Errorw("top players query failed", "stat", statAbbr, "error", err)
		return models.Report{Headers: headers}
	}
	return models.Report{Headers: headers, Rows: stringify(rows)}
}

// MostInjuredPlayers returns the 5 players with the most injury
// reports. Players without a report are excluded.
func (s *analyticsService) MostInjuredPlayers(ctx context.Context) models.Report {
	headers := []string{"Player Name", "Total Injuries", "Injury Rank"}
	rows, err := s.fetch(ctx, `
		SELECT
			p.full_name,
			COUNT(r.report_id) AS total_injuries,
			RANK() OVER (ORDER BY COUNT(r.report_id) DESC) AS injury_rank
		FROM `+config.PlayerBioTable+` p
		JOIN `+config.InjuryReportTable+` r ON p.player_id = r.player_id
		GROUP BY p.player_id, p.full_name
		HAVING COUNT(r.report_id) > 0
		ORDER BY total_injuries DESC
		LIMIT 5`)
	if err != nil {
		s.logger.Errorw("most injured players query failed", "error", err)
		return models.Report{Headers: headers}
	}
	return models.Report{Headers: headers, Rows: stringify(rows)}
}

// CityDemographicsSummary returns the top 10 cities by median household
// income, with income and population formatted by the database.
func (s *analyticsService) CityDemographicsSummary(ctx context.Context) models.Report {
	headers := []string{"City", "State", "Median Household Income", "Population"}
	rows, err := s.fetch(ctx, `
		SELECT
			c.city_name,
			c.state_province,
			PRINTF('$%,d', CAST(d.median_household_income AS INTEGER)) AS median_income,
			PRINTF('%,d', d.population) AS population
		FROM `+config.CityTable+` c
		JOIN `+config.CityDemographicsTable+` d ON c.city_id = d.city_id
		ORDER BY d.median_household_income DESC
		LIMIT 10`)
	if err != nil {
		s.logger.Errorw("city demographics query failed", "error", err)
		return models.Report{Headers: headers}
	}
	return models.Report{Headers: headers, Rows: stringify(rows)}
}

func (s *analyticsService) fetch(ctx context.Context, query string, args ...any) ([][]any, error) {
	var rows [][]any
	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		var err error
		rows, err = u.FetchAll(query, args...)
		return err
	})
	return rows, err
}

func stringify(rows [][]any) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		out = append(out, cells)
	}
	return out
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
