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

// Structural columns of the stats source. Everything else is treated as
// an advanced-stat column.
var statExclusions = map[string]bool{
	"player_id": true,
	"season":    true,
	"player":    true,
	"lg":        true,
	"team":      true,
	"age":       true,
	"pos":       true,
	"g":         true,
	"gs":        true,
	"mp":        true,
}

// importStats populates PlayerBio, Season, AdvancedStatType and
// PlayerAdvancedStatFact from the advanced-stats source.
func (im *Importer) importStats(u *database.Unit, tbl *dataset.Table) error {
	// Dense ids over unique player names and season labels, first-seen order.
	playerIDs := make(map[string]int64)
	var players []models.PlayerBio
	seasonIDs := make(map[string]int64)
	var seasons []models.Season

	for i := 0; i < tbl.Len(); i++ {
		name := tbl.Get(i, "player")
		if _, ok := playerIDs[name]; !ok {
			id := int64(len(playerIDs) + 1)
			playerIDs[name] = id
			pos := tbl.Get(i, "pos")
			if pos == "" {
				pos = "N/A"
			}
			players = append(players, models.PlayerBio{
				PlayerID: id,
				FullName: name,
				Age:      tbl.Get(i, "age"),
				Position: pos,
			})
		}

		label := tbl.Get(i, "season")
		if _, ok := seasonIDs[label]; !ok {
			year, err := parseSeasonYear(label)
			if err != nil {
				return err
			}
			seasonIDs[label] = int64(year)
			seasons = append(seasons, models.Season{SeasonID: int64(year), Label: label})
		}
	}

	seasonBatch := make([][]any, 0, len(seasons))
	for _, s := range seasons {
		seasonBatch = append(seasonBatch, []any{s.SeasonID, s.Label})
	}
	if err := u.ExecMany(
		"INSERT OR IGNORE INTO "+config.SeasonTable+" (season_id, season_year, is_current) VALUES (?, ?, 0)",
		seasonBatch,
	); err != nil {
		return fmt.Errorf("insert seasons: %w", err)
	}
	im.logger.Infow("imported seasons", "count", len(seasons))

	playerBatch := make([][]any, 0, len(players))
	for _, p := range players {
		var age any
		if p.Age != "" {
			age = p.Age
		}
		playerBatch = append(playerBatch, []any{p.PlayerID, p.FullName, age, p.Position, p.SalaryUSD})
	}
	if err := u.ExecMany(
		"INSERT OR REPLACE INTO "+config.PlayerBioTable+" (player_id, full_name, age, position, salary_usd) VALUES (?, ?, ?, ?, ?)",
		playerBatch,
	); err != nil {
		return fmt.Errorf("insert players: %w", err)
	}
	im.logger.Infow("imported players", "count", len(players))

	// Advanced-stat columns: everything not structural, in column order.
	var statTypes []models.AdvancedStatType
	for _, col := range tbl.Columns() {
		if statExclusions[col] {
			continue
		}
		statTypes = append(statTypes, models.AdvancedStatType{
			StatID:       int64(len(statTypes) + 1),
			Name:         col,
			Abbreviation: col,
		})
	}
	statBatch := make([][]any, 0, len(statTypes))
	for _, st := range statTypes {
		statBatch = append(statBatch, []any{st.StatID, st.Name, st.Abbreviation})
	}
	if err := u.ExecMany(
		"INSERT OR IGNORE INTO "+config.AdvancedStatTypeTable+" (stat_id, stat_name, stat_abbreviation) VALUES (?, ?, ?)",
		statBatch,
	); err != nil {
		return fmt.Errorf("insert stat types: %w", err)
	}
	im.logger.Infow("imported advanced stat types", "count", len(statTypes))

	// One fact per (row, stat column) with a numeric cell. Non-numeric
	// or missing cells are skipped per-cell.
	var facts []models.PlayerAdvancedStatFact
	for i := 0; i < tbl.Len(); i++ {
		pid := playerIDs[tbl.Get(i, "player")]
		sid := seasonIDs[tbl.Get(i, "season")]
		for _, st := range statTypes {
			cell := tbl.Get(i, st.Name)
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			facts = append(facts, models.PlayerAdvancedStatFact{
				PlayerID: pid,
				SeasonID: sid,
				StatID:   st.StatID,
				Value:    value,
			})
		}
	}
	factBatch := make([][]any, 0, len(facts))
	for _, f := range facts {
		factBatch = append(factBatch, []any{f.PlayerID, f.SeasonID, f.StatID, f.Value})
	}
	if err := u.ExecMany(
		"INSERT OR IGNORE INTO "+config.PlayerStatFactTable+" (player_id, season_id, stat_id, advanced_value) VALUES (?, ?, ?, ?)",
		factBatch,
	); err != nil {
		return fmt.Errorf("insert stat facts: %w", err)
	}
	im.logger.Infow("imported player advanced stat facts", "count", len(facts))
	return nil
}

// parseSeasonYear derives the season id from a season label: the whole
// label as an integer, or the first segment of a "2015-16"-style label.
func parseSeasonYear(label string) (int, error) {
	if year, err := strconv.Atoi(label); err == nil {
		return year, nil
	}
	first := strings.SplitN(label, "-", 2)[0]
	year, err := strconv.Atoi(first)
	if err != nil {
		return 0, fmt.Errorf("unparsable season label %q", label)
	}
	return year, nil
}
