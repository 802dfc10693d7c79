package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/dataset"
	"github.com/nbahub/stats-hub/internal/models"
)

const injurySourceCitation = "Kaggle NBA Injuries Dataset"

// Date layouts seen in the injuries source. Normalized to yyyy-mm-dd.
var injuryDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
}

// importInjuries populates InjuryReport. Player names resolve against
// PlayerBio by exact trimmed match, so this pipeline only yields rows
// after the stats pipeline has run; unresolved rows are dropped.
func (im *Importer) importInjuries(u *database.Unit, tbl *dataset.Table) error {
	rows, err := u.FetchAll("SELECT full_name, player_id FROM " + config.PlayerBioTable)
	if err != nil {
		return fmt.Errorf("load player map: %w", err)
	}
	playerIDs := make(map[string]int64, len(rows))
	for _, r := range rows {
		name, _ := r[0].(string)
		id, _ := r[1].(int64)
		playerIDs[strings.TrimSpace(name)] = id
	}

	var (
		reports []models.InjuryReport
		dropped int
	)
	for i := 0; i < tbl.Len(); i++ {
		name := strings.TrimSpace(tbl.Get(i, "Relinquished"))
		rawDate := strings.TrimSpace(tbl.Get(i, "Date"))
		if name == "" || rawDate == "" {
			dropped++
			continue
		}
		date, ok := normalizeInjuryDate(rawDate)
		if !ok {
			dropped++
			continue
		}
		pid, ok := playerIDs[name]
		if !ok {
			dropped++
			continue
		}

		notes := tbl.Get(i, "Notes")
		summary := "Unknown"
		if notes != "" {
			summary = notes
			if len(summary) > 50 {
				summary = summary[:50]
			}
		}

		reports = append(reports, models.InjuryReport{
			ReportID:       int64(len(reports) + 1),
			PlayerID:       pid,
			InjuryDate:     date,
			Summary:        summary,
			Notes:          notes,
			SourceCitation: injurySourceCitation,
		})
	}

	batch := make([][]any, 0, len(reports))
	for _, r := range reports {
		batch = append(batch, []any{r.ReportID, r.PlayerID, r.InjuryDate, nil, nil, r.Summary, r.Notes, r.SourceCitation})
	}
	if err := u.ExecMany(
		"INSERT OR IGNORE INTO "+config.InjuryReportTable+
			" (report_id, player_id, injury_date, return_date, body_part, summary, notes, source_citation) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		batch,
	); err != nil {
		return fmt.Errorf("insert injury reports: %w", err)
	}
	im.logger.Infow("imported injury reports", "count", len(reports), "dropped", dropped)
	return nil
}

func normalizeInjuryDate(raw string) (string, bool) {
	for _, layout := range injuryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
