// Package importer reconciles the three CSV sources into the relational
// schema: it synthesizes dense surrogate ids over natural keys,
// deduplicates entities, resolves cross-table references, and bulk
// inserts with insert-if-absent semantics so a re-run is a no-op.
package importer

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/dataset"
)

type Importer struct {
	db     *database.Manager
	cfg    *config.Config
	logger *zap.SugaredLogger
}

func New(db *database.Manager, cfg *config.Config, logger *zap.SugaredLogger) *Importer {
	return &Importer{db: db, cfg: cfg, logger: logger}
}

// Run executes the three import pipelines in dependency order (injuries
// resolve players seeded by stats). Each pipeline gets its own unit of
// work; a failure is logged and does not stop the remaining pipelines.
func (im *Importer) Run(ctx context.Context) {
	if _, err := os.Stat(im.cfg.DatasetsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(im.cfg.DatasetsDir, 0o755); err != nil {
			im.logger.Errorw("failed to create datasets directory", "dir", im.cfg.DatasetsDir, "error", err)
			return
		}
		im.logger.Warnw("created datasets directory, place the CSV files inside and re-run",
			"dir", im.cfg.DatasetsDir)
		return
	}

	im.runPipeline(ctx, "player stats", im.cfg.StatsFile, im.importStats)
	im.runPipeline(ctx, "injuries", im.cfg.InjuriesFile, im.importInjuries)
	im.runPipeline(ctx, "housing", im.cfg.HousingFile, im.importHousing)
}

func (im *Importer) runPipeline(ctx context.Context, name, file string, fn func(u *database.Unit, tbl *dataset.Table) error) {
	tbl := dataset.Load(filepath.Join(im.cfg.DatasetsDir, file), im.logger)
	if tbl == nil {
		im.logger.Infow("skipping import, no source data", "pipeline", name)
		return
	}
	err := im.db.WithUnit(ctx, func(u *database.Unit) error {
		return fn(u, tbl)
	})
	if err != nil {
		im.logger.Errorw("import pipeline failed", "pipeline", name, "error", err)
	}
}
