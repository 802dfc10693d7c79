package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/importer"
	"github.com/nbahub/stats-hub/internal/logic"
	"github.com/nbahub/stats-hub/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:          "hub",
		Short:        "NBA Analytics Hub: import the datasets and explore them interactively",
		SilenceUsage: true,
		RunE:         run,
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// First run creates the database file from schema.sql; a missing
	// schema script aborts startup.
	if err := database.Setup(cfg.DatabasePath, cfg.SchemaPath, sugar); err != nil {
		sugar.Errorw("database setup failed", "error", err)
		return err
	}

	db, err := database.Open(cfg.DatabasePath, sugar)
	if err != nil {
		sugar.Errorw("database open failed", "error", err)
		return err
	}
	defer db.Close()

	importer.New(db, cfg, sugar).Run(cmd.Context())

	accounts := logic.NewAccountService(db, sugar)
	console := ui.New(ui.Config{
		Accounts:    accounts,
		Predictions: logic.NewPredictionService(db, sugar, accounts),
		Analytics:   logic.NewAnalyticsService(db, sugar),
		DefaultStat: cfg.DefaultStat,
		Logger:      sugar,
		In:          os.Stdin,
		Out:         os.Stdout,
	})
	return console.Run(cmd.Context())
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
