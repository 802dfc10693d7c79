package logic

import (
	"context"

	"github.com/nbahub/stats-hub/internal/models"
)

// AnalyticsService runs the fixed read-only reports. A query failure is
// logged and surfaced as an empty Report with its headers intact.
type AnalyticsService interface {
	TopPlayersByStat(ctx context.Context, statAbbr string) models.Report
	MostInjuredPlayers(ctx context.Context) models.Report
	CityDemographicsSummary(ctx context.Context) models.Report
}

// AccountService handles registration, login and account maintenance.
// Login mints a session token; all session-gated operations take it
// explicitly instead of consulting process-global state.
type AccountService interface {
	Register(ctx context.Context, email, password string) models.Outcome
	Login(ctx context.Context, email, password string) (token string, outcome models.Outcome)
	CurrentAccount(token string) (int64, bool)
	GetProfile(ctx context.Context, accountID int64) (*models.Profile, error)
	UpdateDisplayName(ctx context.Context, token, displayName string) models.Outcome
	DeleteAccount(ctx context.Context, token string) models.Outcome
}

// PredictionService records user predictions about players.
type PredictionService interface {
	Submit(ctx context.Context, token, playerName, predType, predValue string) models.Outcome
}
