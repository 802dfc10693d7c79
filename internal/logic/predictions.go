package logic

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/models"
)

type predictionService struct {
	db       *database.Manager
	logger   *zap.SugaredLogger
	accounts AccountService
}

func NewPredictionService(db *database.Manager, logger *zap.SugaredLogger, accounts AccountService) PredictionService {
	return &predictionService{db: db, logger: logger, accounts: accounts}
}

// Submit records one prediction for the session's account. The player
// is resolved by partial name containment, first match wins. There is
// no uniqueness constraint: resubmitting creates another row.
func (s *predictionService) Submit(ctx context.Context, token, playerName, predType, predValue string) models.Outcome {
	accountID, ok := s.accounts.CurrentAccount(token)
	if !ok {
		return models.Failure(models.OutcomeUnauthorized, "You must be logged in to submit a prediction.")
	}

	name := strings.TrimSpace(playerName)
	var found bool
	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		row, err := u.FetchOne(
			"SELECT player_id FROM "+config.PlayerBioTable+" WHERE full_name LIKE ? LIMIT 1",
			"%"+name+"%",
		)
		if err != nil || row == nil {
			return err
		}
		playerID, _ := row[0].(int64)
		found = true

		p := models.Prediction{
			AccountID: accountID,
			PlayerID:  playerID,
			Type:      predType,
			Value:     predValue,
		}
		_, err = u.Exec(
			"INSERT INTO "+config.PredictionTable+
				" (account_id, player_id, prediction_type, prediction_value, prediction_date) VALUES (?, ?, ?, ?, DATE('now'))",
			p.AccountID, p.PlayerID, p.Type, p.Value,
		)
		return err
	})
	if err != nil {
		s.logger.Errorw("prediction submission failed", "account_id", accountID, "player", playerName, "error", err)
		return models.Failure(models.OutcomeInternal, "Prediction submission failed due to an internal error.")
	}
	if !found {
		return models.Failure(models.OutcomeNotFound, fmt.Sprintf("Player %q not found in the database.", playerName))
	}
	return models.Success(fmt.Sprintf("Prediction %q for %s submitted.", predType, playerName))
}
