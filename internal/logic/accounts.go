package logic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/config"
	"github.com/nbahub/stats-hub/internal/database"
	"github.com/nbahub/stats-hub/internal/models"
)

type accountService struct {
	db       *database.Manager
	logger   *zap.SugaredLogger
	validate *validator.Validate

	mu       sync.Mutex
	sessions map[string]int64 // token -> account id
}

func NewAccountService(db *database.Manager, logger *zap.SugaredLogger) AccountService {
	return &accountService{
		db:       db,
		logger:   logger,
		validate: validator.New(),
		sessions: make(map[string]int64),
	}
}

type credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// hashPassword produces the SHA-256 hex digest stored for each account.
// One-way and deterministic; only ever compared for equality at login.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates an Account and its Profile in one transaction. The
// display name defaults to the local part of the email.
func (s *accountService) Register(ctx context.Context, email, password string) models.Outcome {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return models.Failure(models.OutcomeInvalid, "Email and password cannot be empty.")
	}

	hash := hashPassword(password)
	var accountID int64
	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		id, err := u.Exec(
			"INSERT INTO "+config.AccountTable+" (email, password_hash) VALUES (?, ?)",
			email, hash,
		)
		if err != nil {
			return err
		}
		accountID = id

		displayName := email
		if at := strings.Index(email, "@"); at >= 0 {
			displayName = email[:at]
		}
		_, err = u.Exec(
			"INSERT INTO "+config.ProfileTable+" (account_id, display_name) VALUES (?, ?)",
			id, displayName,
		)
		return err
	})
	if err != nil {
		if database.IsIntegrityErr(err) {
			return models.Failure(models.OutcomeDuplicate, "Registration failed: this email is already registered.")
		}
		s.logger.Errorw("registration failed", "email", email, "error", err)
		return models.Failure(models.OutcomeInternal, "Registration failed due to an internal error.")
	}
	return models.Success(fmt.Sprintf("Registration successful for %s. Account ID: %d.", email, accountID))
}

// Login verifies the password digest and, on success, mints a session
// token. A failed login yields no token.
func (s *accountService) Login(ctx context.Context, email, password string) (string, models.Outcome) {
	hash := hashPassword(password)

	var account *models.Account
	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		row, err := u.FetchOne(
			"SELECT account_id, password_hash FROM "+config.AccountTable+" WHERE email = ?",
			email,
		)
		if err != nil || row == nil {
			return err
		}
		id, _ := row[0].(int64)
		storedHash, _ := row[1].(string)
		account = &models.Account{AccountID: id, Email: email, PasswordHash: storedHash}
		return nil
	})
	if err != nil {
		s.logger.Errorw("login failed", "email", email, "error", err)
		return "", models.Failure(models.OutcomeInternal, "Login failed due to an internal error.")
	}
	if account == nil || account.PasswordHash != hash {
		return "", models.Failure(models.OutcomeUnauthorized, "Login failed: invalid email or password.")
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = account.AccountID
	s.mu.Unlock()
	return token, models.Success(fmt.Sprintf("Login successful. Welcome, account %d.", account.AccountID))
}

// CurrentAccount resolves a session token to an account id.
func (s *accountService) CurrentAccount(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[token]
	return id, ok
}

func (s *accountService) GetProfile(ctx context.Context, accountID int64) (*models.Profile, error) {
	var profile *models.Profile
	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		row, err := u.FetchOne(
			"SELECT account_id, display_name FROM "+config.ProfileTable+" WHERE account_id = ?",
			accountID,
		)
		if err != nil || row == nil {
			return err
		}
		id, _ := row[0].(int64)
		name, _ := row[1].(string)
		profile = &models.Profile{AccountID: id, DisplayName: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateDisplayName changes the profile display name of the session's
// account. Email and password hash are untouched.
func (s *accountService) UpdateDisplayName(ctx context.Context, token, displayName string) models.Outcome {
	accountID, ok := s.CurrentAccount(token)
	if !ok {
		return models.Failure(models.OutcomeUnauthorized, "You must be logged in to update your profile.")
	}
	if strings.TrimSpace(displayName) == "" {
		return models.Failure(models.OutcomeInvalid, "Display name cannot be empty.")
	}

	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		_, err := u.Exec(
			"UPDATE "+config.ProfileTable+" SET display_name = ? WHERE account_id = ?",
			displayName, accountID,
		)
		return err
	})
	if err != nil {
		s.logger.Errorw("display name update failed", "account_id", accountID, "error", err)
		return models.Failure(models.OutcomeInternal, "Profile update failed due to an internal error.")
	}
	return models.Success(fmt.Sprintf("Display name updated to %q.", displayName))
}

// DeleteAccount removes the session's account. The Profile row goes
// with it via the schema's cascade, and the account's sessions are
// invalidated.
func (s *accountService) DeleteAccount(ctx context.Context, token string) models.Outcome {
	accountID, ok := s.CurrentAccount(token)
	if !ok {
		return models.Failure(models.OutcomeUnauthorized, "You must be logged in to delete your account.")
	}

	err := s.db.WithUnit(ctx, func(u *database.Unit) error {
		row, err := u.FetchOne(
			"SELECT account_id FROM "+config.AccountTable+" WHERE account_id = ?",
			accountID,
		)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("account %d not found", accountID)
		}
		_, err = u.Exec("DELETE FROM "+config.AccountTable+" WHERE account_id = ?", accountID)
		return err
	})
	if err != nil {
		s.logger.Errorw("account deletion failed", "account_id", accountID, "error", err)
		return models.Failure(models.OutcomeInternal, "Account deletion failed due to an internal error.")
	}

	s.mu.Lock()
	for t, id := range s.sessions {
		if id == accountID {
			delete(s.sessions, t)
		}
	}
	s.mu.Unlock()
	return models.Success(fmt.Sprintf("Account %d deleted.", accountID))
}
