// Package ui is the presentation layer: a single-threaded menu console
// that stands in for the original desktop window. Each action blocks on
// its service call and appends timestamped output to the terminal.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/logic"
	"github.com/nbahub/stats-hub/internal/models"
	"github.com/nbahub/stats-hub/internal/render"
)

type Config struct {
	Accounts    logic.AccountService
	Predictions logic.PredictionService
	Analytics   logic.AnalyticsService
	DefaultStat string
	Logger      *zap.SugaredLogger
	In          io.Reader
	Out         io.Writer
}

type Console struct {
	accounts    logic.AccountService
	predictions logic.PredictionService
	analytics   logic.AnalyticsService
	defaultStat string
	logger      *zap.SugaredLogger
	in          *bufio.Scanner
	out         io.Writer

	token     string
	accountID int64
}

func New(cfg Config) *Console {
	return &Console{
		accounts:    cfg.Accounts,
		predictions: cfg.Predictions,
		analytics:   cfg.Analytics,
		defaultStat: cfg.DefaultStat,
		logger:      cfg.Logger,
		in:          bufio.NewScanner(cfg.In),
		out:         cfg.Out,
	}
}

// Run drives the menu loop until the user quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.logf("Welcome to the NBA Analytics Hub. Please register or log in.")
	for {
		c.printMenu()
		choice, ok := c.prompt("Select an option")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			c.handleRegister(ctx)
		case "2":
			c.handleLogin(ctx)
		case "3":
			c.handlePrediction(ctx)
		case "4":
			c.showReport(fmt.Sprintf("Top 5 players by %s", c.defaultStat),
				c.analytics.TopPlayersByStat(ctx, c.defaultStat))
		case "5":
			c.showReport("Top 5 most injured players", c.analytics.MostInjuredPlayers(ctx))
		case "6":
			c.showReport("Top 10 city demographics summary", c.analytics.CityDemographicsSummary(ctx))
		case "7":
			c.handleDisplayName(ctx)
		case "8":
			c.handleDeleteAccount(ctx)
		case "q", "Q":
			c.logf("Goodbye.")
			return nil
		default:
			c.logf("Unknown option %q.", choice)
		}
	}
}

func (c *Console) printMenu() {
	status := "Logged Out"
	if c.token != "" {
		status = fmt.Sprintf("Logged In (Account ID: %d)", c.accountID)
	}
	fmt.Fprintf(c.out, "\nStatus: %s\n", status)
	fmt.Fprintln(c.out, "  1) Register")
	fmt.Fprintln(c.out, "  2) Login")
	fmt.Fprintln(c.out, "  3) Submit player prediction")
	fmt.Fprintf(c.out, "  4) Top 5 players by %s\n", c.defaultStat)
	fmt.Fprintln(c.out, "  5) Top 5 most injured players")
	fmt.Fprintln(c.out, "  6) Top 10 city demographics summary")
	fmt.Fprintln(c.out, "  7) Update display name")
	fmt.Fprintln(c.out, "  8) Delete account")
	fmt.Fprintln(c.out, "  q) Quit")
}

func (c *Console) handleRegister(ctx context.Context) {
	email, ok := c.prompt("Email")
	if !ok {
		return
	}
	password, ok := c.prompt("Password")
	if !ok {
		return
	}
	c.notify(c.accounts.Register(ctx, email, password))
}

func (c *Console) handleLogin(ctx context.Context) {
	email, ok := c.prompt("Email")
	if !ok {
		return
	}
	password, ok := c.prompt("Password")
	if !ok {
		return
	}
	token, outcome := c.accounts.Login(ctx, email, password)
	if outcome.OK {
		c.token = token
		c.accountID, _ = c.accounts.CurrentAccount(token)
	} else {
		c.token = ""
		c.accountID = 0
	}
	c.notify(outcome)
}

func (c *Console) handlePrediction(ctx context.Context) {
	player, ok := c.prompt("Player name")
	if !ok {
		return
	}
	predType, ok := c.prompt("Prediction type (e.g. MVP_PRED)")
	if !ok {
		return
	}
	predValue, ok := c.prompt("Prediction value")
	if !ok {
		return
	}
	c.notify(c.predictions.Submit(ctx, c.token, player, predType, predValue))
}

func (c *Console) handleDisplayName(ctx context.Context) {
	name, ok := c.prompt("New display name")
	if !ok {
		return
	}
	c.notify(c.accounts.UpdateDisplayName(ctx, c.token, name))
}

func (c *Console) handleDeleteAccount(ctx context.Context) {
	confirm, ok := c.prompt("Type 'delete' to confirm account deletion")
	if !ok || confirm != "delete" {
		c.logf("Account deletion cancelled.")
		return
	}
	outcome := c.accounts.DeleteAccount(ctx, c.token)
	if outcome.OK {
		c.token = ""
		c.accountID = 0
	}
	c.notify(outcome)
}

func (c *Console) showReport(title string, report models.Report) {
	c.logf("--- %s ---", title)
	fmt.Fprintln(c.out, render.FormatResults(report.Headers, report.Rows))
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// notify is the console's stand-in for the original modal dialogs.
func (c *Console) notify(outcome models.Outcome) {
	if outcome.OK {
		c.logf("OK: %s", outcome.Message)
	} else {
		c.logger.Warnw("action rejected", "kind", outcome.Kind, "message", outcome.Message)
		c.logf("ERROR: %s", outcome.Message)
	}
}

func (c *Console) logf(format string, args ...any) {
	fmt.Fprintf(c.out, "[%s] %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}
