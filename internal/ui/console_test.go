package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestConsoleQuits(t *testing.T) {
	var out bytes.Buffer
	c := New(Config{
		DefaultStat: "orb_percent",
		Logger:      zap.NewNop().Sugar(),
		In:          strings.NewReader("q\n"),
		Out:         &out,
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "Status: Logged Out") {
		t.Error("menu missing logged-out status")
	}
	if !strings.Contains(output, "Top 5 players by orb_percent") {
		t.Error("menu missing the default stat view")
	}
	if !strings.Contains(output, "Goodbye.") {
		t.Error("quit message missing")
	}
}

func TestConsoleStopsOnInputEnd(t *testing.T) {
	var out bytes.Buffer
	c := New(Config{
		DefaultStat: "orb_percent",
		Logger:      zap.NewNop().Sugar(),
		In:          strings.NewReader(""),
		Out:         &out,
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() on EOF error = %v", err)
	}
}

func TestConsoleUnknownOption(t *testing.T) {
	var out bytes.Buffer
	c := New(Config{
		DefaultStat: "orb_percent",
		Logger:      zap.NewNop().Sugar(),
		In:          strings.NewReader("zz\nq\n"),
		Out:         &out,
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), `Unknown option "zz"`) {
		t.Error("unknown option not reported")
	}
}
