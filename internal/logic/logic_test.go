package logic

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/nbahub/stats-hub/internal/database"
)

func newTestDB(t *testing.T) *database.Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hub.db")
	logger := zap.NewNop().Sugar()
	if err := database.Setup(dbPath, filepath.Join("..", "..", "schema.sql"), logger); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	db, err := database.Open(dbPath, logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedPlayers(t *testing.T, db *database.Manager, names ...string) {
	t.Helper()
	batch := make([][]any, 0, len(names))
	for i, name := range names {
		batch = append(batch, []any{int64(i + 1), name, nil, "PG", int64(0)})
	}
	err := db.WithUnit(context.Background(), func(u *database.Unit) error {
		return u.ExecMany(
			"INSERT OR IGNORE INTO PlayerBio (player_id, full_name, age, position, salary_usd) VALUES (?, ?, ?, ?, ?)",
			batch,
		)
	})
	if err != nil {
		t.Fatalf("seed players: %v", err)
	}
}

func countRows(t *testing.T, db *database.Manager, table string) int64 {
	t.Helper()
	var n int64
	err := db.WithUnit(context.Background(), func(u *database.Unit) error {
		row, err := u.FetchOne("SELECT COUNT(*) FROM " + table)
		if err != nil {
			return err
		}
		n = row[0].(int64)
		return nil
	})
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
