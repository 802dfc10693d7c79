package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func schemaPath() string {
	return filepath.Join("..", "..", "schema.sql")
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hub.db")
	logger := zap.NewNop().Sugar()
	if err := Setup(dbPath, schemaPath(), logger); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	m, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSetupMissingSchemaIsFatal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hub.db")
	err := Setup(dbPath, filepath.Join(t.TempDir(), "no-such-schema.sql"), zap.NewNop().Sugar())
	if err == nil {
		t.Fatal("Setup() with missing schema file should fail")
	}
	if _, statErr := os.Stat(dbPath); statErr == nil {
		t.Error("Setup() should not create a database file without a schema")
	}
}

func TestSetupSkipsExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hub.db")
	logger := zap.NewNop().Sugar()
	if err := Setup(dbPath, schemaPath(), logger); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	m, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer m.Close()
	ctx := context.Background()
	err = m.WithUnit(ctx, func(u *Unit) error {
		_, err := u.Exec("INSERT INTO Account (email, password_hash) VALUES (?, ?)", "a@b.com", "h")
		return err
	})
	if err != nil {
		t.Fatalf("insert error = %v", err)
	}

	// Second Setup is a no-op even with a bogus schema path: the
	// existing file is trusted as-is.
	if err := Setup(dbPath, "definitely-missing.sql", logger); err != nil {
		t.Fatalf("Setup() on existing database should be a no-op, got %v", err)
	}
	var count int64
	err = m.WithUnit(ctx, func(u *Unit) error {
		row, err := u.FetchOne("SELECT COUNT(*) FROM Account")
		if err != nil {
			return err
		}
		count = row[0].(int64)
		return nil
	})
	if err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != 1 {
		t.Errorf("existing data lost after re-Setup: got %d rows, want 1", count)
	}
}

func TestWithUnitRollsBackOnError(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := m.WithUnit(ctx, func(u *Unit) error {
		if _, err := u.Exec("INSERT INTO Account (email, password_hash) VALUES (?, ?)", "x@y.com", "h"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithUnit() error = %v, want sentinel", err)
	}

	err = m.WithUnit(ctx, func(u *Unit) error {
		row, err := u.FetchOne("SELECT COUNT(*) FROM Account")
		if err != nil {
			return err
		}
		if got := row[0].(int64); got != 0 {
			t.Errorf("rolled-back insert persisted: %d rows", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("count error = %v", err)
	}
}

func TestWithUnitCommitsOnSuccess(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	err := m.WithUnit(ctx, func(u *Unit) error {
		id, err := u.Exec("INSERT INTO Account (email, password_hash) VALUES (?, ?)", "x@y.com", "h")
		if err != nil {
			return err
		}
		if id != 1 {
			t.Errorf("Exec() id = %d, want 1", id)
		}
		_, err = u.Exec("INSERT INTO Profile (account_id, display_name) VALUES (?, ?)", id, "x")
		return err
	})
	if err != nil {
		t.Fatalf("WithUnit() error = %v", err)
	}

	err = m.WithUnit(ctx, func(u *Unit) error {
		row, err := u.FetchOne("SELECT display_name FROM Profile WHERE account_id = ?", int64(1))
		if err != nil {
			return err
		}
		if row == nil {
			t.Fatal("profile row missing after commit")
		}
		if got := row[0].(string); got != "x" {
			t.Errorf("display_name = %q, want %q", got, "x")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fetch error = %v", err)
	}
}

func TestIntegrityErrClassification(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	insert := func() error {
		return m.WithUnit(ctx, func(u *Unit) error {
			_, err := u.Exec("INSERT INTO Account (email, password_hash) VALUES (?, ?)", "dup@b.com", "h")
			return err
		})
	}
	if err := insert(); err != nil {
		t.Fatalf("first insert error = %v", err)
	}
	err := insert()
	if err == nil {
		t.Fatal("duplicate email should fail")
	}
	if !IsIntegrityErr(err) {
		t.Errorf("IsIntegrityErr(%v) = false, want true", err)
	}

	syntaxErr := m.WithUnit(ctx, func(u *Unit) error {
		_, err := u.FetchAll("SELECT FROM nothing")
		return err
	})
	if syntaxErr == nil {
		t.Fatal("bad query should fail")
	}
	if IsIntegrityErr(syntaxErr) {
		t.Errorf("IsIntegrityErr(%v) = true for a non-constraint error", syntaxErr)
	}
}

func TestForeignKeyCascade(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	err := m.WithUnit(ctx, func(u *Unit) error {
		id, err := u.Exec("INSERT INTO Account (email, password_hash) VALUES (?, ?)", "a@b.com", "h")
		if err != nil {
			return err
		}
		if _, err := u.Exec("INSERT INTO Profile (account_id, display_name) VALUES (?, ?)", id, "a"); err != nil {
			return err
		}
		_, err = u.Exec("DELETE FROM Account WHERE account_id = ?", id)
		return err
	})
	if err != nil {
		t.Fatalf("WithUnit() error = %v", err)
	}

	err = m.WithUnit(ctx, func(u *Unit) error {
		row, err := u.FetchOne("SELECT COUNT(*) FROM Profile")
		if err != nil {
			return err
		}
		if got := row[0].(int64); got != 0 {
			t.Errorf("profile not cascaded: %d rows remain", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("count error = %v", err)
	}
}

func TestExecManyAndFetch(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	batch := [][]any{
		{int64(1), "Player One", nil, "PG", int64(0)},
		{int64(2), "Player Two", "25", "SG", int64(0)},
	}
	err := m.WithUnit(ctx, func(u *Unit) error {
		return u.ExecMany(
			"INSERT OR IGNORE INTO PlayerBio (player_id, full_name, age, position, salary_usd) VALUES (?, ?, ?, ?, ?)",
			batch,
		)
	})
	if err != nil {
		t.Fatalf("ExecMany() error = %v", err)
	}

	err = m.WithUnit(ctx, func(u *Unit) error {
		rows, err := u.FetchAll("SELECT player_id, full_name FROM PlayerBio ORDER BY player_id")
		if err != nil {
			return err
		}
		if len(rows) != 2 {
			t.Fatalf("FetchAll() rows = %d, want 2", len(rows))
		}
		if name := rows[1][1].(string); name != "Player Two" {
			t.Errorf("row[1] name = %q, want %q", name, "Player Two")
		}

		row, err := u.FetchOne("SELECT player_id FROM PlayerBio WHERE full_name = ?", "No Such Player")
		if err != nil {
			return err
		}
		if row != nil {
			t.Errorf("FetchOne() on no match = %v, want nil", row)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fetch error = %v", err)
	}
}
