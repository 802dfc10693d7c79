// Package database is the storage gateway: a thin unit-of-work layer
// over a single SQLite file. Every unit runs inside one transaction
// that commits when the unit function returns nil and rolls back
// otherwise.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type Manager struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// Open opens the database file. Foreign-key enforcement is switched on
// for every connection so the Profile cascade holds.
func Open(path string, logger *zap.SugaredLogger) (*Manager, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &Manager{db: db, logger: logger}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// Unit is one scoped unit of work. It is only valid inside the
// WithUnit callback that produced it.
type Unit struct {
	ctx context.Context
	tx  *sql.Tx
}

// WithUnit begins a transaction, runs fn against it, and commits on a
// nil return. Any error (or panic) rolls the whole unit back, so a
// multi-statement sequence either fully persists or not at all.
func (m *Manager) WithUnit(ctx context.Context, fn func(u *Unit) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(&Unit{ctx: ctx, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			m.logger.Errorw("rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unit: %w", err)
	}
	return nil
}

// Exec runs a single statement and returns the inserted row id when
// the statement was an insert.
func (u *Unit) Exec(query string, args ...any) (int64, error) {
	res, err := u.tx.ExecContext(u.ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// ExecMany runs one prepared statement against a batch of parameter
// tuples. No per-row result is reported.
func (u *Unit) ExecMany(query string, batch [][]any) error {
	if len(batch) == 0 {
		return nil
	}
	stmt, err := u.tx.PrepareContext(u.ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, args := range batch {
		if _, err := stmt.ExecContext(u.ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

// FetchAll returns every row of the query as a slice of column values.
func (u *Unit) FetchAll(query string, args ...any) ([][]any, error) {
	rows, err := u.tx.QueryContext(u.ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, rows.Err()
}

// FetchOne returns the first row of the query, or nil when there is none.
func (u *Unit) FetchOne(query string, args ...any) ([]any, error) {
	rows, err := u.FetchAll(query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// IsIntegrityErr reports whether err is a constraint violation, as
// opposed to a generic driver or I/O failure. Callers use it to
// special-case duplicate unique keys (e.g. an already-registered email).
func IsIntegrityErr(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrConstraint
	}
	return false
}
