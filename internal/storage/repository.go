// Package storage persists ledger entries in SQLite. The budget table
// is append-only: entries are never updated or deleted, and range
// queries return per-user per-category sums so callers never handle
// raw rows for reporting.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgetbot/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// GroupedSum is one row of a grouped range query: the pre-summed
// amount for a (user, category) pair within the queried range.
type GroupedSum struct {
	User     string
	Category core.Category
	Total    int64
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations; safe on every start.
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendEntry persists one entry and returns its id. The category is
// derived from the amount's sign here, once, and stored alongside the
// amount so it is never re-derived on reads.
func (r *SQLiteRepository) AppendEntry(ctx context.Context, user, date string, amount int64) (int64, error) {
	category := core.CategoryOf(amount)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budget (user, date, category, amount) VALUES (?, ?, ?, ?)`,
		user, date, string(category), amount)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved",
		"id", id,
		"user", user,
		"date", date,
		"category", category,
		"amount", amount)

	return id, nil
}

// SumsForDay returns grouped sums for entries on exactly the given day.
func (r *SQLiteRepository) SumsForDay(ctx context.Context, date string) ([]GroupedSum, error) {
	return r.groupedSums(ctx,
		`SELECT user, category, SUM(amount) FROM budget
		 WHERE date = ?
		 GROUP BY user, category ORDER BY user, category`, date)
}

// SumsSince returns grouped sums for entries on or after start. The
// caller computes start from the wall clock for rolling windows.
func (r *SQLiteRepository) SumsSince(ctx context.Context, start string) ([]GroupedSum, error) {
	return r.groupedSums(ctx,
		`SELECT user, category, SUM(amount) FROM budget
		 WHERE date >= ?
		 GROUP BY user, category ORDER BY user, category`, start)
}

// SumsBetween returns grouped sums for the inclusive interval
// [start, end]. A non-empty user restricts the query to that user.
// Lexicographic comparison is correct because dates are fixed-width.
func (r *SQLiteRepository) SumsBetween(ctx context.Context, start, end, user string) ([]GroupedSum, error) {
	if user != "" {
		return r.groupedSums(ctx,
			`SELECT user, category, SUM(amount) FROM budget
			 WHERE user = ? AND date BETWEEN ? AND ?
			 GROUP BY user, category ORDER BY user, category`, user, start, end)
	}
	return r.groupedSums(ctx,
		`SELECT user, category, SUM(amount) FROM budget
		 WHERE date BETWEEN ? AND ?
		 GROUP BY user, category ORDER BY user, category`, start, end)
}

func (r *SQLiteRepository) groupedSums(ctx context.Context, query string, args ...any) ([]GroupedSum, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grouped sums: %w", err)
	}
	defer rows.Close()

	var sums []GroupedSum
	for rows.Next() {
		var s GroupedSum
		var category string
		if err := rows.Scan(&s.User, &category, &s.Total); err != nil {
			return nil, fmt.Errorf("scan grouped sum: %w", err)
		}
		s.Category = core.Category(category)
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grouped sums: %w", err)
	}
	return sums, nil
}

// AllEntries returns every stored entry in insertion (id) order.
func (r *SQLiteRepository) AllEntries(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user, date, category, amount FROM budget ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var e core.Entry
		var category string
		if err := rows.Scan(&e.ID, &e.User, &e.Date, &category, &e.Amount); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Category = core.Category(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
