// Package services wires the ledger store to the report, export and
// chart projections. Each operation opens no long-lived transaction:
// it reads or writes through the repository and returns.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetbot/internal/amqp"
	"budgetbot/internal/chart"
	"budgetbot/internal/core"
	"budgetbot/internal/export"
	"budgetbot/internal/storage"
)

// LedgerService orchestrates ledger operations across SQLite and AMQP.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// RecordEntry appends an entry and publishes an entry.recorded event.
// The append is the durable part; a failed publish is logged and does
// not fail the operation.
func (s *LedgerService) RecordEntry(ctx context.Context, user, date string, amount int64) (int64, error) {
	id, err := s.storage.AppendEntry(ctx, user, date, amount)
	if err != nil {
		return 0, fmt.Errorf("append entry: %w", err)
	}

	if err := s.publishEntryRecorded(ctx, id, user, date, amount); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry recorded event",
			"id", id, "error", err)
	}

	return id, nil
}

// ReportForDay renders the report for a single calendar day.
func (s *LedgerService) ReportForDay(ctx context.Context, date string) (string, error) {
	sums, err := s.storage.SumsForDay(ctx, date)
	if err != nil {
		return "", fmt.Errorf("sums for day: %w", err)
	}
	return core.FormatReport(date, aggregate(sums)), nil
}

// ReportForWindow renders the report for the rolling last-N-days
// window, computed against the wall clock at call time. The window is
// date >= today-N, not aligned to week boundaries.
func (s *LedgerService) ReportForWindow(ctx context.Context, days int) (string, error) {
	start := time.Now().AddDate(0, 0, -days).Format(core.DateLayout)
	sums, err := s.storage.SumsSince(ctx, start)
	if err != nil {
		return "", fmt.Errorf("sums since %s: %w", start, err)
	}
	return core.FormatReport(core.WindowLabel(days), aggregate(sums)), nil
}

// ReportForRange renders the report for the inclusive interval
// [start, end]. The header carries the bounds.
func (s *LedgerService) ReportForRange(ctx context.Context, start, end string) (string, error) {
	sums, err := s.storage.SumsBetween(ctx, start, end, "")
	if err != nil {
		return "", fmt.Errorf("sums between: %w", err)
	}
	return core.FormatReport(core.RangeLabel(start, end), aggregate(sums)), nil
}

// ExportAll renders the entire ledger as xlsx bytes, one row per entry
// in insertion order.
func (s *LedgerService) ExportAll(ctx context.Context) ([]byte, error) {
	entries, err := s.storage.AllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	data, err := export.Workbook(entries)
	if err != nil {
		return nil, fmt.Errorf("build workbook: %w", err)
	}
	return data, nil
}

// ChartForRange renders a grouped bar chart for [start, end], narrowed
// to one user when user is non-empty. A range with no entries returns
// (nil, nil); callers report "no data" rather than an error.
func (s *LedgerService) ChartForRange(ctx context.Context, start, end, user string) ([]byte, error) {
	sums, err := s.storage.SumsBetween(ctx, start, end, user)
	if err != nil {
		return nil, fmt.Errorf("sums between: %w", err)
	}
	if len(sums) == 0 {
		return nil, nil
	}

	title := "Income and expenses for " + core.RangeLabel(start, end)
	if user != "" {
		title += fmt.Sprintf(" (only %s)", user)
	}

	data, err := chart.GroupedBars(title, aggregate(sums))
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return data, nil
}

func (s *LedgerService) publishEntryRecorded(ctx context.Context, id int64, user, date string, amount int64) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not configured, skipping entry event")
		return nil
	}
	msg := amqp.NewEntryRecordedMessage(id, user, date, string(core.CategoryOf(amount)), amount)
	return s.amqpClient.PublishEntryRecorded(ctx, msg)
}

func aggregate(sums []storage.GroupedSum) *core.Aggregate {
	agg := core.NewAggregate()
	for _, s := range sums {
		agg.Add(s.User, s.Category, s.Total)
	}
	return agg
}

// Close closes storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
