package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// ReportInput contains the parameters for the daily report.
type ReportInput struct {
	Location   *time.Location
	Passphrase string
}

// ReportOutput contains the report entries for the day, newest first.
type ReportOutput struct {
	Date    time.Time
	Entries []domain.ReportEntry
	Total   time.Duration
}

// Report is the read-only use case producing today's segment report.
type Report struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewReport creates a new Report use case.
func NewReport(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *Report {
	return &Report{store: store, clock: clock, logger: logger}
}

// Execute builds the report for the current local day.
func (uc *Report) Execute(_ context.Context, in ReportInput) (*ReportOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	now := uc.clock.Now().UTC()

	entries := domain.ReportDay(model, now, now, loc)
	return &ReportOutput{
		Date:    now.In(loc),
		Entries: entries,
		Total:   domain.ReportTotal(entries),
	}, nil
}
