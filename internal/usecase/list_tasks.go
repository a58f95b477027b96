package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Location   *time.Location
	Passphrase string
	Window     domain.ListWindow
}

// ListTasksOutput contains the list entries and the window total.
type ListTasksOutput struct {
	Header  string // window description, empty for the all window
	Entries []domain.ListEntry
	Total   time.Duration
}

// ListTasks is the read-only use case producing per-task totals.
type ListTasks struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *ListTasks {
	return &ListTasks{store: store, clock: clock, logger: logger}
}

// Execute lists tasks with totals inside the window.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	now := uc.clock.Now().UTC()

	entries := domain.ListTasks(model, now, in.Window, loc)
	return &ListTasksOutput{
		Header:  domain.ListHeader(now, in.Window, loc),
		Entries: entries,
		Total:   domain.ListTotal(entries),
	}, nil
}
