package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// StatusInput contains the parameters for the status query.
type StatusInput struct {
	Passphrase string
}

// StatusOutput describes the current task, if any. When Idle is true
// the other fields are zero.
type StatusOutput struct {
	Since    time.Time // start of the open segment (active only)
	PausedAt time.Time // end of the last closed segment (paused only)
	Name     string
	TaskID   string
	State    domain.TaskState
	Elapsed  time.Duration
	Idle     bool
}

// Status is the read-only use case reporting the current task state.
type Status struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewStatus creates a new Status use case.
func NewStatus(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *Status {
	return &Status{store: store, clock: clock, logger: logger}
}

// Execute derives the current state without mutating the store.
func (uc *Status) Execute(_ context.Context, in StatusInput) (*StatusOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	idx, state, found := model.CurrentTask()
	if !found {
		return &StatusOutput{Idle: true}, nil
	}

	now := uc.clock.Now().UTC()
	task := &model.Tasks[idx]
	out := &StatusOutput{
		Name:    task.Name,
		TaskID:  task.ID,
		State:   state,
		Elapsed: task.TotalElapsed(now),
	}

	if state == domain.StateActive {
		if seg := task.OpenSegment(); seg != nil {
			out.Since = seg.StartAt
		}
	} else {
		out.PausedAt = lastSegmentEnd(task)
	}
	return out, nil
}

// lastSegmentEnd finds the latest close time, falling back to creation.
func lastSegmentEnd(task *domain.Task) time.Time {
	end := task.CreatedAt
	for _, seg := range task.Segments {
		if seg.EndAt != nil && seg.EndAt.After(end) {
			end = *seg.EndAt
		}
	}
	return end
}
