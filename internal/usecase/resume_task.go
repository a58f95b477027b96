package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// ResumeTaskInput contains the parameters for resuming the paused task.
type ResumeTaskInput struct {
	Passphrase string
}

// ResumeTaskOutput contains the result of resuming a task.
type ResumeTaskOutput struct {
	ResumedAt time.Time
	Name      string
}

// ResumeTask is the use case for resuming the paused task.
type ResumeTask struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewResumeTask creates a new ResumeTask use case.
func NewResumeTask(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *ResumeTask {
	return &ResumeTask{store: store, clock: clock, logger: logger}
}

// Execute opens a new segment on the paused task.
func (uc *ResumeTask) Execute(_ context.Context, in ResumeTaskInput) (*ResumeTaskOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	idx, state, found := model.CurrentTask()
	if !found {
		return nil, domain.ErrNoPausedTask
	}
	if state == domain.StateActive {
		return nil, fmt.Errorf("task %q: %w", model.Tasks[idx].Name, domain.ErrAlreadyActive)
	}

	now := uc.clock.Now().UTC()
	model.ResumeTask(idx, now)
	task := &model.Tasks[idx]

	if err := uc.store.Save(model, in.Passphrase); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}

	uc.logger.Info("task resumed", "id", task.ID, "name", task.Name)
	return &ResumeTaskOutput{ResumedAt: now, Name: task.Name}, nil
}
