package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// PauseTaskInput contains the parameters for pausing the active task.
type PauseTaskInput struct {
	Passphrase string
}

// PauseTaskOutput contains the result of pausing a task.
type PauseTaskOutput struct {
	PausedAt time.Time
	Name     string
	Elapsed  time.Duration
}

// PauseTask is the use case for pausing the active task.
type PauseTask struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewPauseTask creates a new PauseTask use case.
func NewPauseTask(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *PauseTask {
	return &PauseTask{store: store, clock: clock, logger: logger}
}

// Execute closes the open segment of the active task.
func (uc *PauseTask) Execute(_ context.Context, in PauseTaskInput) (*PauseTaskOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	idx, state, found := model.CurrentTask()
	if !found {
		return nil, domain.ErrNoActiveTask
	}
	if state == domain.StatePaused {
		return nil, domain.ErrAlreadyPaused
	}

	now := uc.clock.Now().UTC()
	model.PauseTask(idx, now)
	task := &model.Tasks[idx]

	if err := uc.store.Save(model, in.Passphrase); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}

	uc.logger.Info("task paused", "id", task.ID, "name", task.Name)
	return &PauseTaskOutput{
		PausedAt: now,
		Name:     task.Name,
		Elapsed:  task.TotalElapsed(now),
	}, nil
}
