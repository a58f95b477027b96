package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// StopTaskInput contains the parameters for stopping the current task.
type StopTaskInput struct {
	Passphrase string
}

// StopTaskOutput contains the result of stopping a task.
type StopTaskOutput struct {
	StoppedAt time.Time
	Name      string
	TaskID    string
	Elapsed   time.Duration
}

// StopTask is the use case for stopping the active or paused task.
type StopTask struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewStopTask creates a new StopTask use case.
func NewStopTask(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *StopTask {
	return &StopTask{store: store, clock: clock, logger: logger}
}

// Execute stops the current task, closing any open segment.
func (uc *StopTask) Execute(_ context.Context, in StopTaskInput) (*StopTaskOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	idx, _, found := model.CurrentTask()
	if !found {
		return nil, domain.ErrNoCurrentTask
	}

	now := uc.clock.Now().UTC()
	model.StopTask(idx, now)
	task := &model.Tasks[idx]

	if err := uc.store.Save(model, in.Passphrase); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}

	uc.logger.Info("task stopped", "id", task.ID, "name", task.Name)
	return &StopTaskOutput{
		StoppedAt: now,
		Name:      task.Name,
		TaskID:    task.ID,
		Elapsed:   task.TotalElapsed(now),
	}, nil
}
