// Package usecase contains application use cases. Each use case loads
// the whole store, operates on it, and persists it back as one unit,
// with a single now captured per invocation.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// StartTaskInput contains the parameters for starting a task.
type StartTaskInput struct {
	Passphrase string
	Name       string
	// StopCurrent stops an existing active or paused task first. The
	// CLI sets it after confirming with the user; without it a current
	// task makes the start fail with ErrTaskConflict.
	StopCurrent bool
}

// StartTaskOutput contains the result of starting a task.
type StartTaskOutput struct {
	StartedAt   time.Time
	TaskID      string
	Name        string
	StoppedName string // name of the task stopped to make room, if any
}

// StartTask is the use case for starting a new task.
type StartTask struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewStartTask creates a new StartTask use case.
func NewStartTask(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *StartTask {
	return &StartTask{store: store, clock: clock, logger: logger}
}

// Execute starts tracking a new task.
func (uc *StartTask) Execute(_ context.Context, in StartTaskInput) (*StartTaskOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrEmptyName
	}

	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	out := &StartTaskOutput{StartedAt: now, Name: in.Name}

	if idx, _, found := model.CurrentTask(); found {
		if !in.StopCurrent {
			return nil, fmt.Errorf("task %q: %w", model.Tasks[idx].Name, domain.ErrTaskConflict)
		}
		out.StoppedName = model.Tasks[idx].Name
		model.StopTask(idx, now)
	}

	task := model.StartTask(in.Name, now)
	out.TaskID = task.ID

	if err := uc.store.Save(model, in.Passphrase); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}

	uc.logger.Info("task started", "id", task.ID, "name", in.Name)
	return out, nil
}
