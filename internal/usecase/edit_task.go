package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// EditTaskInput identifies a task and carries the raw field changes.
// Timestamp values accept RFC 3339 or "now"; optional ones also accept
// "open" to clear. Both the flag front-end and the interactive form
// produce this same structure, so there is exactly one edit code path.
type EditTaskInput struct {
	Name         *string
	CreatedAt    *string
	ClosedAt     *string
	Passphrase   string
	TaskID       string // task id (takes precedence over Index)
	SegmentEdits []string
	Index        int // 1-based position, 0 = unset
}

// EditTaskOutput contains the edited task.
type EditTaskOutput struct {
	Task domain.Task
}

// EditTask is the use case for rewriting task fields and segments.
type EditTask struct {
	store  domain.StoreRepository
	clock  domain.Clock
	logger *slog.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger) *EditTask {
	return &EditTask{store: store, clock: clock, logger: logger}
}

// Execute applies the edits and persists the store. The edited store
// must still satisfy the data-model invariants or nothing is saved.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	model, err := uc.store.Load(in.Passphrase)
	if err != nil {
		return nil, err
	}

	idx, err := resolveTask(model, in.TaskID, in.Index)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	changes, err := parseChanges(in, now)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return &EditTaskOutput{Task: model.Tasks[idx]}, nil
	}

	task := &model.Tasks[idx]
	if err := domain.ApplyChanges(task, changes); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("edit rejected: %w", err)
	}

	if err := uc.store.Save(model, in.Passphrase); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}

	uc.logger.Info("task edited", "id", task.ID, "name", task.Name)
	return &EditTaskOutput{Task: *task}, nil
}

// resolveTask locates the target by id or 1-based index.
func resolveTask(model *domain.Store, id string, index int) (int, error) {
	if len(model.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks to edit: %w", domain.ErrTaskNotFound)
	}
	if id != "" && index != 0 {
		return 0, fmt.Errorf("use either an id or an index, not both: %w", domain.ErrTaskNotFound)
	}
	if id != "" {
		idx, ok := model.FindTaskByID(id)
		if !ok {
			return 0, fmt.Errorf("no task with id %q: %w", id, domain.ErrTaskNotFound)
		}
		return idx, nil
	}
	if index != 0 {
		if index < 1 || index > len(model.Tasks) {
			return 0, fmt.Errorf("task index must be between 1 and %d: %w", len(model.Tasks), domain.ErrTaskNotFound)
		}
		return index - 1, nil
	}
	return 0, fmt.Errorf("no task selected: %w", domain.ErrTaskNotFound)
}

// parseChanges converts raw string inputs into typed changes.
func parseChanges(in EditTaskInput, now time.Time) (domain.TaskChanges, error) {
	var changes domain.TaskChanges

	changes.Name = in.Name

	if in.CreatedAt != nil {
		t, err := ParseTimeValue(*in.CreatedAt, now, "created at")
		if err != nil {
			return changes, err
		}
		changes.CreatedAt = &t
	}

	if in.ClosedAt != nil {
		t, err := ParseOptionalTimeValue(*in.ClosedAt, now, "closed at")
		if err != nil {
			return changes, err
		}
		changes.SetClosedAt = true
		changes.ClosedAt = t
	}

	for _, raw := range in.SegmentEdits {
		edit, err := parseSegmentEdit(raw, now)
		if err != nil {
			return changes, err
		}
		changes.SegmentEdits = append(changes.SegmentEdits, edit)
	}
	return changes, nil
}

// parseSegmentEdit parses "INDEX,START,END" where END may be "open".
func parseSegmentEdit(raw string, now time.Time) (domain.SegmentEdit, error) {
	parts := strings.SplitN(raw, ",", 3)
	if len(parts) != 3 {
		return domain.SegmentEdit{}, fmt.Errorf("segment edit must be INDEX,START,END: %w", domain.ErrInvalidTimestamp)
	}
	index, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.SegmentEdit{}, fmt.Errorf("segment index must be a number: %w", domain.ErrInvalidTimestamp)
	}
	start, err := ParseTimeValue(parts[1], now, "segment start")
	if err != nil {
		return domain.SegmentEdit{}, err
	}
	end, err := ParseOptionalTimeValue(parts[2], now, "segment end")
	if err != nil {
		return domain.SegmentEdit{}, err
	}
	return domain.SegmentEdit{Index: index, StartAt: start, EndAt: end}, nil
}

// ParseTimeValue parses an RFC 3339 timestamp or the literal "now",
// normalized to UTC.
func ParseTimeValue(input string, now time.Time, label string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "now") {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", label, input, domain.ErrInvalidTimestamp)
	}
	return t.UTC(), nil
}

// ParseOptionalTimeValue is ParseTimeValue but "open" and "none" clear
// the value.
func ParseOptionalTimeValue(input string, now time.Time, label string) (*time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if strings.EqualFold(trimmed, "open") || strings.EqualFold(trimmed, "none") {
		return nil, nil
	}
	t, err := ParseTimeValue(trimmed, now, label)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
