package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskState is the derived state of the one not-yet-stopped task.
type TaskState int

const (
	// StateActive means the task has an open segment.
	StateActive TaskState = iota
	// StatePaused means the task has no open segment but is not stopped.
	StatePaused
)

// String returns the status label used in list and status output.
func (s TaskState) String() string {
	if s == StateActive {
		return "active"
	}
	return "paused"
}

// CurrentTask scans for the single not-stopped task and derives its
// state from segment shape. The "current task" is never stored as a
// pointer field, so it cannot drift from segment state.
func (s *Store) CurrentTask() (int, TaskState, bool) {
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Stopped() {
			continue
		}
		if t.OpenSegment() != nil {
			return i, StateActive, true
		}
		if len(t.Segments) > 0 {
			return i, StatePaused, true
		}
	}
	return 0, 0, false
}

// StartTask appends a new task with a fresh random ID and one open
// segment starting at now. The caller must ensure no task is current.
func (s *Store) StartTask(name string, now time.Time) *Task {
	s.Tasks = append(s.Tasks, Task{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		Segments:  []Segment{{StartAt: now}},
	})
	return &s.Tasks[len(s.Tasks)-1]
}

// PauseTask closes the open segment of the task at idx.
func (s *Store) PauseTask(idx int, now time.Time) {
	if seg := s.Tasks[idx].OpenSegment(); seg != nil {
		end := now
		seg.EndAt = &end
	}
}

// ResumeTask opens a new segment on the task at idx.
func (s *Store) ResumeTask(idx int, now time.Time) {
	t := &s.Tasks[idx]
	t.Segments = append(t.Segments, Segment{StartAt: now})
}

// StopTask closes any open segment and marks the task stopped.
func (s *Store) StopTask(idx int, now time.Time) {
	s.PauseTask(idx, now)
	closed := now
	s.Tasks[idx].ClosedAt = &closed
}

// TotalElapsed sums all segment durations of the task, counting an
// open segment up to now.
func (t *Task) TotalElapsed(now time.Time) time.Duration {
	var total time.Duration
	for _, seg := range t.Segments {
		total += seg.Duration(now)
	}
	return total
}

// StatusLabel returns active, paused, or stopped for display.
func (t *Task) StatusLabel() string {
	if t.OpenSegment() != nil {
		return StateActive.String()
	}
	if !t.Stopped() && len(t.Segments) > 0 {
		return StatePaused.String()
	}
	return "stopped"
}
