// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"time"
)

// CurrentVersion is the schema version of the plaintext store model.
const CurrentVersion = 1

// Store is the root aggregate persisted in the encrypted data file.
// Task order is creation order and is used as a stable tie-break.
type Store struct {
	Version int    `json:"version"`
	Tasks   []Task `json:"tasks"`
}

// NewStore returns an empty store at the current schema version.
func NewStore() *Store {
	return &Store{Version: CurrentVersion}
}

// Task is one tracked unit of work. A task is stopped iff ClosedAt is set.
type Task struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	Segments  []Segment  `json:"segments"`
}

// Segment is one contiguous interval of work. A nil EndAt means the
// segment is still open and the owning task is actively running.
type Segment struct {
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
}

// Open reports whether the segment has no end yet.
func (s Segment) Open() bool {
	return s.EndAt == nil
}

// Duration returns the segment length, using now for open segments.
// Negative lengths (possible after hand edits) clamp to zero.
func (s Segment) Duration(now time.Time) time.Duration {
	end := now
	if s.EndAt != nil {
		end = *s.EndAt
	}
	d := end.Sub(s.StartAt)
	if d < 0 {
		return 0
	}
	return d
}

// Stopped reports whether the task has been stopped.
func (t *Task) Stopped() bool {
	return t.ClosedAt != nil
}

// OpenSegment returns the task's open segment, or nil if every segment
// is closed.
func (t *Task) OpenSegment() *Segment {
	for i := range t.Segments {
		if t.Segments[i].Open() {
			return &t.Segments[i]
		}
	}
	return nil
}

// Validate checks the store against the data-model invariants:
// unique task IDs, at most one non-stopped task, at most one open
// segment store-wide, stopped tasks fully closed, and segment ends
// not before starts. Violations are reported wrapped in
// ErrInvariantViolation and are never repaired automatically.
func (s *Store) Validate() error {
	notStopped := 0
	openSegments := 0
	seen := make(map[string]struct{}, len(s.Tasks))
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("task id %q appears more than once: %w", t.ID, ErrInvariantViolation)
		}
		seen[t.ID] = struct{}{}
		if !t.Stopped() {
			notStopped++
		}
		for j := range t.Segments {
			seg := &t.Segments[j]
			if seg.Open() {
				openSegments++
				if t.Stopped() {
					return fmt.Errorf("task %q is stopped but segment %d is open: %w", t.Name, j+1, ErrInvariantViolation)
				}
				continue
			}
			if seg.EndAt.Before(seg.StartAt) {
				return fmt.Errorf("task %q segment %d ends before it starts: %w", t.Name, j+1, ErrInvariantViolation)
			}
		}
	}
	if notStopped > 1 {
		return fmt.Errorf("%d tasks are not stopped, expected at most one: %w", notStopped, ErrInvariantViolation)
	}
	if openSegments > 1 {
		return fmt.Errorf("%d segments are open, expected at most one: %w", openSegments, ErrInvariantViolation)
	}
	return nil
}
