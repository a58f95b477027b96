package domain

import (
	"fmt"
	"strings"
	"time"
)

// SegmentEdit rewrites one segment's timestamps. Index is 1-based to
// match the numbering shown to the user.
type SegmentEdit struct {
	StartAt time.Time
	EndAt   *time.Time // nil reopens the segment
	Index   int
}

// TaskChanges is the single edit structure produced by both the flag
// front-end and the interactive form.
type TaskChanges struct {
	Name         *string
	CreatedAt    *time.Time
	ClosedAt     *time.Time // meaningful only when SetClosedAt is true
	SegmentEdits []SegmentEdit
	SetClosedAt  bool // nil ClosedAt with this set reopens the task
}

// Empty reports whether the changes would not modify anything.
func (c TaskChanges) Empty() bool {
	return c.Name == nil && c.CreatedAt == nil && !c.SetClosedAt && len(c.SegmentEdits) == 0
}

// ApplyChanges rewrites the task in place. Validation failures leave
// the task partially modified; callers work on a loaded copy that is
// only persisted on success.
func ApplyChanges(t *Task, c TaskChanges) error {
	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return ErrEmptyName
		}
		t.Name = *c.Name
	}
	if c.CreatedAt != nil {
		t.CreatedAt = *c.CreatedAt
	}
	if c.SetClosedAt {
		t.ClosedAt = c.ClosedAt
	}
	for _, edit := range c.SegmentEdits {
		if edit.Index < 1 || edit.Index > len(t.Segments) {
			return fmt.Errorf("segment index must be between 1 and %d: %w", len(t.Segments), ErrTaskNotFound)
		}
		seg := &t.Segments[edit.Index-1]
		seg.StartAt = edit.StartAt
		seg.EndAt = edit.EndAt
	}
	return nil
}

// FindTaskByID returns the index of the task with the given id.
func (s *Store) FindTaskByID(id string) (int, bool) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
