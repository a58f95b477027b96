package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestEditTask(t *testing.T) {
	t.Run("renames a task by index", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("typo", at(9, 0))
		repo.Model.StopTask(0, at(9, 30))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase: "secret",
			Index:      1,
			Name:       strPtr("fixed"),
		})

		require.NoError(t, err)
		assert.Equal(t, "fixed", out.Task.Name)
		assert.Equal(t, "fixed", repo.Model.Tasks[0].Name)
		assert.Equal(t, 1, repo.SaveCount)
	})

	t.Run("edits a segment by id", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		task := repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.StopTask(0, at(9, 30))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase:   "secret",
			TaskID:       task.ID,
			SegmentEdits: []string{"1,2025-06-02T08:00:00Z,2025-06-02T08:45:00Z"},
		})

		require.NoError(t, err)
		seg := out.Task.Segments[0]
		assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), seg.StartAt)
		assert.Equal(t, time.Date(2025, 6, 2, 8, 45, 0, 0, time.UTC), *seg.EndAt)
	})

	t.Run("rejects edits that break invariants without saving", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.StopTask(0, at(9, 30))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		// End before start.
		_, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase:   "secret",
			Index:        1,
			SegmentEdits: []string{"1,2025-06-02T09:30:00Z,2025-06-02T09:00:00Z"},
		})

		require.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, 0, repo.SaveCount)
		assert.Equal(t, at(9, 0), repo.Model.Tasks[0].Segments[0].StartAt)
	})

	t.Run("rejects reopening a segment of a stopped task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("done", at(9, 0))
		repo.Model.StopTask(0, at(9, 30))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase:   "secret",
			Index:        1,
			SegmentEdits: []string{"1,2025-06-02T09:00:00Z,open"},
		})

		require.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("accepts now as a timestamp", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.StopTask(0, at(9, 30))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase: "secret",
			Index:      1,
			ClosedAt:   strPtr("now"),
		})

		require.NoError(t, err)
		require.NotNil(t, out.Task.ClosedAt)
		assert.Equal(t, at(10, 0), *out.Task.ClosedAt)
	})

	t.Run("rejects a malformed timestamp", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase: "secret",
			Index:      1,
			CreatedAt:  strPtr("yesterday-ish"),
		})

		require.ErrorIs(t, err, domain.ErrInvalidTimestamp)
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("rejects an unknown id", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase: "secret",
			TaskID:     "nope",
			Name:       strPtr("x"),
		})

		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("rejects an out of range index", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), EditTaskInput{
			Passphrase: "secret",
			Index:      5,
			Name:       strPtr("x"),
		})

		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("no changes is a no-op", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewEditTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), EditTaskInput{Passphrase: "secret", Index: 1})

		require.NoError(t, err)
		assert.Equal(t, "deep work", out.Task.Name)
		assert.Equal(t, 0, repo.SaveCount)
	})
}

func TestParseTimeValue(t *testing.T) {
	now := at(10, 0)

	t.Run("parses RFC 3339 and normalizes to UTC", func(t *testing.T) {
		got, err := ParseTimeValue("2025-06-02T12:00:00+02:00", now, "start")
		require.NoError(t, err)
		assert.Equal(t, at(10, 0), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("now literal", func(t *testing.T) {
		got, err := ParseTimeValue("NOW", now, "start")
		require.NoError(t, err)
		assert.Equal(t, now, got)
	})

	t.Run("open clears the optional value", func(t *testing.T) {
		got, err := ParseOptionalTimeValue("open", now, "end")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
