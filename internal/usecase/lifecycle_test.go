package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestStartTask(t *testing.T) {
	t.Run("starts a task on an empty store", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		clock := &testutil.MockClock{NowTime: at(9, 0)}
		uc := NewStartTask(repo, clock, testLogger())

		out, err := uc.Execute(context.Background(), StartTaskInput{
			Passphrase: "secret",
			Name:       "write docs",
		})

		require.NoError(t, err)
		assert.Equal(t, "write docs", out.Name)
		assert.NotEmpty(t, out.TaskID)
		assert.Equal(t, at(9, 0), out.StartedAt)
		assert.Empty(t, out.StoppedName)
		require.Len(t, repo.Model.Tasks, 1)
		assert.Equal(t, 1, repo.SaveCount)
	})

	t.Run("rejects an empty name without loading", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewStartTask(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), StartTaskInput{Passphrase: "secret", Name: "   "})

		require.ErrorIs(t, err, domain.ErrEmptyName)
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("conflicts with a current task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("first", at(9, 0))
		uc := NewStartTask(repo, &testutil.MockClock{NowTime: at(9, 30)}, testLogger())

		_, err := uc.Execute(context.Background(), StartTaskInput{Passphrase: "secret", Name: "second"})

		require.ErrorIs(t, err, domain.ErrTaskConflict)
		assert.Contains(t, err.Error(), "first")
		assert.Equal(t, 0, repo.SaveCount)
		assert.Len(t, repo.Model.Tasks, 1)
	})

	t.Run("stops the current task when asked", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("first", at(9, 0))
		uc := NewStartTask(repo, &testutil.MockClock{NowTime: at(9, 30)}, testLogger())

		out, err := uc.Execute(context.Background(), StartTaskInput{
			Passphrase:  "secret",
			Name:        "second",
			StopCurrent: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "first", out.StoppedName)
		require.Len(t, repo.Model.Tasks, 2)
		assert.True(t, repo.Model.Tasks[0].Stopped())
		assert.Equal(t, at(9, 30), *repo.Model.Tasks[0].Segments[0].EndAt)
		require.NoError(t, repo.Model.Validate())
	})

	t.Run("propagates authentication failure", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewStartTask(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), StartTaskInput{Passphrase: "wrong", Name: "x"})

		require.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	})
}

func TestStopTask(t *testing.T) {
	t.Run("stops the active task and reports elapsed", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewStopTask(repo, &testutil.MockClock{NowTime: at(9, 45)}, testLogger())

		out, err := uc.Execute(context.Background(), StopTaskInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "deep work", out.Name)
		assert.Equal(t, 45*time.Minute, out.Elapsed)
		assert.True(t, repo.Model.Tasks[0].Stopped())
		assert.Equal(t, 1, repo.SaveCount)
	})

	t.Run("stops a paused task without a new segment", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.PauseTask(0, at(9, 30))
		uc := NewStopTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), StopTaskInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, out.Elapsed)
		assert.Len(t, repo.Model.Tasks[0].Segments, 1)
	})

	t.Run("fails with no current task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewStopTask(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), StopTaskInput{Passphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrNoCurrentTask)
		assert.Equal(t, 0, repo.SaveCount)
	})
}

func TestPauseTask(t *testing.T) {
	t.Run("pauses the active task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewPauseTask(repo, &testutil.MockClock{NowTime: at(9, 30)}, testLogger())

		out, err := uc.Execute(context.Background(), PauseTaskInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, out.Elapsed)
		assert.Nil(t, repo.Model.Tasks[0].OpenSegment())
		assert.False(t, repo.Model.Tasks[0].Stopped())
	})

	t.Run("fails when already paused", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.PauseTask(0, at(9, 30))
		uc := NewPauseTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), PauseTaskInput{Passphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrAlreadyPaused)
		assert.ErrorIs(t, err, domain.ErrNoActiveTask, "already-paused matches the base error")
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("fails with no current task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewPauseTask(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), PauseTaskInput{Passphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrNoActiveTask)
	})
}

func TestResumeTask(t *testing.T) {
	t.Run("resumes the paused task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.PauseTask(0, at(9, 30))
		uc := NewResumeTask(repo, &testutil.MockClock{NowTime: at(10, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), ResumeTaskInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "deep work", out.Name)
		require.NotNil(t, repo.Model.Tasks[0].OpenSegment())
		assert.Equal(t, at(10, 0), repo.Model.Tasks[0].OpenSegment().StartAt)
	})

	t.Run("fails when already active", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewResumeTask(repo, &testutil.MockClock{NowTime: at(9, 30)}, testLogger())

		_, err := uc.Execute(context.Background(), ResumeTaskInput{Passphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrAlreadyActive)
		assert.ErrorIs(t, err, domain.ErrNoPausedTask, "already-active matches the base error")
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("fails with no current task", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewResumeTask(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		_, err := uc.Execute(context.Background(), ResumeTaskInput{Passphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrNoPausedTask)
	})
}

func TestStatus(t *testing.T) {
	t.Run("reports idle on an empty store", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewStatus(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), StatusInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.True(t, out.Idle)
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("reports the active task with the segment start", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewStatus(repo, &testutil.MockClock{NowTime: at(9, 20)}, testLogger())

		out, err := uc.Execute(context.Background(), StatusInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.False(t, out.Idle)
		assert.Equal(t, domain.StateActive, out.State)
		assert.Equal(t, at(9, 0), out.Since)
		assert.Equal(t, 20*time.Minute, out.Elapsed)
	})

	t.Run("reports the paused task with the pause time", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		repo.Model.PauseTask(0, at(9, 30))
		uc := NewStatus(repo, &testutil.MockClock{NowTime: at(11, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), StatusInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.Equal(t, domain.StatePaused, out.State)
		assert.Equal(t, at(9, 30), out.PausedAt)
		assert.Equal(t, 30*time.Minute, out.Elapsed)
	})

	t.Run("ignores stopped tasks", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("done", at(8, 0))
		repo.Model.StopTask(0, at(8, 30))
		uc := NewStatus(repo, &testutil.MockClock{NowTime: at(9, 0)}, testLogger())

		out, err := uc.Execute(context.Background(), StatusInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.True(t, out.Idle)
	})
}
