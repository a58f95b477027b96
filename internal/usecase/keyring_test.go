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

func TestRekey(t *testing.T) {
	t.Run("swaps the passphrase", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.Model.StartTask("deep work", at(9, 0))
		uc := NewRekey(repo, testLogger())

		out, err := uc.Execute(context.Background(), RekeyInput{
			OldPassphrase: "secret",
			NewPassphrase: "better secret",
		})

		require.NoError(t, err)
		assert.Equal(t, repo.FilePath, out.Path)
		assert.Equal(t, "better secret", repo.Passphrase)
		assert.Equal(t, "better secret", repo.SavedWith)
	})

	t.Run("fails with the wrong old passphrase", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewRekey(repo, testLogger())

		_, err := uc.Execute(context.Background(), RekeyInput{
			OldPassphrase: "wrong",
			NewPassphrase: "better secret",
		})

		require.ErrorIs(t, err, domain.ErrAuthenticationFailed)
		assert.Equal(t, "secret", repo.Passphrase)
	})

	t.Run("rejects an empty new passphrase", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewRekey(repo, testLogger())

		_, err := uc.Execute(context.Background(), RekeyInput{OldPassphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrEmptyPassphrase)
	})
}

func TestRestore(t *testing.T) {
	backups := []domain.BackupInfo{
		{Path: "/tmp/ttt-test/ttt.json.bak.2", ModTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)},
		{Path: "/tmp/ttt-test/ttt.json.bak.0", ModTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	t.Run("restores a named backup", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.BackupList = backups
		uc := NewRestore(repo, testLogger())

		out, err := uc.Execute(context.Background(), RestoreInput{
			Passphrase: "secret",
			BackupPath: backups[1].Path,
		})

		require.NoError(t, err)
		assert.Equal(t, backups[1].Path, out.BackupPath)
		assert.Equal(t, backups[1].Path, repo.RestoredOne)
	})

	t.Run("defaults to the newest backup", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.BackupList = backups
		uc := NewRestore(repo, testLogger())

		out, err := uc.Execute(context.Background(), RestoreInput{Passphrase: "secret"})

		require.NoError(t, err)
		assert.Equal(t, backups[0].Path, out.BackupPath)
	})

	t.Run("fails when no backups exist", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		uc := NewRestore(repo, testLogger())

		_, err := uc.Execute(context.Background(), RestoreInput{Passphrase: "secret"})

		require.ErrorIs(t, err, domain.ErrNoBackups)
	})

	t.Run("wrong passphrase never touches the data file", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.BackupList = backups
		uc := NewRestore(repo, testLogger())

		_, err := uc.Execute(context.Background(), RestoreInput{
			Passphrase: "wrong",
			BackupPath: backups[0].Path,
		})

		require.ErrorIs(t, err, domain.ErrAuthenticationFailed)
		assert.Empty(t, repo.RestoredOne)
	})

	t.Run("lists backups", func(t *testing.T) {
		repo := testutil.NewMockStoreRepository()
		repo.BackupList = backups
		uc := NewRestore(repo, testLogger())

		got, err := uc.ListBackups(context.Background())

		require.NoError(t, err)
		assert.Equal(t, backups, got)
	})
}
