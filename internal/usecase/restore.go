package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/ttt/internal/domain"
)

// RestoreInput selects a backup to promote. An empty BackupPath means
// the newest backup that decrypts and validates with the passphrase.
type RestoreInput struct {
	Passphrase string
	BackupPath string
}

// RestoreOutput reports which backup was restored.
type RestoreOutput struct {
	BackupPath string
	TaskCount  int
}

// Restore is the use case for replacing the data file with a backup.
type Restore struct {
	store  domain.StoreRepository
	logger *slog.Logger
}

// NewRestore creates a new Restore use case.
func NewRestore(store domain.StoreRepository, logger *slog.Logger) *Restore {
	return &Restore{store: store, logger: logger}
}

// ListBackups returns the available backups, newest first.
func (uc *Restore) ListBackups(_ context.Context) ([]domain.BackupInfo, error) {
	return uc.store.Backups()
}

// Execute validates the chosen backup and copies it over the data
// file. Restoring the same backup twice is a no-op the second time.
func (uc *Restore) Execute(_ context.Context, in RestoreInput) (*RestoreOutput, error) {
	path := in.BackupPath
	if path == "" {
		backups, err := uc.store.Backups()
		if err != nil {
			return nil, err
		}
		if len(backups) == 0 {
			return nil, domain.ErrNoBackups
		}
		var restoreErr error
		for _, b := range backups {
			if err := uc.store.Restore(b.Path, in.Passphrase); err != nil {
				restoreErr = err
				continue
			}
			return uc.result(b.Path, in.Passphrase)
		}
		return nil, fmt.Errorf("no usable backup: %w", restoreErr)
	}

	if err := uc.store.Restore(path, in.Passphrase); err != nil {
		return nil, err
	}
	return uc.result(path, in.Passphrase)
}

func (uc *Restore) result(path, passphrase string) (*RestoreOutput, error) {
	model, err := uc.store.Load(passphrase)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("store restored", "backup", path, "tasks", len(model.Tasks))
	return &RestoreOutput{BackupPath: path, TaskCount: len(model.Tasks)}, nil
}
