package usecase

import (
	"context"
	"log/slog"

	"github.com/runoshun/ttt/internal/domain"
)

// RekeyInput carries the old and the replacement passphrase.
type RekeyInput struct {
	OldPassphrase string
	NewPassphrase string
}

// RekeyOutput reports where the re-encrypted file lives.
type RekeyOutput struct {
	Path string
}

// Rekey is the use case for re-encrypting the data file under a new
// passphrase.
type Rekey struct {
	store  domain.StoreRepository
	logger *slog.Logger
}

// NewRekey creates a new Rekey use case.
func NewRekey(store domain.StoreRepository, logger *slog.Logger) *Rekey {
	return &Rekey{store: store, logger: logger}
}

// Execute decrypts with the old passphrase and writes back with the
// new one. A backup of the old-passphrase file is rotated in as part
// of the save.
func (uc *Rekey) Execute(_ context.Context, in RekeyInput) (*RekeyOutput, error) {
	if in.NewPassphrase == "" {
		return nil, domain.ErrEmptyPassphrase
	}
	if err := uc.store.Rekey(in.OldPassphrase, in.NewPassphrase); err != nil {
		return nil, err
	}
	uc.logger.Info("store rekeyed", "path", uc.store.Path())
	return &RekeyOutput{Path: uc.store.Path()}, nil
}
