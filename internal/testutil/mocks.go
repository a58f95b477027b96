// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"encoding/json"
	"time"

	"github.com/runoshun/ttt/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockStoreRepository is an in-memory test double for
// domain.StoreRepository. It records the passphrases used so tests can
// assert on rekey flows.
type MockStoreRepository struct {
	Model       *domain.Store
	LoadErr     error
	SaveErr     error
	RestoreErr  error
	BackupList  []domain.BackupInfo
	FilePath    string
	Passphrase  string
	SavedWith   string
	RestoredOne string
	SaveCount   int
	FileExists  bool
}

// Ensure MockStoreRepository implements StoreRepository.
var _ domain.StoreRepository = (*MockStoreRepository)(nil)

// NewMockStoreRepository creates a mock holding an empty store.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{
		Model:      domain.NewStore(),
		FilePath:   "/tmp/ttt-test/ttt.json",
		Passphrase: "secret",
	}
}

// Load returns a deep copy of the in-memory model, matching the real
// repository, which deserializes a fresh model on every load.
func (m *MockStoreRepository) Load(passphrase string) (*domain.Store, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if passphrase != m.Passphrase {
		return nil, domain.ErrAuthenticationFailed
	}
	data, err := json.Marshal(m.Model)
	if err != nil {
		return nil, err
	}
	clone := &domain.Store{}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// Save stores the model and records the passphrase used.
func (m *MockStoreRepository) Save(store *domain.Store, passphrase string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Model = store
	m.SavedWith = passphrase
	m.SaveCount++
	m.FileExists = true
	return nil
}

// Rekey swaps the accepted passphrase.
func (m *MockStoreRepository) Rekey(oldPassphrase, newPassphrase string) error {
	if _, err := m.Load(oldPassphrase); err != nil {
		return err
	}
	if err := m.Save(m.Model, newPassphrase); err != nil {
		return err
	}
	m.Passphrase = newPassphrase
	return nil
}

// Backups returns the configured backup list.
func (m *MockStoreRepository) Backups() ([]domain.BackupInfo, error) {
	return m.BackupList, nil
}

// Restore records which backup was promoted.
func (m *MockStoreRepository) Restore(backupPath, passphrase string) error {
	if m.RestoreErr != nil {
		return m.RestoreErr
	}
	if passphrase != m.Passphrase {
		return domain.ErrAuthenticationFailed
	}
	m.RestoredOne = backupPath
	return nil
}

// Path returns the configured path.
func (m *MockStoreRepository) Path() string {
	return m.FilePath
}

// Exists reports the configured existence flag.
func (m *MockStoreRepository) Exists() bool {
	return m.FileExists
}
