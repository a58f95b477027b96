package domain

import "time"

// StoreRepository manages the encrypted on-disk store. The whole model
// is loaded, mutated in memory, and written back as one unit; no
// reference outlives a load/save cycle.
type StoreRepository interface {
	// Load decrypts and validates the store. A missing file yields a
	// fresh empty store without touching disk.
	Load(passphrase string) (*Store, error)

	// Save encrypts the store with a fresh nonce and replaces the file
	// atomically, rotating the previous file into a backup slot first.
	Save(store *Store, passphrase string) error

	// Rekey re-encrypts the store under a new passphrase.
	Rekey(oldPassphrase, newPassphrase string) error

	// Backups lists the backup slots, newest first.
	Backups() ([]BackupInfo, error)

	// Restore validates a backup and promotes it to be the active file.
	Restore(backupPath, passphrase string) error

	// Path returns the resolved data file path.
	Path() string

	// Exists reports whether the data file is present on disk.
	Exists() bool
}

// BackupInfo describes one backup slot on disk.
type BackupInfo struct {
	ModTime time.Time
	Path    string
	Size    int64
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
