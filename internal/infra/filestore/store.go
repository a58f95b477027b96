// Package filestore persists the encrypted store as a single file with
// atomic replacement and a fixed ring of backup slots.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/infra/crypto"
)

// DefaultBackupSlots is the size of the backup ring.
const DefaultBackupSlots = 3

// Store implements domain.StoreRepository on a single encrypted file.
type Store struct {
	path  string
	kdf   crypto.KDFParams
	slots int
}

// Ensure Store implements StoreRepository.
var _ domain.StoreRepository = (*Store)(nil)

// New creates a Store at the given file path. slots is clamped to 1..9.
// kdf applies to new writes only; reads honor the parameters stored in
// the envelope.
func New(path string, slots int, kdf crypto.KDFParams) *Store {
	if slots < 1 {
		slots = 1
	}
	if slots > 9 {
		slots = 9
	}
	return &Store{path: path, slots: slots, kdf: kdf}
}

// Path returns the resolved data file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the data file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and decrypts the store. A missing file yields a fresh
// empty model without touching disk. The decoded model is checked
// against the schema version and the data-model invariants before it
// is returned; violations are never repaired.
func (s *Store) Load(passphrase string) (*domain.Store, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewStore(), nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return decodeStore(payload, passphrase)
}

// Save serializes, encrypts with a fresh salt and nonce, and replaces
// the data file atomically. The previous file is rotated into a backup
// slot first, so a corrupting write stays recoverable.
func (s *Store) Save(model *domain.Store, passphrase string) error {
	plaintext, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	payload, err := crypto.Encrypt(plaintext, passphrase, s.kdf)
	if err != nil {
		return fmt.Errorf("encrypt store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	if s.Exists() {
		if err := s.rotateBackup(); err != nil {
			return fmt.Errorf("rotate backup: %w", err)
		}
	}

	return writeFileAtomic(s.path, payload)
}

// Rekey re-encrypts the store under a new passphrase. The rotation in
// Save keeps one generation readable with the old passphrase. There
// must be a file to rekey; Rekey never creates one.
func (s *Store) Rekey(oldPassphrase, newPassphrase string) error {
	if !s.Exists() {
		return fmt.Errorf("no data file at %s: %w", s.path, os.ErrNotExist)
	}
	model, err := s.Load(oldPassphrase)
	if err != nil {
		return err
	}
	return s.Save(model, newPassphrase)
}

// Backups lists existing backup slots, newest first.
func (s *Store) Backups() ([]domain.BackupInfo, error) {
	var infos []domain.BackupInfo
	for i := 0; i < s.slots; i++ {
		fi, err := os.Stat(s.slotPath(i))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat backup slot: %w", err)
		}
		infos = append(infos, domain.BackupInfo{
			Path:    s.slotPath(i),
			ModTime: fi.ModTime(),
			Size:    fi.Size(),
		})
	}
	sort.Slice(infos, func(a, b int) bool {
		return infos[a].ModTime.After(infos[b].ModTime)
	})
	return infos, nil
}

// Restore validates a backup and promotes its bytes to be the active
// file. The slot itself is untouched, so restoring twice in a row
// yields the same file both times.
func (s *Store) Restore(backupPath, passphrase string) error {
	payload, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if _, err := decodeStore(payload, passphrase); err != nil {
		return fmt.Errorf("backup %s: %w", filepath.Base(backupPath), err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return writeFileAtomic(s.path, payload)
}

// decodeStore decrypts, deserializes, and validates an envelope payload.
func decodeStore(payload []byte, passphrase string) (*domain.Store, error) {
	plaintext, err := crypto.Decrypt(payload, passphrase)
	if err != nil {
		return nil, err
	}

	var model domain.Store
	if err := json.Unmarshal(plaintext, &model); err != nil {
		// The tag already authenticated, so this is corruption that
		// predates encryption, not a wrong passphrase.
		return nil, fmt.Errorf("corrupt store: %w: %w", domain.ErrInvariantViolation, err)
	}
	if model.Version != domain.CurrentVersion {
		return nil, fmt.Errorf("store version %d: %w", model.Version, domain.ErrUnsupportedVersion)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt store: %w", err)
	}
	return &model, nil
}

// rotateBackup copies the current data file into the oldest slot.
// Missing slots count as oldest, so the ring fills before it evicts.
func (s *Store) rotateBackup() error {
	slot := s.slotPath(0)
	oldest := int64(0)
	first := true
	for i := 0; i < s.slots; i++ {
		fi, err := os.Stat(s.slotPath(i))
		if err != nil {
			if os.IsNotExist(err) {
				slot = s.slotPath(i)
				break
			}
			return err
		}
		if first || fi.ModTime().UnixNano() < oldest {
			first = false
			oldest = fi.ModTime().UnixNano()
			slot = s.slotPath(i)
		}
	}

	payload, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	return writeFileAtomic(slot, payload)
}

func (s *Store) slotPath(i int) string {
	return s.path + ".bak." + strconv.Itoa(i)
}

// writeFileAtomic writes payload to a temp file in the target
// directory, then renames it over path. The previous file is never
// observable half-written: a crash before the rename leaves it intact.
func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ttt-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	// Owner-only before any payload bytes land on disk.
	if err := tmp.Chmod(0o600); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}
	if _, err := tmp.Write(payload); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("close temp file: %w", err))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
