package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrAuthenticationFailed covers both a wrong passphrase and a
	// tampered or corrupted ciphertext; the two are indistinguishable
	// before decryption succeeds.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong passphrase or corrupted data file")

	// ErrInvariantViolation marks a store that decrypted cleanly but
	// violates the data-model invariants. Recovery path is restore.
	ErrInvariantViolation = errors.New("store invariant violation")

	ErrUnsupportedVersion = errors.New("unsupported store version")
	ErrTaskConflict       = errors.New("another task is active or paused")
	ErrNoActiveTask       = errors.New("no active task")
	ErrNoPausedTask       = errors.New("no paused task")
	ErrNoCurrentTask      = errors.New("no active or paused task")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmptyName          = errors.New("task name cannot be empty")
	ErrEmptyPassphrase    = errors.New("passphrase cannot be empty")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrNoBackups          = errors.New("no backups found")

	// ErrAlreadyPaused and ErrAlreadyActive carry friendlier messages
	// but still match the base no-active/no-paused errors, which is
	// what pause and resume report when no task is in the right state.
	ErrAlreadyPaused = fmt.Errorf("task is already paused: %w", ErrNoActiveTask)
	ErrAlreadyActive = fmt.Errorf("task is already running: %w", ErrNoPausedTask)
)
