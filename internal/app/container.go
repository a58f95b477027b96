// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/infra/config"
	"github.com/runoshun/ttt/internal/infra/crypto"
	"github.com/runoshun/ttt/internal/infra/filestore"
	"github.com/runoshun/ttt/internal/infra/logging"
	"github.com/runoshun/ttt/internal/infra/terminal"
	"github.com/runoshun/ttt/internal/usecase"
)

// Options overrides parts of the loaded configuration.
type Options struct {
	// DataFile overrides the data file path from config when set.
	DataFile string
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Store    domain.StoreRepository
	Clock    domain.Clock
	Logger   *slog.Logger
	Prompter *terminal.Prompter
	Config   *config.Config

	closeLog func()
}

// New creates a Container from the user configuration.
func New(opts Options) (*Container, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}
	if opts.DataFile != "" {
		cfg.DataFile = opts.DataFile
	}

	logger, closeLog := logging.New(filepath.Dir(cfg.DataFile), logging.ParseLevel(cfg.LogLevel))

	kdf := crypto.KDFParams{
		Name:        crypto.DefaultKDFParams().Name,
		MemoryKiB:   cfg.KDF.MemoryKiB,
		Iterations:  cfg.KDF.Iterations,
		Parallelism: cfg.KDF.Parallelism,
	}
	store := filestore.New(cfg.DataFile, cfg.BackupSlots, kdf)

	return &Container{
		Store:    store,
		Clock:    domain.RealClock{},
		Logger:   logger,
		Prompter: terminal.NewPrompter(os.Stdin, os.Stderr),
		Config:   cfg,
		closeLog: closeLog,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(store domain.StoreRepository, clock domain.Clock, logger *slog.Logger, prompter *terminal.Prompter) *Container {
	return &Container{
		Store:    store,
		Clock:    clock,
		Logger:   logger,
		Prompter: prompter,
		Config:   config.Default(),
		closeLog: func() {},
	}
}

// Close flushes and closes the log file.
func (c *Container) Close() {
	if c.closeLog != nil {
		c.closeLog()
	}
}

// UseCase factory methods

// StartTaskUseCase returns a new StartTask use case.
func (c *Container) StartTaskUseCase() *usecase.StartTask {
	return usecase.NewStartTask(c.Store, c.Clock, c.Logger)
}

// StopTaskUseCase returns a new StopTask use case.
func (c *Container) StopTaskUseCase() *usecase.StopTask {
	return usecase.NewStopTask(c.Store, c.Clock, c.Logger)
}

// PauseTaskUseCase returns a new PauseTask use case.
func (c *Container) PauseTaskUseCase() *usecase.PauseTask {
	return usecase.NewPauseTask(c.Store, c.Clock, c.Logger)
}

// ResumeTaskUseCase returns a new ResumeTask use case.
func (c *Container) ResumeTaskUseCase() *usecase.ResumeTask {
	return usecase.NewResumeTask(c.Store, c.Clock, c.Logger)
}

// StatusUseCase returns a new Status use case.
func (c *Container) StatusUseCase() *usecase.Status {
	return usecase.NewStatus(c.Store, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Clock, c.Logger)
}

// ReportUseCase returns a new Report use case.
func (c *Container) ReportUseCase() *usecase.Report {
	return usecase.NewReport(c.Store, c.Clock, c.Logger)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Store, c.Clock, c.Logger)
}

// RekeyUseCase returns a new Rekey use case.
func (c *Container) RekeyUseCase() *usecase.Rekey {
	return usecase.NewRekey(c.Store, c.Logger)
}

// RestoreUseCase returns a new Restore use case.
func (c *Container) RestoreUseCase() *usecase.Restore {
	return usecase.NewRestore(c.Store, c.Logger)
}
