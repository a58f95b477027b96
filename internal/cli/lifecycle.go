package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/ttt/internal/app"
	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/usecase"
)

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	var stopCurrent bool

	cmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Start tracking a new task",
		Long: `Start tracking a new task. Only one task can be active or paused
at a time; if another task is current, ttt asks whether to stop it
first (or pass --stop-current to skip the question).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				var err error
				name, err = c.Prompter.Required("Task name: ", "Task name")
				if err != nil {
					return err
				}
			}
			pass, err := readPassphrase(c, true)
			if err != nil {
				return err
			}
			existed := c.Store.Exists()

			in := usecase.StartTaskInput{Passphrase: pass, Name: name, StopCurrent: stopCurrent}
			out, err := c.StartTaskUseCase().Execute(cmd.Context(), in)
			if errors.Is(err, domain.ErrTaskConflict) && !stopCurrent {
				if !c.Prompter.YesNo(fmt.Sprintf("%v. Stop it and start %q? [y/N] ", err, name)) {
					return err
				}
				in.StopCurrent = true
				out, err = c.StartTaskUseCase().Execute(cmd.Context(), in)
			}
			if err != nil {
				return err
			}

			announceCreation(c, cmd, existed)
			if out.StoppedName != "" {
				cmd.Printf("Stopped: %s\n", out.StoppedName)
			}
			cmd.Printf("Started: %s at %s\n", out.Name, formatClock(out.StartedAt))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stopCurrent, "stop-current", false, "stop the current task without asking")
	return cmd
}

// newStopCommand creates the stop command.
func newStopCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the current task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}
			out, err := c.StopTaskUseCase().Execute(cmd.Context(), usecase.StopTaskInput{Passphrase: pass})
			if err != nil {
				return err
			}
			cmd.Printf("Stopped: %s at %s (total %s)\n", out.Name, formatClock(out.StoppedAt), formatDuration(out.Elapsed))
			return nil
		},
	}
}

// newPauseCommand creates the pause command.
func newPauseCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the active task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}
			out, err := c.PauseTaskUseCase().Execute(cmd.Context(), usecase.PauseTaskInput{Passphrase: pass})
			if err != nil {
				return err
			}
			cmd.Printf("Paused: %s at %s (total %s)\n", out.Name, formatClock(out.PausedAt), formatDuration(out.Elapsed))
			return nil
		},
	}
}

// newResumeCommand creates the resume command.
func newResumeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume the paused task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}
			out, err := c.ResumeTaskUseCase().Execute(cmd.Context(), usecase.ResumeTaskInput{Passphrase: pass})
			if err != nil {
				return err
			}
			cmd.Printf("Resumed: %s at %s\n", out.Name, formatClock(out.ResumedAt))
			return nil
		},
	}
}

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}
			out, err := c.StatusUseCase().Execute(cmd.Context(), usecase.StatusInput{Passphrase: pass})
			if err != nil {
				return err
			}
			if out.Idle {
				cmd.Println(`No active task. Start one with "ttt start".`)
				return nil
			}
			switch out.State {
			case domain.StateActive:
				cmd.Printf("Active: %s - %s (since %s)\n", out.Name, formatDuration(out.Elapsed), formatClock(out.Since))
			case domain.StatePaused:
				cmd.Printf("Paused: %s - %s (paused at %s)\n", out.Name, formatDuration(out.Elapsed), formatClock(out.PausedAt))
			}
			return nil
		},
	}
}
