// Package cli provides the command-line interface for ttt.
package cli

import (
	"github.com/runoshun/ttt/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTracking = "tracking"
	groupQuery    = "query"
	groupStore    = "store"
)

// NewRootCommand creates the root command for ttt.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "ttt",
		Short: "Encrypted local time tracking",
		Long: `ttt tracks time spent on tasks in a single passphrase-encrypted
data file. One task is current at a time; pausing and resuming splits
its time into segments, and reports aggregate those segments per day.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.PersistentFlags().String("data-file", "", "override the encrypted data file path")

	root.AddGroup(
		&cobra.Group{ID: groupTracking, Title: "Tracking Commands:"},
		&cobra.Group{ID: groupQuery, Title: "Query Commands:"},
		&cobra.Group{ID: groupStore, Title: "Store Commands:"},
	)

	startCmd := newStartCommand(c)
	startCmd.GroupID = groupTracking
	stopCmd := newStopCommand(c)
	stopCmd.GroupID = groupTracking
	pauseCmd := newPauseCommand(c)
	pauseCmd.GroupID = groupTracking
	resumeCmd := newResumeCommand(c)
	resumeCmd.GroupID = groupTracking

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupQuery
	listCmd := newListCommand(c)
	listCmd.GroupID = groupQuery
	reportCmd := newReportCommand(c)
	reportCmd.GroupID = groupQuery
	locationCmd := newLocationCommand(c)
	locationCmd.GroupID = groupQuery

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupStore
	rekeyCmd := newRekeyCommand(c)
	rekeyCmd.GroupID = groupStore
	restoreCmd := newRestoreCommand(c)
	restoreCmd.GroupID = groupStore

	root.AddCommand(
		startCmd, stopCmd, pauseCmd, resumeCmd,
		statusCmd, listCmd, reportCmd, locationCmd,
		editCmd, rekeyCmd, restoreCmd,
		newVersionCommand(version),
	)
	return root
}
