package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/ttt/internal/app"
)

// formatDuration renders a duration as HH:MM:SS. Hours do not wrap, so
// a long-running total stays readable.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// formatClock renders an instant as a local wall-clock time.
func formatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// readPassphrase prompts for the passphrase once. When the command is
// about to create the data file, the passphrase is asked twice to
// catch typos; an existing file is the confirmation itself.
func readPassphrase(c *app.Container, willWrite bool) (string, error) {
	confirm := willWrite && !c.Store.Exists()
	return c.Prompter.ReadPassphrase(confirm)
}

// announceCreation prints a notice after the first successful save.
// fileExisted must be captured before the use case runs.
func announceCreation(c *app.Container, cmd *cobra.Command, fileExisted bool) {
	if !fileExisted && c.Store.Exists() {
		cmd.Printf("Created encrypted data file at %s\n", c.Store.Path())
	}
}
