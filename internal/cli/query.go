package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/runoshun/ttt/internal/app"
	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/usecase"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var today, week bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their totals",
		Long: `List tasks in creation order with the time spent on each. With
--today or --week only the time inside that window counts, and tasks
with no time in the window are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if today && week {
				return errors.New("--today and --week are mutually exclusive")
			}
			window := domain.WindowAll
			if today {
				window = domain.WindowToday
			}
			if week {
				window = domain.WindowWeek
			}

			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Passphrase: pass,
				Window:     window,
			})
			if err != nil {
				return err
			}

			if out.Header != "" {
				cmd.Println(out.Header)
			}
			if len(out.Entries) == 0 {
				cmd.Println("No matching tasks.")
				return nil
			}
			for i, e := range out.Entries {
				cmd.Printf("%3d) [%s] %s (%s) total %s\n", i+1, e.Status, e.Name, shortID(e.ID), formatDuration(e.Total))
			}
			cmd.Printf("Total: %s\n", formatDuration(out.Total))
			return nil
		},
	}

	cmd.Flags().BoolVar(&today, "today", false, "count only time spent today")
	cmd.Flags().BoolVar(&week, "week", false, "count only time spent this week")
	return cmd
}

// newReportCommand creates the report command.
func newReportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show today's work segments",
		Long: `Show one line per work segment that ended today (or is still
running), newest first, with the day's total.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}
			out, err := c.ReportUseCase().Execute(cmd.Context(), usecase.ReportInput{Passphrase: pass})
			if err != nil {
				return err
			}

			cmd.Println(out.Date.Format("2006-01-02"))
			if len(out.Entries) == 0 {
				cmd.Println("No entries for today.")
				return nil
			}
			for _, e := range out.Entries {
				end := "now"
				if !e.Open {
					end = formatClock(e.EndAt)
				}
				cmd.Printf("%s - %s - %s (%s)\n", formatClock(e.StartAt), end, e.TaskName, formatDuration(e.Duration))
			}
			cmd.Printf("Total: %s\n", formatDuration(out.Total))
			return nil
		},
	}
}

// shortID truncates a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
