package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/runoshun/ttt/internal/app"
	"github.com/runoshun/ttt/internal/domain"
	"github.com/runoshun/ttt/internal/tui"
	"github.com/runoshun/ttt/internal/usecase"
)

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ID        string
		Name      string
		CreatedAt string
		ClosedAt  string
		Segments  []string
		Index     int
	}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a task's fields and segments",
		Long: `Edit a task selected by --id or --index (1-based creation order).
Timestamps are RFC 3339 or "now"; "open" clears an end time. With no
change flags on a terminal, an interactive form opens instead.

Examples:
  ttt edit --index 2 --name "code review"
  ttt edit --id 4f9c... --closed-at now
  ttt edit --index 1 --segment-edit "1,2025-06-02T09:00:00Z,2025-06-02T09:45:00Z"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}

			in := usecase.EditTaskInput{
				Passphrase:   pass,
				TaskID:       opts.ID,
				Index:        opts.Index,
				SegmentEdits: opts.Segments,
			}
			if cmd.Flags().Changed("name") {
				in.Name = &opts.Name
			}
			if cmd.Flags().Changed("created-at") {
				in.CreatedAt = &opts.CreatedAt
			}
			if cmd.Flags().Changed("closed-at") {
				in.ClosedAt = &opts.ClosedAt
			}

			hasChanges := in.Name != nil || in.CreatedAt != nil || in.ClosedAt != nil || len(in.SegmentEdits) > 0
			if !hasChanges {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("nothing to edit; pass change flags or run on a terminal")
				}
				return runInteractiveEdit(cmd, c, in)
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			cmd.Printf("Edited: %s\n", out.Task.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "task id")
	cmd.Flags().IntVar(&opts.Index, "index", 0, "task position from ttt list (1-based)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "new task name")
	cmd.Flags().StringVar(&opts.CreatedAt, "created-at", "", "new creation time (RFC 3339 or \"now\")")
	cmd.Flags().StringVar(&opts.ClosedAt, "closed-at", "", "new close time (RFC 3339, \"now\" or \"open\")")
	cmd.Flags().StringArrayVar(&opts.Segments, "segment-edit", nil, "segment edit as INDEX,START,END (repeatable)")
	return cmd
}

// runInteractiveEdit drives the picker and form front-end. It produces
// the same edit input the flags would, so the two paths share all
// validation.
func runInteractiveEdit(cmd *cobra.Command, c *app.Container, in usecase.EditTaskInput) error {
	if in.TaskID == "" && in.Index == 0 {
		id, err := pickTask(cmd, c, in.Passphrase)
		if err != nil || id == "" {
			return err
		}
		in.TaskID = id
	}

	// Fetch a snapshot without changes to prefill the form.
	snapshot, err := c.EditTaskUseCase().Execute(cmd.Context(), in)
	if err != nil {
		return err
	}

	fields := editFormFields(snapshot.Task)
	changes, ok, err := tui.RunEditForm(fmt.Sprintf("Edit task: %s", snapshot.Task.Name), fields)
	if err != nil {
		return err
	}
	if !ok || len(changes) == 0 {
		cmd.Println("No changes.")
		return nil
	}

	applyFormChanges(&in, snapshot.Task, changes)
	out, err := c.EditTaskUseCase().Execute(cmd.Context(), in)
	if err != nil {
		return err
	}
	cmd.Printf("Edited: %s\n", out.Task.Name)
	return nil
}

func pickTask(cmd *cobra.Command, c *app.Container, pass string) (string, error) {
	list, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
		Passphrase: pass,
		Window:     domain.WindowAll,
	})
	if err != nil {
		return "", err
	}
	if len(list.Entries) == 0 {
		return "", domain.ErrTaskNotFound
	}

	items := make([]tui.PickerItem, 0, len(list.Entries))
	for _, e := range list.Entries {
		items = append(items, tui.PickerItem{
			Label:  e.Name,
			Detail: fmt.Sprintf("[%s] total %s", e.Status, formatDuration(e.Total)),
			Value:  e.ID,
		})
	}
	id, ok, err := tui.RunPicker("Select a task to edit", items)
	if err != nil || !ok {
		return "", err
	}
	return id, nil
}

// editFormFields builds the form from the task snapshot.
func editFormFields(task domain.Task) []tui.FormField {
	fields := []tui.FormField{
		{Key: "name", Label: "Name", Initial: task.Name},
		{Key: "created_at", Label: "Created", Initial: task.CreatedAt.Format(time.RFC3339)},
		{Key: "closed_at", Label: "Closed", Initial: optionalTime(task.ClosedAt)},
	}
	for i, seg := range task.Segments {
		fields = append(fields,
			tui.FormField{
				Key:     fmt.Sprintf("segment.%d.start", i+1),
				Label:   fmt.Sprintf("Seg %d start", i+1),
				Initial: seg.StartAt.Format(time.RFC3339),
			},
			tui.FormField{
				Key:     fmt.Sprintf("segment.%d.end", i+1),
				Label:   fmt.Sprintf("Seg %d end", i+1),
				Initial: optionalTime(seg.EndAt),
			},
		)
	}
	return fields
}

// applyFormChanges maps edited form fields onto the edit input. A
// segment edit always carries both bounds, taking the unchanged one
// from the snapshot.
func applyFormChanges(in *usecase.EditTaskInput, task domain.Task, changes tui.FormResult) {
	if v, ok := changes["name"]; ok {
		in.Name = &v
	}
	if v, ok := changes["created_at"]; ok {
		in.CreatedAt = &v
	}
	if v, ok := changes["closed_at"]; ok {
		in.ClosedAt = &v
	}
	for i, seg := range task.Segments {
		startKey := fmt.Sprintf("segment.%d.start", i+1)
		endKey := fmt.Sprintf("segment.%d.end", i+1)
		start, startChanged := changes[startKey]
		end, endChanged := changes[endKey]
		if !startChanged && !endChanged {
			continue
		}
		if !startChanged {
			start = seg.StartAt.Format(time.RFC3339)
		}
		if !endChanged {
			end = optionalTime(seg.EndAt)
		}
		in.SegmentEdits = append(in.SegmentEdits, fmt.Sprintf("%d,%s,%s", i+1, start, end))
	}
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format(time.RFC3339)
}
