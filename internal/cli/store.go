package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/runoshun/ttt/internal/app"
	"github.com/runoshun/ttt/internal/tui"
	"github.com/runoshun/ttt/internal/usecase"
)

// newRekeyCommand creates the rekey command.
func newRekeyCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rekey",
		Short: "Change the passphrase",
		Long: `Re-encrypt the data file under a new passphrase. The previous
file is kept in the backup rotation, still readable with the old
passphrase.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPass, err := c.Prompter.ReadPassphrase(false)
			if err != nil {
				return err
			}
			cmd.PrintErrln("Enter the new passphrase.")
			newPass, err := c.Prompter.ReadPassphrase(true)
			if err != nil {
				return err
			}

			out, err := c.RekeyUseCase().Execute(cmd.Context(), usecase.RekeyInput{
				OldPassphrase: oldPass,
				NewPassphrase: newPass,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Rekeyed %s\n", out.Path)
			return nil
		},
	}
}

// newRestoreCommand creates the restore command.
func newRestoreCommand(c *app.Container) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "restore [backup-file]",
		Short: "Restore the data file from a backup",
		Long: `Replace the data file with a backup copy. The backup must
decrypt and validate with the passphrase before anything is
overwritten. Without an argument the newest usable backup is taken,
or a picker opens on a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listBackups(cmd, c)
			}

			pass, err := readPassphrase(c, false)
			if err != nil {
				return err
			}

			in := usecase.RestoreInput{Passphrase: pass}
			if len(args) == 1 {
				in.BackupPath = args[0]
			} else if term.IsTerminal(int(os.Stdin.Fd())) {
				path, err := pickBackup(cmd, c)
				if err != nil {
					return err
				}
				if path == "" {
					cmd.Println("No backup selected.")
					return nil
				}
				in.BackupPath = path
			}

			out, err := c.RestoreUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			cmd.Printf("Restored %s (%d tasks)\n", out.BackupPath, out.TaskCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list available backups and exit")
	return cmd
}

func listBackups(cmd *cobra.Command, c *app.Container) error {
	backups, err := c.RestoreUseCase().ListBackups(cmd.Context())
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		cmd.Println("No backups.")
		return nil
	}
	for _, b := range backups {
		cmd.Printf("%s  %s  %d bytes\n", b.ModTime.Local().Format("2006-01-02 15:04:05"), b.Path, b.Size)
	}
	return nil
}

func pickBackup(cmd *cobra.Command, c *app.Container) (string, error) {
	backups, err := c.RestoreUseCase().ListBackups(cmd.Context())
	if err != nil || len(backups) == 0 {
		return "", err
	}

	items := make([]tui.PickerItem, 0, len(backups))
	for _, b := range backups {
		items = append(items, tui.PickerItem{
			Label:  b.ModTime.Local().Format("2006-01-02 15:04:05"),
			Detail: fmt.Sprintf("%s (%d bytes)", b.Path, b.Size),
			Value:  b.Path,
		})
	}
	path, ok, err := tui.RunPicker("Select a backup to restore", items)
	if err != nil || !ok {
		return "", err
	}
	return path, nil
}
