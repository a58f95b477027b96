package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/ttt/internal/app"
)

// newLocationCommand creates the location command. It only resolves
// paths, so no passphrase is asked.
func newLocationCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "location",
		Short: "Print the data file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(c.Store.Path())
			return nil
		},
	}
}

// newVersionCommand creates the version command.
func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ttt version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("ttt %s\n", version)
			return nil
		},
	}
}
