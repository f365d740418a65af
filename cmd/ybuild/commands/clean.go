package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ybuild/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the build cache and test artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			name, _ := cmd.Flags().GetString("name")

			return c.app.Clean(cmd.Context(), c.cwd, app.CleanOptions{
				All:  all,
				Name: name,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove the build directory and the test bundle")
	cmd.Flags().String("name", "", "File name of the test bundle (default: y-webrtc.js)")

	return cmd
}
