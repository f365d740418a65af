package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.app.Tasks(c.cwd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, task := range tasks {
				deps := "-"
				if len(task.Dependencies) > 0 {
					deps = strings.Join(task.Dependencies, ", ")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", task.Name, task.Description, deps)
			}
			return w.Flush()
		},
	}
}
