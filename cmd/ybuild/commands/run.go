package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ybuild/internal/app"
)

func (c *CLI) runTasks(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	export, _ := flags.GetString("export")
	name, _ := flags.GetString("name")
	testPort, _ := flags.GetString("testport")
	testFiles, _ := flags.GetString("testfiles")
	regenerator, _ := flags.GetString("regenerator")
	examplesPort, _ := flags.GetString("examplesport")
	noCache, _ := flags.GetBool("no-cache")
	jobs, _ := flags.GetInt("jobs")
	outputMode, _ := flags.GetString("output-mode")
	ci, _ := flags.GetBool("ci")

	// If --ci is set, override output-mode to "linear"
	if ci {
		outputMode = "linear"
	}

	return c.app.Run(cmd.Context(), c.cwd, args, app.RunOptions{
		Flags: app.Flags{
			Export:       export,
			Name:         name,
			TestPort:     testPort,
			TestFiles:    testFiles,
			Regenerator:  regenerator,
			ExamplesPort: examplesPort,
		},
		NoCache:    noCache,
		Jobs:       jobs,
		OutputMode: outputMode,
	})
}
