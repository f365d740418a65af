// Package commands implements the CLI commands for the ybuild tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ybuild/internal/app"
	"go.trai.ch/ybuild/internal/build"
	"go.trai.ch/ybuild/internal/core/domain"
)

// CLI represents the command line interface for ybuild.
type CLI struct {
	app     Application
	cwd     string
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, cwd string, targetNames []string, opts app.RunOptions) error
	Tasks(cwd string) ([]app.TaskInfo, error)
	Clean(ctx context.Context, cwd string, opts app.CleanOptions) error
}

// New creates a new CLI instance operating on the project containing cwd.
func New(a Application, cwd string) *CLI {
	c := &CLI{
		app: a,
		cwd: cwd,
	}

	rootCmd := &cobra.Command{
		Use:   "ybuild [tasks...]",
		Short: "Build, test and release y-webrtc",
		Long: "Runs the named tasks and their prerequisites. Without arguments the\n" +
			"default task runs the specs once.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runTasks,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	defaults := domain.DefaultOptions()
	flags := rootCmd.Flags()
	flags.String("export", string(defaults.Export),
		"Module format of the deploy bundle: amd, amdStrict, common, commonStrict, ignore, system, umd, umdStrict")
	flags.String("name", defaults.Name, "File name of the bundle")
	flags.String("testport", defaults.TestPort, "Port of the browser spec server")
	flags.String("testfiles", defaults.TestFiles, "Glob of the sources built one by one for the specs")
	flags.String("regenerator", "",
		"Prepend the polyfills to the spec files (default: true for Node.js older than 0.12). "+
			"Generators are not lowered; async functions are always lowered for the es2015 target")
	flags.String("examplesport", defaults.ExamplesPort, "Port of the examples server")
	flags.BoolP("no-cache", "n", false, "Bypass the build cache and force execution")
	flags.IntP("jobs", "j", domain.DefaultJobs, "Number of tasks to run in parallel")
	flags.StringP("output-mode", "o", "auto", "Output mode: auto or linear")
	flags.Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newTasksCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
