// Package cmd provides the root command and CLI setup for docsleuth.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docsleuth.dev/pkg/docsleuth/internal/adapter"
	"docsleuth.dev/pkg/docsleuth/internal/controller"
	"docsleuth.dev/pkg/docsleuth/internal/domain"
	m "docsleuth.dev/pkg/docsleuth/internal/model"
	"docsleuth.dev/pkg/docsleuth/internal/oracle"
)

// ErrViolationsFound signals a completed run with surviving violations. The
// report has already been printed; Execute only maps it to a non-zero exit.
var ErrViolationsFound = errors.New("docstring violations found")

var fsAdapter adapter.SourceFSAdapter
var pythonAdapter adapter.PythonFileAdapter
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewSimpleUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	pythonAdapter = adapter.NewLocalPythonFileAdapter()
	reportStore = adapter.NewYAMLReportStore()
	workflow = domain.NewWorkflow(
		fsAdapter,
		pythonAdapter,
		reportStore,
		ui,
		oracle.NewNumpydocOracle(),
	)
}

const rootLongDescription = `Docsleuth validates the docstrings of Python modules, classes, functions,
and methods against numpydoc-style conventions and reports the violations.

Objects can opt out with in-source directives:
  # docsleuth: ignore              skip this object
  # docsleuth: ignore-all          skip this object and everything below it
  # docsleuth: ignore=GL08,ES01    suppress specific error codes

Configuration is read from the [docsleuth] section of setup.cfg and the
[tool.docsleuth] table of pyproject.toml in the working directory;
pyproject.toml wins over setup.cfg, and CLI flags win over both.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "docsleuth",
		Short:         "Python docstring linter",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrViolationsFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
