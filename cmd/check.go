package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"docsleuth.dev/pkg/docsleuth/internal/config"
	"docsleuth.dev/pkg/docsleuth/internal/domain"
	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

const (
	ignoreErrorsFlagName    = "ignore-errors"
	ignorePathsFlagName     = "ignore-paths"
	ignoreHiddenFlagName    = "ignore-hidden"
	filenamePatternFlagName = "filename-pattern"
	verboseFlagName         = "verbose"
	outputFlagName          = "output"
)

const checkLongDescription = `Validate docstrings for the given files and directories.

Directories are walked recursively in lexical order; file names must match
the filename pattern (default: Python modules). Explicit file arguments are
always included, subject only to --ignore-paths.

The exit code is 1 when any violation survives suppression, 0 otherwise.`

var ignoreErrorsFlag string
var ignorePathsFlag string
var ignoreHiddenFlag bool
var filenamePatternFlag string
var verboseFlag int
var outputFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate docstrings",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("you must provide at least one source to validate")
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, err := config.Resolve(cliOverrides(cmd.Flags()), cwd)
			if err != nil {
				return err
			}

			result, err := workflow.Check(cmd.Context(), domain.CheckArgs{
				Roots:  parsePaths(args),
				Config: cfg,
				Output: m.Path(outputFlag),
			})
			if err != nil {
				return err
			}

			if result.Flagged > 0 {
				return ErrViolationsFound
			}

			return nil
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ignoreErrorsFlag, ignoreErrorsFlagName, "e", "", "comma-separated error codes to suppress everywhere")
	cmd.Flags().StringVarP(&ignorePathsFlag, ignorePathsFlagName, "p", "", "comma-separated files or directories to skip")
	cmd.Flags().BoolVar(&ignoreHiddenFlag, ignoreHiddenFlagName, false, "skip hidden objects (leading underscore, dunder methods)")
	cmd.Flags().StringVarP(&filenamePatternFlag, filenamePatternFlagName, "f", "", "regex the file name must fully match (default matches Python modules)")
	cmd.Flags().CountVarP(&verboseFlag, verboseFlagName, "v", "increase report detail (repeat up to -vv)")
	cmd.Flags().StringVarP(&outputFlag, outputFlagName, "o", "", "write the run report to this YAML file")
}

// cliOverrides builds the highest-priority configuration layer from the
// flags the user actually supplied; untouched flags never override lower
// layers.
func cliOverrides(flags *pflag.FlagSet) config.Overrides {
	var cli config.Overrides

	if flags.Changed(ignoreErrorsFlagName) {
		values := config.ParseList(ignoreErrorsFlag)
		cli.IgnoreErrors = &values
	}

	if flags.Changed(ignorePathsFlagName) {
		values := config.ParseList(ignorePathsFlag)
		cli.IgnorePaths = &values
	}

	if flags.Changed(ignoreHiddenFlagName) {
		value := ignoreHiddenFlag
		cli.IgnoreHidden = &value
	}

	if flags.Changed(filenamePatternFlagName) {
		value := filenamePatternFlag
		cli.FilenamePattern = &value
	}

	if flags.Changed(verboseFlagName) {
		value := verboseFlag
		cli.Verbose = &value
	}

	return cli
}
