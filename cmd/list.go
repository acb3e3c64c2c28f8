package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"docsleuth.dev/pkg/docsleuth/internal/config"
	"docsleuth.dev/pkg/docsleuth/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and checkable definition counts",
		Long:  "List the source files the check command would inspect, with the number of checkable definitions in each.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("you must provide at least one source to list")
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, err := config.Resolve(config.Overrides{}, cwd)
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.CheckArgs{
				Roots:  parsePaths(args),
				Config: cfg,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
