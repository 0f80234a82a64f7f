package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bake/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the build, test and package sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, _ := cmd.Flags().GetString("repo")
			toolVersion, _ := cmd.Flags().GetString("tool-version")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				RepoPath:    repo,
				ToolVersion: toolVersion,
				OutputMode:  outputMode,
			})
		},
	}
	cmd.Flags().StringP("repo", "r", "", "Path to the repository checkout (defaults to the current directory)")
	cmd.Flags().String("tool-version", "", "Orchestration tool version, overrides the descriptor")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}
