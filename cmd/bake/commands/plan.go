package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/bake/internal/app"
	"go.trai.ch/bake/internal/core/domain"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the task sequence without executing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, _ := cmd.Flags().GetString("repo")
			platform, _ := cmd.Flags().GetString("platform")
			toolVersion, _ := cmd.Flags().GetString("tool-version")

			plan, err := c.app.Plan(cmd.Context(), app.PlanOptions{
				RepoPath:    repo,
				Platform:    platform,
				ToolVersion: toolVersion,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, renderPlan(plan))
			return nil
		},
	}
	cmd.Flags().StringP("repo", "r", "", "Path to the repository checkout (defaults to the current directory)")
	cmd.Flags().StringP("platform", "p", "auto", "Target platform: auto, posix, or windows")
	cmd.Flags().String("tool-version", "", "Orchestration tool version, overrides the descriptor")
	return cmd
}

// renderPlan formats the plan deterministically, one numbered task per line
// with its command and any task-level environment overrides.
func renderPlan(plan []domain.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan: %d task(s)\n", len(plan))
	for i, task := range plan {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, task.Name, strings.Join(task.Command, " "))
		if task.WorkingDir != "" {
			fmt.Fprintf(&b, "   cwd %s\n", task.WorkingDir)
		}

		keys := make([]string, 0, len(task.Environment))
		for key := range task.Environment {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "   env %s=%s\n", key, task.Environment[key])
		}
	}

	return b.String()
}
