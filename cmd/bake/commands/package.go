package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/bake/internal/app"
)

func (c *CLI) newPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Assemble the package manifest from a staged install tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, _ := cmd.Flags().GetString("repo")
			staging, _ := cmd.Flags().GetString("staging")
			out, _ := cmd.Flags().GetString("out")

			manifest, err := c.app.Package(cmd.Context(), app.PackageOptions{
				RepoPath:   repo,
				StagingDir: staging,
				OutPath:    out,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "packaged %s %s-%d (%d file(s))\n",
				manifest.Name, manifest.Version, manifest.Iteration, len(manifest.Files))
			return nil
		},
	}
	cmd.Flags().StringP("repo", "r", "", "Path to the repository checkout (defaults to the current directory)")
	cmd.Flags().StringP("staging", "s", "", "Path to the staged install tree")
	cmd.Flags().String("out", "", "Manifest output path (defaults to manifest.yaml)")
	_ = cmd.MarkFlagRequired("staging")
	return cmd
}
