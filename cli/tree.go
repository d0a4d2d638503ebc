package cli

import (
	"fmt"

	"github.com/gerunddev/repolens/workspace"
	"github.com/spf13/cobra"
)

func newTreeCmd(_ *state) *cobra.Command {
	var opts workspace.DirOptions

	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print a directory tree as snapshot JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			tree, err := workspace.TreeFromDir(dir, opts)
			if err != nil {
				return err
			}
			data, err := workspace.EncodeTree(tree)
			if err != nil {
				return fmt.Errorf("encode tree: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.MaxDepth, "depth", 0, "maximum depth (0 for unlimited)")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "names to skip in addition to .git, node_modules, vendor")
	cmd.Flags().BoolVar(&opts.ShowHidden, "hidden", false, "include dotfiles")

	return cmd
}
