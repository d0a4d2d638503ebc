package cli

import (
	"fmt"

	"github.com/gerunddev/repolens/logging"
	"github.com/gerunddev/repolens/ui/chart"
	"github.com/gerunddev/repolens/workspace"
	"github.com/spf13/cobra"
)

func newChartCmd(s *state) *cobra.Command {
	var (
		id  int
		out string
	)

	cmd := &cobra.Command{
		Use:   "chart <snapshot>",
		Short: "Export the chart of a history entry as SVG or PNG",
		Example: `  repolens chart history.yaml --id 3 -o sales.svg
  repolens chart history.json --id 3 -o sales.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := workspace.Load(args[0])
			if err != nil {
				return err
			}

			i := workspace.FindEntry(snap.History, id)
			if i < 0 {
				return fmt.Errorf("%w: %d", workspace.ErrEntryNotFound, id)
			}
			entry := &snap.History[i]
			if entry.Chart == nil {
				return fmt.Errorf("entry %d has no chart", id)
			}

			if out == "" {
				out = fmt.Sprintf("chart-%d.svg", id)
			}

			done := logging.Op("export_chart", "id", id, "path", out)
			err = chart.Save(out, chart.FromSpec(entry.Chart))
			done(err)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "history entry id")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, .svg or .png (default: chart-<id>.svg)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
