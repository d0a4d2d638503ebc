package interactive

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/gerunddev/repolens/logging"
	"github.com/gerunddev/repolens/ui/chart"
	"github.com/gerunddev/repolens/workspace"
	"github.com/mattn/go-runewidth"
)

// Action keys.
const (
	actionShow   = "show"
	actionCopy   = "copy"
	actionExport = "export"
	actionChart  = "chart"
)

const maxLabelWidth = 60

func perform(action string, e *workspace.HistoryEntry, opts Options) error {
	switch action {
	case actionShow:
		fmt.Fprint(opts.Out, workspace.RenderMarkdown(e))
		return nil

	case actionCopy:
		if err := opts.Clipboard(e.Question); err != nil {
			logging.Warn("clipboard write failed", "error", err)
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Fprintln(opts.Out, "Question copied to the clipboard")
		return nil

	case actionExport:
		done := logging.OpWithResult("export_entry", "id", e.ID)
		path, err := workspace.ExportEntry(e, opts.ExportDir)
		done(err, "path", path)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(opts.Out, "Wrote %s\n", path)
		return nil

	case actionChart:
		if e.Chart == nil {
			return fmt.Errorf("entry %d has no chart", e.ID)
		}
		path := filepath.Join(opts.ExportDir, fmt.Sprintf("chart-%d.svg", e.ID))
		if err := chart.Save(path, chart.FromSpec(e.Chart)); err != nil {
			return fmt.Errorf("save chart failed: %w", err)
		}
		fmt.Fprintf(opts.Out, "Wrote %s\n", path)
		return nil
	}

	return fmt.Errorf("unknown action %q", action)
}

func buildEntryOptions(entries []workspace.HistoryEntry) []huh.Option[int] {
	var options []huh.Option[int]
	for i := range entries {
		e := &entries[i]
		label := fmt.Sprintf("#%d %s", e.ID, runewidth.Truncate(e.DisplayTitle(), maxLabelWidth, "…"))
		if e.Repository != "" {
			branch := e.Branch
			if branch == "" {
				branch = workspace.DefaultBranch
			}
			label += fmt.Sprintf(" [%s ⎇ %s]", e.Repository, branch)
		}
		if e.Archived {
			label += " (archived)"
		}
		options = append(options, huh.NewOption(label, e.ID))
	}
	return options
}

func buildActionOptions(e *workspace.HistoryEntry) []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("Show - Print the conversation", actionShow),
		huh.NewOption("Copy - Put the question on the clipboard", actionCopy),
		huh.NewOption("Export - Write a Markdown transcript", actionExport),
	}
	if e.Chart != nil {
		options = append(options, huh.NewOption("Chart - Save the chart as SVG", actionChart))
	}
	return options
}
