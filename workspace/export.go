package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportFileName returns the file name used when exporting an entry.
func ExportFileName(id int) string {
	return fmt.Sprintf("history-%d.md", id)
}

// RenderMarkdown renders an entry as a Markdown transcript.
func RenderMarkdown(e *HistoryEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.DisplayTitle())
	if e.Repository != "" {
		branch := e.Branch
		if branch == "" {
			branch = DefaultBranch
		}
		fmt.Fprintf(&b, "_%s @ %s_\n\n", e.Repository, branch)
	}
	if !e.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_Asked %s_\n\n", e.CreatedAt.Format("2006-01-02 15:04"))
	}

	b.WriteString("## Question\n\n")
	b.WriteString(strings.TrimSpace(e.Question))
	b.WriteString("\n\n## Answer\n\n")
	if answer := strings.TrimSpace(e.Answer); answer != "" {
		b.WriteString(answer)
	} else {
		b.WriteString("_No answer recorded._")
	}
	b.WriteString("\n")

	if e.Chart != nil && len(e.Chart.Records) > 0 {
		b.WriteString("\n## Data\n\n")
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", e.Chart.XKey, e.Chart.YKey)
		for _, rec := range e.Chart.Records {
			fmt.Fprintf(&b, "| %v | %v |\n", valueOrBlank(rec[e.Chart.XKey]), valueOrBlank(rec[e.Chart.YKey]))
		}
	}

	return b.String()
}

func valueOrBlank(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// ExportEntry writes the entry as Markdown into dir and returns the path.
func ExportEntry(e *HistoryEntry, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(e.ID))
	if err := os.WriteFile(path, []byte(RenderMarkdown(e)), 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", path, err)
	}
	return path, nil
}
