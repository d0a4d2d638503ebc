package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/logging"
	"github.com/gerunddev/repolens/ui/chart"
	"github.com/gerunddev/repolens/ui/floating"
	"github.com/gerunddev/repolens/ui/messages"
	"github.com/gerunddev/repolens/ui/sidebar"
	"github.com/gerunddev/repolens/workspace"
	"github.com/mattn/go-runewidth"
)

// Toggle hides or shows the sidebar.
func (a *App) Toggle() {
	a.sidebarOpen = !a.sidebarOpen
	if !a.sidebarOpen && a.sidebarFocused() {
		a.setFocus(FocusAnswer)
	}
	logging.Debug("sidebar toggled", "open", a.sidebarOpen)
	a.updateLayout()
}

// Copy puts text on the clipboard.
func (a *App) Copy(text string) {
	write := a.opts.Clipboard
	a.queue(func() tea.Msg {
		if err := write(text); err != nil {
			logging.Warn("clipboard write failed", "error", err)
			return messages.NoticeMsg{Title: "Copy failed", Err: err}
		}
		return messages.NoticeMsg{Title: "Copied", Body: "Question copied to the clipboard."}
	})
}

// Edit replaces the question of an entry.
func (a *App) Edit(id int, text string) {
	done := logging.Op("edit_entry", "id", id)
	err := a.history.Edit(id, text)
	done(err)
	if err != nil {
		a.showError("Edit failed", err)
		return
	}
	a.syncHistory()
}

// Delete asks for confirmation before removing an entry.
func (a *App) Delete(id int) {
	e, err := a.history.Get(id)
	if err != nil {
		a.showError("Delete failed", err)
		return
	}
	a.deleteID = id
	title := runewidth.Truncate(e.DisplayTitle(), 40, "…")
	a.confirm = floating.NewConfirmOverlay("Delete", fmt.Sprintf("Delete %q?", title))
	a.confirm.SetSize(a.width, a.contentHeight())
}

// Rename opens the title dialog for an entry.
func (a *App) Rename(id int) {
	e, err := a.history.Get(id)
	if err != nil {
		a.showError("Rename failed", err)
		return
	}
	a.renameID = id
	a.rename = floating.NewTextInputOverlay("Rename", "conversation title", e.DisplayTitle())
	a.rename.SetSize(a.width, a.contentHeight())
	a.queue(a.rename.Init())
}

// Archive flips the archived flag of an entry.
func (a *App) Archive(id int) {
	archived, err := a.history.ToggleArchive(id)
	if err != nil {
		a.showError("Archive failed", err)
		return
	}
	logging.Info("entry archive toggled", "id", id, "archived", archived)
	a.syncHistory()
}

// Export writes an entry as Markdown into the export directory.
func (a *App) Export(id int) {
	e, err := a.history.Get(id)
	if err != nil {
		a.showError("Export failed", err)
		return
	}
	dir := a.opts.ExportDir
	a.queue(func() tea.Msg {
		done := logging.OpWithResult("export_entry", "id", e.ID, "dir", dir)
		path, err := workspace.ExportEntry(&e, dir)
		done(err, "path", path)
		if err != nil {
			return messages.NoticeMsg{Title: "Export failed", Err: err}
		}
		return messages.NoticeMsg{Title: "Exported", Body: "Wrote " + path}
	})
}

// Select shows an entry in the answer panel.
func (a *App) Select(id int) {
	a.selectEntry(id)
}

// NewChat clears the answer panel for a fresh question.
func (a *App) NewChat() {
	a.clearSelection()
	a.setFocus(FocusAnswer)
}

func (a *App) deleteEntry(id int) {
	done := logging.Op("delete_entry", "id", id)
	err := a.history.Delete(id)
	done(err)
	if err != nil {
		a.showError("Delete failed", err)
		return
	}
	a.syncHistory()
}

func (a *App) renameEntry(id int, title string) {
	if err := a.history.Rename(id, title); err != nil {
		a.showError("Rename failed", err)
		return
	}
	a.syncHistory()
}

// saveChart returns a command writing the shown chart as SVG, or nil when
// there is no chart.
func (a *App) saveChart() tea.Cmd {
	c, ok := a.answer.Chart()
	if !ok {
		return nil
	}
	path := filepath.Join(a.opts.ExportDir, fmt.Sprintf("chart-%d.svg", a.answer.Entry().ID))
	return func() tea.Msg {
		done := logging.Op("save_chart", "path", path)
		err := chart.Save(path, c)
		done(err)
		if err != nil {
			return messages.NoticeMsg{Title: "Save failed", Err: err}
		}
		return messages.NoticeMsg{Title: "Chart saved", Body: "Wrote " + path}
	}
}

func (a *App) loadSnapshot() tea.Cmd {
	path := a.opts.SnapshotPath
	return func() tea.Msg {
		done := logging.Op("load_snapshot", "path", path)
		snap, err := workspace.Load(path)
		done(err)
		return messages.SnapshotLoadedMsg{Path: path, Snapshot: snap, Err: err}
	}
}

var (
	_ sidebar.Actions     = (*App)(nil)
	_ sidebar.Selector    = (*App)(nil)
	_ sidebar.ChatStarter = (*App)(nil)
)
