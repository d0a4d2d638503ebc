package ui

import (
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/app"
	"github.com/gerunddev/repolens/config"
	"github.com/gerunddev/repolens/logging"
	"github.com/gerunddev/repolens/ui/floating"
	"github.com/gerunddev/repolens/ui/messages"
	"github.com/gerunddev/repolens/ui/panels"
	"github.com/gerunddev/repolens/ui/sidebar"
	"github.com/gerunddev/repolens/ui/spinner"
	"github.com/gerunddev/repolens/workspace"
)

// Focus identifies the panel receiving keys.
type Focus int

const (
	FocusAnswer Focus = iota
	FocusRepos
	FocusFiles
	FocusHistory
	focusCount
)

// Screen regions used for mouse routing.
const (
	panelAnswer = iota
	panelRepos
	panelSidebar
)

const minMainWidth = 30

// PanelBound defines the screen coordinates of a panel for mouse detection
type PanelBound struct {
	X1, Y1, X2, Y2 int
	PanelIndex     int
}

// Options configures the application.
type Options struct {
	// SnapshotPath is loaded on start and on reload. Snapshot, when set, is
	// used directly instead.
	SnapshotPath string
	Snapshot     *workspace.Snapshot

	SidebarWidth int
	PageSize     int
	ExportDir    string

	// Clipboard receives copied text. Defaults to the system clipboard.
	Clipboard func(string) error
}

// App is the main application model. It owns the snapshot and is the
// sidebar's Actions implementation.
type App struct {
	opts Options

	history *app.History
	filter  app.Filter

	selectedID  int
	hasSelected bool

	// Panels
	sidebar     *sidebar.Model
	answer      *panels.AnswerPanel
	repos       *panels.ReposPanel
	sidebarOpen bool

	// Floating windows
	help     *floating.HelpOverlay
	showHelp bool
	confirm  *floating.ConfirmOverlay
	deleteID int
	rename   *floating.TextInputOverlay
	renameID int
	info     *floating.InfoOverlay

	// State
	loading bool
	focus   Focus
	keys    KeyMap
	width   int
	height  int
	ready   bool

	// commands queued by action callbacks, flushed after the sidebar update
	cmds []tea.Cmd

	// Panel bounds for mouse coordinate mapping
	panelBounds []PanelBound
}

// NewApp creates a new application
func NewApp(opts Options) *App {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.SidebarWidth <= 0 {
		opts.SidebarWidth = config.DefaultSidebarWidth
	}

	a := &App{
		opts:        opts,
		history:     app.NewHistory(nil),
		answer:      panels.NewAnswerPanel(),
		repos:       panels.NewReposPanel(),
		sidebarOpen: true,
		keys:        DefaultKeyMap(),
	}
	a.sidebar = sidebar.New(workspace.RepoMeta{}, nil, nil, a)
	a.sidebar.SetPageSize(opts.PageSize)
	a.help = floating.NewHelpOverlay(a.keys, a.sidebar.Keys())

	switch {
	case opts.Snapshot != nil:
		a.setSnapshot(opts.Snapshot)
	case opts.SnapshotPath != "":
		a.loading = true
	}

	a.setFocus(FocusHistory)
	return a
}

func (a *App) Init() tea.Cmd {
	if a.loading {
		return a.loadSnapshot()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		a.ready = true
		return a, nil

	case messages.SnapshotLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			logging.Error("snapshot load failed", "path", msg.Path, "error", msg.Err)
			a.showError("Could not load snapshot", msg.Err)
			return a, nil
		}
		a.setSnapshot(msg.Snapshot)
		a.updateLayout()
		return a, nil

	case messages.SnapshotChangedMsg:
		if a.opts.SnapshotPath == "" || msg.Path != a.opts.SnapshotPath {
			return a, nil
		}
		logging.Debug("snapshot changed on disk", "path", msg.Path)
		return a, a.loadSnapshot()

	case messages.RepoFilterMsg:
		a.filter.Repository = msg.Repository
		a.syncHistory()
		return a, nil

	case messages.EntrySelectedMsg:
		a.selectEntry(msg.ID)
		return a, nil

	case messages.NoticeMsg:
		if msg.Err != nil {
			a.showError(msg.Title, msg.Err)
		} else {
			a.showInfo(msg.Title, msg.Body)
		}
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// blink and other internal messages
	if a.rename != nil {
		_, cmd := a.rename.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the info overlay
	if a.info != nil {
		a.info = nil
		return a, nil
	}

	if a.confirm != nil {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			ok := a.confirm.Confirmed()
			a.confirm = nil
			if ok {
				a.deleteEntry(a.deleteID)
			}
		case key.Matches(msg, a.keys.Escape):
			a.confirm = nil
		default:
			a.confirm.Update(msg)
		}
		return a, nil
	}

	if a.rename != nil {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			title := a.rename.Value()
			a.rename = nil
			a.renameEntry(a.renameID, title)
		case key.Matches(msg, a.keys.Escape):
			a.rename = nil
		default:
			_, cmd := a.rename.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.showHelp {
		switch {
		case key.Matches(msg, a.keys.Escape), key.Matches(msg, a.keys.Help):
			a.showHelp = false
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		default:
			a.help.Update(msg)
		}
		return a, nil
	}

	// Inline edit consumes every key
	if a.sidebarFocused() && a.sidebar.Capturing() {
		return a.updateSidebar(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		a.help.SetSize(a.width, a.contentHeight())
		return a, nil

	case key.Matches(msg, a.keys.GotoAnswer):
		a.setFocus(FocusAnswer)
		return a, nil

	case key.Matches(msg, a.keys.GotoRepos):
		a.setFocus(FocusRepos)
		return a, nil

	case key.Matches(msg, a.keys.GotoFiles):
		a.setFocus(FocusFiles)
		return a, nil

	case key.Matches(msg, a.keys.GotoHistory):
		a.setFocus(FocusHistory)
		return a, nil

	case key.Matches(msg, a.keys.NextFocus):
		a.cycleFocus(1)
		return a, nil

	case key.Matches(msg, a.keys.PrevFocus):
		a.cycleFocus(-1)
		return a, nil

	case key.Matches(msg, a.keys.ToggleSidebar) && !a.sidebarFocused():
		// the sidebar handles its own close key
		a.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.ToggleArchived):
		a.filter.ShowArchived = !a.filter.ShowArchived
		a.syncHistory()
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		if a.opts.SnapshotPath != "" {
			return a, a.loadSnapshot()
		}
		return a, nil

	case key.Matches(msg, a.keys.SaveChart):
		if cmd := a.saveChart(); cmd != nil {
			return a, cmd
		}

	case key.Matches(msg, a.keys.PrevEntry):
		a.stepEntry(-1)
		return a, nil

	case key.Matches(msg, a.keys.NextEntry):
		a.stepEntry(1)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case FocusAnswer:
		_, cmd = a.answer.Update(msg)
	case FocusRepos:
		_, cmd = a.repos.Update(msg)
	case FocusFiles, FocusHistory:
		return a.updateSidebar(msg)
	}
	return a, cmd
}

// updateSidebar forwards msg and flushes whatever the action callbacks queued.
func (a *App) updateSidebar(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.sidebar.Update(msg)
	a.syncFocusFromSidebar()
	cmds := append(a.cmds, cmd)
	a.cmds = nil
	return a, tea.Batch(cmds...)
}

func (a *App) queue(cmd tea.Cmd) {
	a.cmds = append(a.cmds, cmd)
}

func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	contentHeight := a.contentHeight()

	var main string
	if a.loading {
		indicator := spinner.New().WithLabel("Loading snapshot...").WithWidth(a.width)
		main = lipgloss.PlaceVertical(contentHeight, lipgloss.Center, indicator.View())
	} else {
		right := lipgloss.JoinVertical(lipgloss.Left,
			a.repos.View(),
			a.answer.View(),
		)
		if a.sidebarWidth() > 0 {
			main = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), right)
		} else {
			main = right
		}
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())

	switch {
	case a.info != nil:
		fullView = overlay(fullView, a.info.View())
	case a.confirm != nil:
		fullView = overlay(fullView, a.confirm.View())
	case a.rename != nil:
		fullView = overlay(fullView, a.rename.View())
	case a.showHelp:
		fullView = overlay(fullView, a.help.View())
	}

	return fullView
}

func (a *App) contentHeight() int {
	// Leave room for help bar
	return max(0, a.height-1)
}

func (a *App) sidebarWidth() int {
	if !a.sidebarOpen {
		return 0
	}
	return max(0, min(a.opts.SidebarWidth, a.width-minMainWidth))
}

func (a *App) sidebarFocused() bool {
	return a.focus == FocusFiles || a.focus == FocusHistory
}

func (a *App) setFocus(f Focus) {
	if (f == FocusFiles || f == FocusHistory) && !a.sidebarOpen {
		return
	}

	a.focus = f
	a.answer.SetFocused(f == FocusAnswer)
	a.repos.SetFocused(f == FocusRepos)
	switch f {
	case FocusFiles:
		a.sidebar.SetFocus(sidebar.SectionFiles)
	case FocusHistory:
		a.sidebar.SetFocus(sidebar.SectionHistory)
	default:
		a.sidebar.SetFocus(sidebar.SectionNone)
	}
}

func (a *App) cycleFocus(delta int) {
	f := a.focus
	for range focusCount {
		f = (f + Focus(delta) + focusCount) % focusCount
		if a.sidebarOpen || (f != FocusFiles && f != FocusHistory) {
			a.setFocus(f)
			return
		}
	}
}

// syncFocusFromSidebar adopts the section the sidebar focused itself, e.g.
// after a click.
func (a *App) syncFocusFromSidebar() {
	switch a.sidebar.Focus() {
	case sidebar.SectionFiles:
		a.setFocus(FocusFiles)
	case sidebar.SectionHistory:
		a.setFocus(FocusHistory)
	}
}

func (a *App) updateLayout() {
	contentHeight := a.contentHeight()
	sidebarWidth := a.sidebarWidth()
	mainWidth := max(0, a.width-sidebarWidth)

	// one row per repository plus "all", inside a border
	reposHeight := min(len(a.history.Repositories())+3, max(3, contentHeight/3))
	answerHeight := max(0, contentHeight-reposHeight)

	a.sidebar.SetSize(sidebarWidth, contentHeight)
	a.repos.SetSize(mainWidth, reposHeight)
	a.answer.SetSize(mainWidth, answerHeight)

	a.panelBounds = a.panelBounds[:0]
	if sidebarWidth > 0 {
		a.panelBounds = append(a.panelBounds,
			PanelBound{X1: 0, Y1: 0, X2: sidebarWidth - 1, Y2: contentHeight - 1, PanelIndex: panelSidebar})
	}
	a.panelBounds = append(a.panelBounds,
		PanelBound{X1: sidebarWidth, Y1: 0, X2: a.width - 1, Y2: reposHeight - 1, PanelIndex: panelRepos},
		PanelBound{X1: sidebarWidth, Y1: reposHeight, X2: a.width - 1, Y2: contentHeight - 1, PanelIndex: panelAnswer},
	)

	a.help.SetSize(a.width, contentHeight)
	if a.info != nil {
		a.info.SetSize(a.width, contentHeight)
	}
	if a.confirm != nil {
		a.confirm.SetSize(a.width, contentHeight)
	}
	if a.rename != nil {
		a.rename.SetSize(a.width, contentHeight)
	}
}

func (a *App) renderHelpBar() string {
	_, hasChart := a.answer.Chart()
	return RenderContextualHelpBar(HelpBarContext{
		Focus:        a.focus,
		Editing:      a.sidebar.Capturing(),
		MenuOpen:     a.sidebar.MenuOpen(),
		HasChart:     hasChart,
		ShowArchived: a.filter.ShowArchived,
	}, a.width)
}

// overlay draws the non-blank lines of top over background.
func overlay(background, top string) string {
	bgLines := strings.Split(background, "\n")
	for i, line := range strings.Split(top, "\n") {
		if i < len(bgLines) && strings.TrimSpace(line) != "" {
			bgLines[i] = line
		}
	}
	return strings.Join(bgLines, "\n")
}

// handleMouse processes mouse events for panel focus and interaction
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	leftPress := msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress

	if a.info != nil {
		if leftPress {
			a.info = nil
		}
		return a, nil
	}
	if a.confirm != nil || a.rename != nil {
		return a, nil
	}
	if a.showHelp {
		if leftPress {
			a.showHelp = false
			return a, nil
		}
		_, cmd := a.help.Update(msg)
		return a, cmd
	}

	panelIndex := a.panelAtPoint(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			switch panelIndex {
			case panelAnswer:
				a.setFocus(FocusAnswer)
			case panelRepos:
				a.setFocus(FocusRepos)
			}
			return a.forwardMouseToPanel(panelIndex, msg)
		}

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		return a.forwardMouseToPanel(panelIndex, msg)
	}

	return a, nil
}

// panelAtPoint returns the panel index at the given screen coordinates
func (a *App) panelAtPoint(x, y int) int {
	for _, bound := range a.panelBounds {
		if x >= bound.X1 && x <= bound.X2 && y >= bound.Y1 && y <= bound.Y2 {
			return bound.PanelIndex
		}
	}
	return -1
}

// forwardMouseToPanel forwards a mouse event to the appropriate panel
func (a *App) forwardMouseToPanel(panelIndex int, msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	for _, bound := range a.panelBounds {
		if bound.PanelIndex == panelIndex {
			msg.Y -= bound.Y1
			msg.X -= bound.X1
			break
		}
	}

	var cmd tea.Cmd
	switch panelIndex {
	case panelAnswer:
		_, cmd = a.answer.Update(msg)
	case panelRepos:
		_, cmd = a.repos.Update(msg)
	case panelSidebar:
		return a.updateSidebar(msg)
	}
	return a, cmd
}

func (a *App) setSnapshot(snap *workspace.Snapshot) {
	a.history = app.NewHistory(snap.History)
	a.sidebar.SetRepo(snap.Repo)
	a.sidebar.SetTree(snap.Tree)

	if a.filter.Repository != "" && !slices.Contains(a.history.Repositories(), a.filter.Repository) {
		a.filter.Repository = ""
	}
	a.syncHistory()

	logging.Info("snapshot ready",
		"repo", snap.Repo.Name,
		"nodes", workspace.CountNodes(snap.Tree),
		"history", len(snap.History))
}

// syncHistory pushes the filtered history to the views.
func (a *App) syncHistory() {
	a.sidebar.SetHistory(a.history.Visible(a.filter))
	a.repos.SetRepos(a.repoItems())

	if !a.hasSelected {
		return
	}
	e, err := a.history.Get(a.selectedID)
	if err != nil || !a.filter.Match(&e) {
		a.clearSelection()
		return
	}
	a.answer.SetEntry(&e)
}

func (a *App) repoItems() ([]panels.RepoItem, int, string) {
	visible := a.history.Visible(app.Filter{ShowArchived: a.filter.ShowArchived})
	counts := make(map[string]int)
	for _, e := range visible {
		counts[e.Repository]++
	}

	var items []panels.RepoItem
	for _, name := range a.history.Repositories() {
		if counts[name] > 0 {
			items = append(items, panels.RepoItem{Name: name, Count: counts[name]})
		}
	}
	return items, len(visible), a.filter.Repository
}

func (a *App) selectEntry(id int) {
	e, err := a.history.Get(id)
	if err != nil {
		logging.Warn("select unknown entry", "id", id)
		return
	}
	a.selectedID = id
	a.hasSelected = true
	a.answer.SetEntry(&e)
}

func (a *App) clearSelection() {
	a.selectedID = 0
	a.hasSelected = false
	a.answer.SetEntry(nil)
}

// stepEntry shows the visible entry delta steps from the current one.
func (a *App) stepEntry(delta int) {
	if !a.hasSelected {
		if id, ok := a.history.Latest(a.filter); ok {
			a.selectEntry(id)
		}
		return
	}
	if id, ok := a.history.Neighbor(a.selectedID, delta, a.filter); ok {
		a.selectEntry(id)
	}
}

func (a *App) showInfo(title, body string) {
	a.info = floating.NewInfoOverlay(title, body)
	a.info.SetSize(a.width, a.contentHeight())
}

func (a *App) showError(title string, err error) {
	a.info = floating.NewErrorOverlay(title, err)
	a.info.SetSize(a.width, a.contentHeight())
}

// Focus returns the focused panel.
func (a *App) Focus() Focus { return a.focus }

// SidebarOpen reports whether the sidebar is shown.
func (a *App) SidebarOpen() bool { return a.sidebarOpen }

// Selected returns the ID of the entry shown in the answer panel.
func (a *App) Selected() (int, bool) { return a.selectedID, a.hasSelected }

// History returns the owned history store.
func (a *App) History() *app.History { return a.history }
