package sidebar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/filetree"
	"github.com/gerunddev/repolens/ui/panels"
	"github.com/gerunddev/repolens/workspace"
)

// FilesTitle is the file tree panel title.
const FilesTitle = "Files"

// filesPanel frames a filetree.Model.
type filesPanel struct {
	panels.BasePanel
	tree *filetree.Model
}

func newFilesPanel(tree []workspace.TreeNode) *filesPanel {
	return &filesPanel{
		BasePanel: panels.NewBasePanel(FilesTitle),
		tree:      filetree.NewModel(tree),
	}
}

func (p *filesPanel) setTree(tree []workspace.TreeNode) {
	p.tree.SetTree(tree)
}

func (p *filesPanel) SetFocused(focused bool) {
	p.BasePanel.SetFocused(focused)
	p.tree.SetFocused(focused)
}

func (p *filesPanel) SetSize(width, height int) {
	p.BasePanel.SetSize(width, height)
	p.tree.SetSize(p.ContentWidth(), p.ContentHeight())
}

func (p *filesPanel) Init() tea.Cmd {
	return nil
}

// Update expects mouse coordinates relative to the panel's top border.
func (p *filesPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		row, ok := p.ContentLine(mouse.Y, 0)
		if !ok {
			return p, nil
		}
		mouse.Y = row
		mouse.X--
		msg = mouse
	}
	_, cmd := p.tree.Update(msg)
	return p, cmd
}

func (p *filesPanel) View() string {
	return p.RenderFrame(p.tree.View())
}

// TreeModel exposes the file tree.
func (m *Model) TreeModel() *filetree.Model { return m.files.tree }

var _ panels.Panel = (*filesPanel)(nil)
