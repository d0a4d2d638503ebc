package panels

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/messages"
	"github.com/gerunddev/repolens/workspace"
)

func TestBasePanel_ContentSize(t *testing.T) {
	p := NewBasePanel("t")
	p.SetSize(10, 5)
	if p.ContentWidth() != 8 || p.ContentHeight() != 3 {
		t.Errorf("content = %dx%d, want 8x3", p.ContentWidth(), p.ContentHeight())
	}

	p.SetSize(1, 1)
	if p.ContentWidth() != 0 || p.ContentHeight() != 0 {
		t.Errorf("content size must not go negative, got %dx%d", p.ContentWidth(), p.ContentHeight())
	}
}

func TestBasePanel_Cursor(t *testing.T) {
	tests := []struct {
		name  string
		start int
		move  func(p *BasePanel)
		want  int
	}{
		{"up at top stays", 0, func(p *BasePanel) { p.MoveCursor(-1, 3) }, 0},
		{"down", 0, func(p *BasePanel) { p.MoveCursor(1, 3) }, 1},
		{"down at bottom stays", 2, func(p *BasePanel) { p.MoveCursor(1, 3) }, 2},
		{"jump past end clamps", 0, func(p *BasePanel) { p.SetCursor(9, 5) }, 4},
		{"negative clamps", 2, func(p *BasePanel) { p.SetCursor(-3, 5) }, 0},
		{"shrink clamps", 2, func(p *BasePanel) { p.SetCursor(p.Cursor(), 1) }, 0},
		{"empty list", 2, func(p *BasePanel) { p.SetCursor(p.Cursor(), 0) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBasePanel("t")
			p.SetCursor(tt.start, 10)
			tt.move(&p)
			if p.Cursor() != tt.want {
				t.Errorf("cursor = %d, want %d", p.Cursor(), tt.want)
			}
		})
	}
}

func TestBasePanel_ContentLine(t *testing.T) {
	p := NewBasePanel("t")
	p.SetSize(20, 5)

	tests := []struct {
		y, offset int
		want      int
		wantOK    bool
	}{
		{0, 0, 0, false}, // top border
		{1, 0, 0, true},
		{3, 0, 2, true},
		{4, 0, 0, false}, // bottom border
		{1, 7, 7, true},
	}

	for _, tt := range tests {
		got, ok := p.ContentLine(tt.y, tt.offset)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ContentLine(%d, %d) = %d, %v; want %d, %v", tt.y, tt.offset, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestScrollIntoView(t *testing.T) {
	vp := viewport.New(10, 3)
	vp.SetContent(strings.Repeat("line\n", 20))

	ScrollIntoView(&vp, 10, 11)
	if vp.YOffset != 8 {
		t.Errorf("YOffset = %d, want 8 after scrolling down", vp.YOffset)
	}
	ScrollIntoView(&vp, 2, 3)
	if vp.YOffset != 2 {
		t.Errorf("YOffset = %d, want 2 after scrolling up", vp.YOffset)
	}
	ScrollIntoView(&vp, 5, 12)
	if vp.YOffset != 5 {
		t.Errorf("YOffset = %d, want 5 for a range taller than the view", vp.YOffset)
	}
}

func TestAnswerPanel_Placeholder(t *testing.T) {
	a := NewAnswerPanel()
	a.SetSize(60, 10)

	view := a.View()
	if !strings.Contains(view, AnswerPlaceholder) {
		t.Errorf("empty panel should show placeholder, got:\n%s", view)
	}
	if _, ok := a.Chart(); ok {
		t.Error("empty panel has no chart")
	}
}

func TestAnswerPanel_Entry(t *testing.T) {
	a := NewAnswerPanel()
	a.SetSize(80, 60)

	e := &workspace.HistoryEntry{
		ID:         7,
		Question:   "Which handlers are slow?",
		Answer:     "The search handler.",
		Repository: "api",
		Chart: &workspace.ChartSpec{
			XKey: "name",
			YKey: "ms",
			Records: []workspace.ChartRecord{
				{"name": "search", "ms": 120},
			},
		},
	}
	a.SetEntry(e)
	e.Question = "mutated"

	view := a.View()
	for _, want := range []string{"Which handlers are slow?", "api", "main", "search", "Ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if a.Entry().Question != "Which handlers are slow?" {
		t.Error("SetEntry must copy the entry")
	}

	c, ok := a.Chart()
	if !ok || c.YKey != "ms" {
		t.Errorf("Chart() = %+v, %v", c, ok)
	}

	a.SetEntry(nil)
	if a.Entry() != nil || !strings.Contains(a.View(), AnswerPlaceholder) {
		t.Error("SetEntry(nil) should clear the panel")
	}
}

func TestAnswerPanel_ScrollTitle(t *testing.T) {
	a := NewAnswerPanel()
	a.SetSize(40, 6)
	a.SetEntry(&workspace.HistoryEntry{
		ID:       1,
		Question: "q",
		Answer:   strings.Repeat("line\n\n", 30),
	})

	if !strings.Contains(a.View(), "(0%)") {
		t.Errorf("overflowing content should show scroll percentage:\n%s", a.View())
	}
}

func TestReposPanel_Select(t *testing.T) {
	p := NewReposPanel()
	p.SetSize(30, 6)
	p.SetRepos([]RepoItem{{Name: "api", Count: 2}, {Name: "web", Count: 1}}, 3, "")
	p.SetFocused(true)

	view := p.View()
	for _, want := range []string{AllRepositories, "[3]", "api", "[2]", "web", "[1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a filter command")
	}
	msg, ok := cmd().(messages.RepoFilterMsg)
	if !ok || msg.Repository != "api" {
		t.Errorf("got %#v, want RepoFilterMsg{api}", msg)
	}
	if p.Active() != "api" {
		t.Errorf("Active() = %q, want api", p.Active())
	}

	// row 0 of content is y=1 inside the border
	_, cmd = p.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, Y: 1})
	if cmd == nil {
		t.Fatal("click should emit a filter command")
	}
	if msg := cmd().(messages.RepoFilterMsg); msg.Repository != "" {
		t.Errorf("clicking the first row should clear the filter, got %q", msg.Repository)
	}
}

func TestReposPanel_UnfocusedIgnoresKeys(t *testing.T) {
	p := NewReposPanel()
	p.SetSize(30, 6)
	p.SetRepos([]RepoItem{{Name: "api", Count: 1}}, 1, "")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("unfocused panel should ignore keys")
	}
}

func TestReposPanel_ClampOnShrink(t *testing.T) {
	p := NewReposPanel()
	p.SetSize(30, 6)
	p.SetRepos([]RepoItem{{Name: "a", Count: 1}, {Name: "b", Count: 1}}, 2, "")
	p.SetCursor(2, 3)
	p.SetRepos(nil, 0, "")
	if p.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 after shrinking", p.Cursor())
	}
}
