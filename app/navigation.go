package app

import "github.com/gerunddev/repolens/workspace"

// Filter selects which history entries are listed.
type Filter struct {
	// Repository and Branch match exactly when non-empty. An entry with
	// no branch counts as the default branch.
	Repository   string
	Branch       string
	ShowArchived bool
}

// Match reports whether e passes the filter.
func (f Filter) Match(e *workspace.HistoryEntry) bool {
	if e.Archived && !f.ShowArchived {
		return false
	}
	if f.Repository != "" && e.Repository != f.Repository {
		return false
	}
	if f.Branch != "" {
		branch := e.Branch
		if branch == "" {
			branch = workspace.DefaultBranch
		}
		if branch != f.Branch {
			return false
		}
	}
	return true
}

// Visible returns copies of the entries passing f, in input order.
func (h *History) Visible(f Filter) []workspace.HistoryEntry {
	var out []workspace.HistoryEntry
	for i := range h.entries {
		if f.Match(&h.entries[i]) {
			out = append(out, h.entries[i])
		}
	}
	return out
}

// Neighbor returns the ID of the visible entry delta steps away from id.
// Movement stops at either end. The second result is false when id is
// not visible or there is nothing to move to.
func (h *History) Neighbor(id int, delta int, f Filter) (int, bool) {
	visible := h.Visible(f)
	i := workspace.FindEntry(visible, id)
	if i < 0 || delta == 0 {
		return 0, false
	}
	j := i + delta
	if j < 0 {
		j = 0
	}
	if j >= len(visible) {
		j = len(visible) - 1
	}
	if j == i {
		return 0, false
	}
	return visible[j].ID, true
}

// Latest returns the ID of the last visible entry.
func (h *History) Latest(f Filter) (int, bool) {
	visible := h.Visible(f)
	if len(visible) == 0 {
		return 0, false
	}
	return visible[len(visible)-1].ID, true
}
