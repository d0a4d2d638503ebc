// Package app holds the owner-side logic behind the sidebar: the history
// store that actions mutate and the filters that decide what is shown.
package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gerunddev/repolens/workspace"
)

// History is the mutable conversation list owned by the application.
// All changes go through it so views only ever see copies.
type History struct {
	entries []workspace.HistoryEntry
}

// NewHistory copies entries into a store.
func NewHistory(entries []workspace.HistoryEntry) *History {
	return &History{entries: slices.Clone(entries)}
}

// Entries returns a copy of every entry in input order.
func (h *History) Entries() []workspace.HistoryEntry {
	return slices.Clone(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Get returns a copy of the entry with id.
func (h *History) Get(id int) (workspace.HistoryEntry, error) {
	i := workspace.FindEntry(h.entries, id)
	if i < 0 {
		return workspace.HistoryEntry{}, fmt.Errorf("history entry %d: %w", id, workspace.ErrEntryNotFound)
	}
	return h.entries[i], nil
}

func (h *History) find(id int) (*workspace.HistoryEntry, error) {
	i := workspace.FindEntry(h.entries, id)
	if i < 0 {
		return nil, fmt.Errorf("history entry %d: %w", id, workspace.ErrEntryNotFound)
	}
	return &h.entries[i], nil
}

// Edit replaces the question of an entry. The old answer no longer
// matches, so it is cleared along with any chart.
func (h *History) Edit(id int, question string) error {
	e, err := h.find(id)
	if err != nil {
		return err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("history entry %d: question must not be empty", id)
	}
	if question == e.Question {
		return nil
	}
	e.Question = question
	e.Answer = ""
	e.Chart = nil
	return nil
}

// Rename sets the display title. An empty title falls back to the
// question.
func (h *History) Rename(id int, title string) error {
	e, err := h.find(id)
	if err != nil {
		return err
	}
	e.Title = strings.TrimSpace(title)
	return nil
}

// ToggleArchive flips the archived flag and returns the new value.
func (h *History) ToggleArchive(id int) (bool, error) {
	e, err := h.find(id)
	if err != nil {
		return false, err
	}
	e.Archived = !e.Archived
	return e.Archived, nil
}

// Delete removes an entry.
func (h *History) Delete(id int) error {
	i := workspace.FindEntry(h.entries, id)
	if i < 0 {
		return fmt.Errorf("history entry %d: %w", id, workspace.ErrEntryNotFound)
	}
	h.entries = slices.Delete(h.entries, i, i+1)
	return nil
}

// Add appends an entry with the next free ID and returns it.
func (h *History) Add(e workspace.HistoryEntry) workspace.HistoryEntry {
	e.ID = workspace.NextID(h.entries)
	h.entries = append(h.entries, e)
	return e
}

// Repositories lists the distinct repository names, sorted.
func (h *History) Repositories() []string {
	seen := make(map[string]bool)
	var repos []string
	for _, e := range h.entries {
		if e.Repository != "" && !seen[e.Repository] {
			seen[e.Repository] = true
			repos = append(repos, e.Repository)
		}
	}
	slices.Sort(repos)
	return repos
}

// Branches lists the distinct branches used with repo, sorted. An empty
// repo matches every entry.
func (h *History) Branches(repo string) []string {
	seen := make(map[string]bool)
	var branches []string
	for _, e := range h.entries {
		if repo != "" && e.Repository != repo {
			continue
		}
		b := e.Branch
		if b == "" {
			b = workspace.DefaultBranch
		}
		if !seen[b] {
			seen[b] = true
			branches = append(branches, b)
		}
	}
	slices.Sort(branches)
	return branches
}
