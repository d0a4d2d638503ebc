package app

import (
	"errors"
	"testing"

	"github.com/gerunddev/repolens/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []workspace.HistoryEntry {
	return []workspace.HistoryEntry{
		{ID: 1, Question: "q1", Answer: "a1", Repository: "api", Branch: "main"},
		{ID: 2, Question: "q2", Answer: "a2", Repository: "api", Branch: "dev", Chart: &workspace.ChartSpec{XKey: "x", YKey: "y"}},
		{ID: 3, Question: "q3", Answer: "a3", Repository: "web", Archived: true},
		{ID: 4, Question: "q4", Answer: "a4", Repository: "web"},
	}
}

func ids(entries []workspace.HistoryEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestNewHistory_Copies(t *testing.T) {
	src := sample()
	h := NewHistory(src)
	require.NoError(t, h.Rename(1, "renamed"))
	assert.Empty(t, src[0].Title, "store must not alias the input slice")

	entries := h.Entries()
	entries[0].Question = "changed"
	got, err := h.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "q1", got.Question, "Entries must return a copy")
}

func TestEdit(t *testing.T) {
	h := NewHistory(sample())

	require.NoError(t, h.Edit(2, "  new question  "))
	got, _ := h.Get(2)
	assert.Equal(t, "new question", got.Question)
	assert.Empty(t, got.Answer)
	assert.Nil(t, got.Chart)

	require.NoError(t, h.Edit(1, "q1"))
	got, _ = h.Get(1)
	assert.Equal(t, "a1", got.Answer, "unchanged question keeps its answer")

	assert.Error(t, h.Edit(1, "   "))
	assert.ErrorIs(t, h.Edit(99, "x"), workspace.ErrEntryNotFound)
}

func TestRename(t *testing.T) {
	h := NewHistory(sample())
	require.NoError(t, h.Rename(1, "Routing"))
	got, _ := h.Get(1)
	assert.Equal(t, "Routing", got.DisplayTitle())

	require.NoError(t, h.Rename(1, ""))
	got, _ = h.Get(1)
	assert.Equal(t, "q1", got.DisplayTitle())
}

func TestToggleArchive(t *testing.T) {
	h := NewHistory(sample())

	archived, err := h.ToggleArchive(1)
	require.NoError(t, err)
	assert.True(t, archived)

	archived, err = h.ToggleArchive(1)
	require.NoError(t, err)
	assert.False(t, archived)

	_, err = h.ToggleArchive(42)
	assert.True(t, errors.Is(err, workspace.ErrEntryNotFound))
}

func TestDelete(t *testing.T) {
	h := NewHistory(sample())
	require.NoError(t, h.Delete(2))
	assert.Equal(t, []int{1, 3, 4}, ids(h.Entries()))
	assert.ErrorIs(t, h.Delete(2), workspace.ErrEntryNotFound)
}

func TestAdd(t *testing.T) {
	h := NewHistory(sample())
	e := h.Add(workspace.HistoryEntry{Question: "q5"})
	assert.Equal(t, 5, e.ID)
	assert.Equal(t, 5, h.Len())
}

func TestFilter(t *testing.T) {
	h := NewHistory(sample())

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"default hides archived", Filter{}, []int{1, 2, 4}},
		{"show archived", Filter{ShowArchived: true}, []int{1, 2, 3, 4}},
		{"by repository", Filter{Repository: "api"}, []int{1, 2}},
		{"by branch", Filter{Repository: "api", Branch: "dev"}, []int{2}},
		{"empty branch is main", Filter{Branch: "main"}, []int{1, 4}},
		{"no match", Filter{Repository: "cli"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(h.Visible(tt.filter))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNeighbor(t *testing.T) {
	h := NewHistory(sample())
	f := Filter{}

	next, ok := h.Neighbor(2, 1, f)
	require.True(t, ok)
	assert.Equal(t, 4, next, "archived entry 3 is skipped")

	prev, ok := h.Neighbor(2, -1, f)
	require.True(t, ok)
	assert.Equal(t, 1, prev)

	_, ok = h.Neighbor(4, 1, f)
	assert.False(t, ok, "no entry after the last")

	_, ok = h.Neighbor(3, 1, f)
	assert.False(t, ok, "hidden entries have no neighbors")

	last, ok := h.Latest(f)
	require.True(t, ok)
	assert.Equal(t, 4, last)
}

func TestRepositoriesAndBranches(t *testing.T) {
	h := NewHistory(sample())
	assert.Equal(t, []string{"api", "web"}, h.Repositories())
	assert.Equal(t, []string{"dev", "main"}, h.Branches("api"))
	assert.Equal(t, []string{"main"}, h.Branches("web"))
	assert.Equal(t, []string{"dev", "main"}, h.Branches(""))
}
