package workspace

import (
	"strings"
	"time"
)

// ChartRecord is one data point of a chart, keyed by field name.
type ChartRecord map[string]any

// ChartSpec describes a bar chart attached to an answer.
type ChartSpec struct {
	Title   string        `json:"title,omitempty" yaml:"title,omitempty"`
	XKey    string        `json:"x_key" yaml:"x_key"`
	YKey    string        `json:"y_key" yaml:"y_key"`
	Records []ChartRecord `json:"records" yaml:"records"`
}

// HistoryEntry is one past question and its answer.
type HistoryEntry struct {
	ID         int        `json:"id" yaml:"id"`
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Question   string     `json:"question" yaml:"question"`
	Answer     string     `json:"answer,omitempty" yaml:"answer,omitempty"`
	Repository string     `json:"repository,omitempty" yaml:"repository,omitempty"`
	Branch     string     `json:"branch,omitempty" yaml:"branch,omitempty"`
	Archived   bool       `json:"archived,omitempty" yaml:"archived,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Chart      *ChartSpec `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// DisplayTitle is the label shown for the entry in lists.
func (e *HistoryEntry) DisplayTitle() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return e.Question
}

// FindEntry returns the index of the entry with the given id, or -1.
func FindEntry(history []HistoryEntry, id int) int {
	for i := range history {
		if history[i].ID == id {
			return i
		}
	}
	return -1
}

// NextID returns an id greater than every id in history.
func NextID(history []HistoryEntry) int {
	next := 1
	for i := range history {
		if history[i].ID >= next {
			next = history[i].ID + 1
		}
	}
	return next
}
