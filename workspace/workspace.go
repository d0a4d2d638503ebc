// Package workspace holds the data a repolens view is driven by: repository
// metadata, the repository file tree, the question history and chart data.
// Values in this package are owned by the application and handed to the UI
// components as read-only input.
package workspace

import "errors"

// Common errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	ErrFileWithChildren  = errors.New("file node carries children")
	ErrEntryNotFound     = errors.New("history entry not found")
)

// DefaultBranch is shown when a repository carries no branch name.
const DefaultBranch = "main"

// RepoMeta identifies the repository being viewed.
type RepoMeta struct {
	Name   string `json:"name" yaml:"name"`
	Branch string `json:"branch" yaml:"branch"`
}

// DisplayBranch returns the branch name, falling back to DefaultBranch.
func (r RepoMeta) DisplayBranch() string {
	if r.Branch == "" {
		return DefaultBranch
	}
	return r.Branch
}

// Snapshot is everything a view needs, as loaded from disk.
type Snapshot struct {
	Repo    RepoMeta       `json:"repo" yaml:"repo"`
	Tree    []TreeNode     `json:"tree" yaml:"tree"`
	History []HistoryEntry `json:"history" yaml:"history"`
}

// Validate checks the tree invariants of the snapshot.
func (s *Snapshot) Validate() error {
	for i := range s.Tree {
		if err := s.Tree[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
