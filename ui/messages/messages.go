// Package messages holds the tea.Msg types shared between the root model,
// its panels and background producers such as the file watcher.
package messages

import "github.com/gerunddev/repolens/workspace"

// SnapshotLoadedMsg is sent when a snapshot load command finishes.
type SnapshotLoadedMsg struct {
	Path     string
	Snapshot *workspace.Snapshot
	Err      error
}

// SnapshotChangedMsg is sent by the watcher when the snapshot file changes on disk
type SnapshotChangedMsg struct {
	Path string
}

// EntrySelectedMsg is sent when a history entry becomes the one shown in the main area.
type EntrySelectedMsg struct {
	ID int
}

// NoticeMsg asks the root model to show a short message in an info overlay.
type NoticeMsg struct {
	Title string
	Body  string
	Err   error
}

// RepoFilterMsg narrows the history to one repository. An empty name shows all.
type RepoFilterMsg struct {
	Repository string
}
