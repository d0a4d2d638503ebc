// Package interactive is the quick-action mode: pick a conversation and an
// action with huh prompts instead of opening the full TUI.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/gerunddev/repolens/workspace"
)

// Options configures quick actions.
type Options struct {
	ExportDir string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	// Out receives action output. Defaults to stdout.
	Out io.Writer
}

// Run starts the interactive mode
func Run(snap *workspace.Snapshot, opts Options) error {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	options := buildEntryOptions(snap.History)
	if len(options) == 0 {
		fmt.Fprintln(opts.Out, "No conversation history")
		return nil
	}

	var id int
	err := huh.NewSelect[int]().
		Title("repolens - Quick Actions").
		Description("Select a conversation").
		Options(options...).
		Value(&id).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	i := workspace.FindEntry(snap.History, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", workspace.ErrEntryNotFound, id)
	}
	entry := &snap.History[i]

	var action string
	err = huh.NewSelect[string]().
		Title(entry.DisplayTitle()).
		Options(buildActionOptions(entry)...).
		Value(&action).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	return perform(action, entry, opts)
}
