// Package vcs reads repository metadata through the git command line.
package vcs

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gerunddev/repolens/workspace"
)

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Info returns the name and current branch of the repository containing
// dir. A detached HEAD yields an empty branch.
func Info(dir string) (workspace.RepoMeta, error) {
	top, err := git(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return workspace.RepoMeta{}, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}

	meta := workspace.RepoMeta{Name: filepath.Base(parseLine(top))}

	// symbolic-ref works before the first commit, unlike rev-parse HEAD.
	if ref, err := git(dir, "symbolic-ref", "--short", "-q", "HEAD"); err == nil {
		meta.Branch = parseBranch(ref)
	}
	return meta, nil
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return string(output), nil
}

func parseLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimSpace(line)
}

// parseBranch normalizes a branch name. "HEAD" means detached.
func parseBranch(output string) string {
	b := parseLine(output)
	if b == "HEAD" {
		return ""
	}
	return b
}
