package vcs

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestParseBranch(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"plain", "main\n", "main"},
		{"slashes", "feature/tree-view\n", "feature/tree-view"},
		{"detached", "HEAD\n", ""},
		{"empty", "", ""},
		{"extra lines", "dev\nignored\n", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseBranch(tt.output); got != tt.want {
				t.Errorf("parseBranch(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := filepath.Join(t.TempDir(), "lens-api")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{"init", "-q"},
		{"symbolic-ref", "HEAD", "refs/heads/trunk"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Skipf("unable to initialize repo: %v: %s", err, out)
		}
	}
	return dir
}

func TestInfo(t *testing.T) {
	dir := initRepo(t)

	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	meta, err := Info(sub)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if meta.Name != "lens-api" {
		t.Errorf("Name = %q, want %q", meta.Name, "lens-api")
	}
	if meta.Branch != "trunk" {
		t.Errorf("Branch = %q, want %q", meta.Branch, "trunk")
	}
}

func TestInfoOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	_, err := Info(t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("Info() error = %v, want ErrNotRepository", err)
	}
}
