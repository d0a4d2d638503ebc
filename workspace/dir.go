package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirOptions controls TreeFromDir.
type DirOptions struct {
	MaxDepth   int      // 0 means unlimited
	Ignore     []string // base names to skip
	ShowHidden bool
}

var defaultIgnore = []string{".git", "node_modules", "vendor", "__pycache__"}

// TreeFromDir builds a tree from a directory on disk. Folders come before
// files; both are sorted by name. Symlinked directories are listed as files
// so the result is always acyclic.
func TreeFromDir(root string, opts DirOptions) ([]TreeNode, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	ignore := make(map[string]bool, len(defaultIgnore)+len(opts.Ignore))
	for _, name := range defaultIgnore {
		ignore[name] = true
	}
	for _, name := range opts.Ignore {
		ignore[name] = true
	}

	return readDir(root, 1, opts, ignore)
}

func readDir(dir string, depth int, opts DirOptions, ignore map[string]bool) ([]TreeNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var folders, files []TreeNode
	for _, entry := range entries {
		name := entry.Name()
		if ignore[name] {
			continue
		}
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}

		if !entry.IsDir() {
			files = append(files, File(name))
			continue
		}

		folder := Folder(name)
		if opts.MaxDepth == 0 || depth < opts.MaxDepth {
			children, err := readDir(filepath.Join(dir, name), depth+1, opts, ignore)
			if err != nil {
				return nil, err
			}
			folder.Children = children
		}
		folders = append(folders, folder)
	}

	byName := func(nodes []TreeNode) {
		sort.Slice(nodes, func(i, j int) bool {
			return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
		})
	}
	byName(folders)
	byName(files)

	return append(folders, files...), nil
}
