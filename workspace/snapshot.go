package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/repolens/logging"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format identifies a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the snapshot format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads and decodes a snapshot file.
func Load(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	snap, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Decode parses snapshot data in the given format. Children under file
// nodes are dropped with a warning instead of failing the load.
func Decode(data []byte, format Format) (*Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err := snap.Validate(); err != nil {
		n := dropFileChildren(snap.Tree)
		logging.Warn("dropped children of file nodes", "nodes", n, "first", err)
	}
	return &snap, nil
}

// Encode serializes a snapshot in the given format.
func Encode(snap *Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(snap, "", "  ")
	case FormatYAML:
		return yaml.Marshal(snap)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

// EncodeTree serializes a tree in the /api/filetree wire shape:
// {"tree": [...]}.
func EncodeTree(tree []TreeNode) ([]byte, error) {
	return json.MarshalIndent(struct {
		Tree []TreeNode `json:"tree"`
	}{Tree: tree}, "", "  ")
}
