package workspace

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NodeKind discriminates tree nodes.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindFile
	KindFolder
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

func parseKind(s string) NodeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return KindFile
	case "folder", "dir", "directory":
		return KindFolder
	default:
		return KindUnknown
	}
}

// MarshalText encodes the kind as its wire name.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a wire name. Unrecognized names decode to
// KindUnknown rather than failing, so one bad node does not sink a tree.
func (k *NodeKind) UnmarshalText(text []byte) error {
	*k = parseKind(string(text))
	return nil
}

// UnmarshalYAML decodes a wire name from YAML.
func (k *NodeKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("node type: %w", err)
	}
	*k = parseKind(s)
	return nil
}

// MarshalYAML encodes the kind as its wire name.
func (k NodeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// TreeNode is a file or folder in a repository tree.
// Files never carry children; folder children are in display order.
type TreeNode struct {
	Kind     NodeKind   `json:"type" yaml:"type"`
	Name     string     `json:"name" yaml:"name"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// File returns a file node.
func File(name string) TreeNode {
	return TreeNode{Kind: KindFile, Name: name}
}

// Folder returns a folder node with the given children.
func Folder(name string, children ...TreeNode) TreeNode {
	return TreeNode{Kind: KindFolder, Name: name, Children: children}
}

// IsFolder reports whether the node is a folder.
func (n *TreeNode) IsFolder() bool {
	return n.Kind == KindFolder
}

// Validate reports the first node that breaks the file/folder invariant.
func (n *TreeNode) Validate() error {
	if n.Kind == KindFile && len(n.Children) > 0 {
		return fmt.Errorf("%s: %w", n.Name, ErrFileWithChildren)
	}
	for i := range n.Children {
		if err := n.Children[i].Validate(); err != nil {
			return fmt.Errorf("%s/%w", n.Name, err)
		}
	}
	return nil
}

// dropFileChildren clears the children of every file node in place and
// returns how many files had any.
func dropFileChildren(nodes []TreeNode) int {
	dropped := 0
	for i := range nodes {
		if nodes[i].Kind == KindFile {
			if len(nodes[i].Children) > 0 {
				nodes[i].Children = nil
				dropped++
			}
			continue
		}
		dropped += dropFileChildren(nodes[i].Children)
	}
	return dropped
}

// CountNodes returns the number of nodes in the given trees.
func CountNodes(nodes []TreeNode) int {
	count := 0
	for i := range nodes {
		count++
		count += CountNodes(nodes[i].Children)
	}
	return count
}
