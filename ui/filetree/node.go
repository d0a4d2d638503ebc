// Package filetree renders a workspace tree with per-folder expand state.
//
// Display state lives on Node and never touches the underlying
// workspace.TreeNode, so the same tree can back several independent views.
package filetree

import (
	"strings"

	"github.com/gerunddev/repolens/ui/theme"
	"github.com/gerunddev/repolens/workspace"
)

// Glyphs
const (
	ChevronOpen   = "▾"
	ChevronClosed = "▸"
	FolderOpen    = "📂"
	FolderClosed  = "📁"
	FileGlyph     = "📄"
	indentUnit    = "  "
)

// Node is the view of one tree entry.
type Node struct {
	src      *workspace.TreeNode
	children []*Node

	// Expanded starts true. Only meaningful for folders.
	Expanded bool
}

// New builds a view of src and its descendants, every folder expanded.
// Children of a file are ignored.
func New(src *workspace.TreeNode) *Node {
	n := &Node{src: src, Expanded: true}
	if src.Kind != workspace.KindFolder {
		return n
	}
	for i := range src.Children {
		n.children = append(n.children, New(&src.Children[i]))
	}
	return n
}

// NewForest builds one Node per root, in order.
func NewForest(tree []workspace.TreeNode) []*Node {
	nodes := make([]*Node, 0, len(tree))
	for i := range tree {
		nodes = append(nodes, New(&tree[i]))
	}
	return nodes
}

// Source returns the node being displayed.
func (n *Node) Source() *workspace.TreeNode { return n.src }

// Name returns the entry name.
func (n *Node) Name() string { return n.src.Name }

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool { return n.src.Kind == workspace.KindFolder }

// Children returns the child views.
func (n *Node) Children() []*Node { return n.children }

// Toggle flips the expand state of a folder. Files ignore it.
func (n *Node) Toggle() {
	if n.IsFolder() {
		n.Expanded = !n.Expanded
	}
}

// SetExpandedAll expands or collapses n and every folder below it.
func (n *Node) SetExpandedAll(expanded bool) {
	if !n.IsFolder() {
		return
	}
	n.Expanded = expanded
	for _, c := range n.children {
		c.SetExpandedAll(expanded)
	}
}

func (n *Node) contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, c := range n.children {
		if c.contains(other) {
			return true
		}
	}
	return false
}

// Row is one visible line of the tree.
type Row struct {
	Node  *Node
	Depth int
}

// Rows returns the visible rows of n, depth first. Nodes of unknown kind
// render nothing.
func (n *Node) Rows() []Row {
	return n.appendRows(nil, 0)
}

func (n *Node) appendRows(rows []Row, depth int) []Row {
	switch n.src.Kind {
	case workspace.KindFile:
		return append(rows, Row{Node: n, Depth: depth})
	case workspace.KindFolder:
		rows = append(rows, Row{Node: n, Depth: depth})
		if n.Expanded {
			for _, c := range n.children {
				rows = c.appendRows(rows, depth+1)
			}
		}
		return rows
	default:
		return rows
	}
}

// VisibleRows flattens several roots into rows.
func VisibleRows(roots []*Node) []Row {
	var rows []Row
	for _, r := range roots {
		rows = r.appendRows(rows, 0)
	}
	return rows
}

// Plain returns the unstyled text of a row.
func (r Row) Plain() string {
	indent := strings.Repeat(indentUnit, r.Depth)
	if !r.Node.IsFolder() {
		return indent + "  " + FileGlyph + " " + r.Node.Name()
	}
	chevron, glyph := ChevronClosed, FolderClosed
	if r.Node.Expanded {
		chevron, glyph = ChevronOpen, FolderOpen
	}
	return indent + chevron + " " + glyph + " " + r.Node.Name()
}

// Render returns the styled text of a row.
func (r Row) Render() string {
	indent := strings.Repeat(indentUnit, r.Depth)
	if !r.Node.IsFolder() {
		return indent + "  " + FileGlyph + " " + theme.FileStyle.Render(r.Node.Name())
	}
	chevron, glyph := ChevronClosed, FolderClosed
	if r.Node.Expanded {
		chevron, glyph = ChevronOpen, FolderOpen
	}
	return indent + theme.ChevronStyle.Render(chevron) + " " + glyph + " " + theme.FolderStyle.Render(r.Node.Name())
}
