package shell

import (
	"strings"

	"github.com/ettle/strcase"
)

// CollapsedTitleGlyph replaces section titles while the sidebar is collapsed.
const CollapsedTitleGlyph = "•••"

// Shape is the renderable form of a sidebar node.
type Shape string

const (
	ShapeTitle Shape = "title"
	ShapeGroup Shape = "group"
	ShapeLink  Shape = "link"
)

// SidebarInput is everything the sidebar traversal reads.
type SidebarInput struct {
	Collapsed   bool
	CurrentPath string
	Expansion   ExpansionState
	Matcher     Matcher
	Widths      Widths
}

// SidebarNode is one rendered row of the sidebar.
type SidebarNode struct {
	Shape     Shape         `json:"shape"`
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Text      string        `json:"text"`
	Icon      string        `json:"icon,omitempty"`
	Path      string        `json:"path,omitempty"`
	Depth     int           `json:"depth"`
	Active    bool          `json:"active"`
	Open      bool          `json:"open"`
	Disabled  bool          `json:"disabled"`
	ShowLabel bool          `json:"show_label"`
	Centered  bool          `json:"centered"`
	Badge     *Badge        `json:"badge,omitempty"`
	Children  []SidebarNode `json:"children,omitempty"`
}

// SidebarView is the full sidebar render model.
type SidebarView struct {
	Collapsed bool          `json:"collapsed"`
	Width     int           `json:"width"`
	Nodes     []SidebarNode `json:"nodes"`
}

// BuildSidebar walks the tree in order and produces the render model.
func BuildSidebar(tree *NavTree, in SidebarInput) SidebarView {
	widths := in.Widths.withDefaults()
	return SidebarView{
		Collapsed: in.Collapsed,
		Width:     widths.For(in.Collapsed),
		Nodes:     buildNodes(tree.Entries(), 0, nil, in),
	}
}

func buildNodes(entries []NavEntry, depth int, trail []string, in SidebarInput) []SidebarNode {
	nodes := make([]SidebarNode, 0, len(entries))
	for _, entry := range entries {
		where := append(append([]string(nil), trail...), entry.label)
		switch entry.kind {
		case KindSectionTitle:
			nodes = append(nodes, titleNode(entry, depth, where, in))
		case KindGroup:
			nodes = append(nodes, groupNode(entry, depth, where, in))
		case KindLeaf:
			nodes = append(nodes, leafNode(entry, depth, where, in))
		}
	}
	return nodes
}

func titleNode(entry NavEntry, depth int, trail []string, in SidebarInput) SidebarNode {
	text := entry.label
	if in.Collapsed {
		text = CollapsedTitleGlyph
	}
	return SidebarNode{
		Shape:     ShapeTitle,
		Key:       NodeKey(trail),
		Label:     entry.label,
		Text:      text,
		Depth:     depth,
		ShowLabel: !in.Collapsed,
		Centered:  in.Collapsed,
	}
}

func groupNode(entry NavEntry, depth int, trail []string, in SidebarInput) SidebarNode {
	open := in.Expansion.EffectiveOpen(entry.label, in.Collapsed)
	node := SidebarNode{
		Shape:     ShapeGroup,
		Key:       NodeKey(trail),
		Label:     entry.label,
		Text:      entry.label,
		Icon:      entry.icon,
		Depth:     depth,
		Active:    in.Matcher.IsActive(entry, in.CurrentPath),
		Open:      open,
		Disabled:  in.Collapsed && depth > 0,
		ShowLabel: !in.Collapsed,
		Centered:  in.Collapsed,
	}
	if open {
		node.Children = buildNodes(entry.children, depth+1, trail, in)
	}
	return node
}

func leafNode(entry NavEntry, depth int, trail []string, in SidebarInput) SidebarNode {
	node := SidebarNode{
		Shape:     ShapeLink,
		Key:       NodeKey(trail),
		Label:     entry.label,
		Text:      entry.label,
		Icon:      entry.icon,
		Path:      entry.path,
		Depth:     depth,
		Active:    in.Matcher.IsActive(entry, in.CurrentPath),
		ShowLabel: !in.Collapsed,
		Centered:  in.Collapsed,
	}
	if badge, ok := entry.Badge(); ok && !in.Collapsed {
		node.Badge = &badge
	}
	return node
}

// NodeKey builds a stable DOM-safe key from a label trail.
func NodeKey(trail []string) string {
	parts := make([]string, 0, len(trail))
	for _, label := range trail {
		if key := strcase.ToKebab(strings.TrimSpace(label)); key != "" {
			parts = append(parts, key)
		}
	}
	return "nav-" + strings.Join(parts, "--")
}

// Find returns the first node with the given label, searching rendered children.
func (v SidebarView) Find(label string) (SidebarNode, bool) {
	return findNode(v.Nodes, label)
}

func findNode(nodes []SidebarNode, label string) (SidebarNode, bool) {
	for _, node := range nodes {
		if node.Label == label {
			return node, true
		}
		if found, ok := findNode(node.Children, label); ok {
			return found, true
		}
	}
	return SidebarNode{}, false
}
