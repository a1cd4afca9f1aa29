package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEntry signals an entry that is not exactly one of title, leaf or group.
	ErrInvalidEntry = errors.New("shell: invalid nav entry")
	// ErrEmptyLabel signals an entry without a label.
	ErrEmptyLabel = errors.New("shell: nav entry label is required")
	// ErrMissingPath signals a leaf without a path.
	ErrMissingPath = errors.New("shell: nav leaf path is required")
	// ErrEmptyGroup signals a group without children.
	ErrEmptyGroup = errors.New("shell: nav group requires children")
	// ErrDuplicateLabel signals two siblings sharing a label.
	ErrDuplicateLabel = errors.New("shell: duplicate nav label among siblings")
)

// EntryKind tags the NavEntry variant.
type EntryKind int

const (
	KindSectionTitle EntryKind = iota + 1
	KindGroup
	KindLeaf
)

func (k EntryKind) String() string {
	switch k {
	case KindSectionTitle:
		return "title"
	case KindGroup:
		return "group"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// BadgeKind enumerates decorative badge styles.
type BadgeKind string

const (
	BadgeNew BadgeKind = "new"
	BadgeHot BadgeKind = "hot"
)

// Badge is a decorative marker rendered next to a leaf label.
type Badge struct {
	Text string    `json:"text" yaml:"text"`
	Kind BadgeKind `json:"kind" yaml:"kind"`
}

// NavEntry is one navigation item. Build it with SectionTitle, Group or Leaf.
type NavEntry struct {
	kind       EntryKind
	label      string
	icon       string
	path       string
	exactMatch bool
	badge      *Badge
	children   []NavEntry
}

// EntryOption decorates an entry at construction time.
type EntryOption func(*NavEntry)

// WithIcon sets the icon name.
func WithIcon(name string) EntryOption {
	return func(e *NavEntry) {
		e.icon = name
	}
}

// WithBadge attaches a badge (leaves only; ignored elsewhere).
func WithBadge(text string, kind BadgeKind) EntryOption {
	return func(e *NavEntry) {
		if e.kind != KindLeaf {
			return
		}
		e.badge = &Badge{Text: text, Kind: kind}
	}
}

// ExactMatch switches a leaf to string-equality matching.
func ExactMatch() EntryOption {
	return func(e *NavEntry) {
		if e.kind == KindLeaf {
			e.exactMatch = true
		}
	}
}

// SectionTitle builds a non-interactive separator.
func SectionTitle(label string, opts ...EntryOption) NavEntry {
	return newEntry(KindSectionTitle, label, opts)
}

// Leaf builds a navigable link.
func Leaf(label, path string, opts ...EntryOption) NavEntry {
	e := newEntry(KindLeaf, label, opts)
	e.path = path
	return e
}

// Group builds an expandable entry holding children.
func Group(label string, children []NavEntry, opts ...EntryOption) NavEntry {
	e := newEntry(KindGroup, label, opts)
	e.children = append([]NavEntry(nil), children...)
	return e
}

func newEntry(kind EntryKind, label string, opts []EntryOption) NavEntry {
	e := NavEntry{kind: kind, label: label}
	for _, opt := range opts {
		if opt != nil {
			opt(&e)
		}
	}
	return e
}

func (e NavEntry) Kind() EntryKind   { return e.kind }
func (e NavEntry) Label() string     { return e.label }
func (e NavEntry) Icon() string      { return e.icon }
func (e NavEntry) Path() string      { return e.path }
func (e NavEntry) ExactMatch() bool  { return e.exactMatch }
func (e NavEntry) IsTitle() bool     { return e.kind == KindSectionTitle }
func (e NavEntry) IsGroup() bool     { return e.kind == KindGroup }
func (e NavEntry) IsLeaf() bool      { return e.kind == KindLeaf }
func (e NavEntry) HasChildren() bool { return len(e.children) > 0 }

// Badge returns a copy of the badge, if any.
func (e NavEntry) Badge() (Badge, bool) {
	if e.badge == nil {
		return Badge{}, false
	}
	return *e.badge, true
}

// Children returns a copy of the child entries.
func (e NavEntry) Children() []NavEntry {
	if len(e.children) == 0 {
		return nil
	}
	return append([]NavEntry(nil), e.children...)
}

func (e NavEntry) validate() error {
	if strings.TrimSpace(e.label) == "" {
		return ErrEmptyLabel
	}
	switch e.kind {
	case KindSectionTitle:
		if e.path != "" || len(e.children) > 0 {
			return ErrInvalidEntry
		}
	case KindLeaf:
		if e.path == "" {
			return ErrMissingPath
		}
		if len(e.children) > 0 {
			return ErrInvalidEntry
		}
	case KindGroup:
		if e.path != "" {
			return ErrInvalidEntry
		}
		if len(e.children) == 0 {
			return ErrEmptyGroup
		}
	default:
		return ErrInvalidEntry
	}
	return nil
}

// NavTree is the validated, immutable navigation configuration.
type NavTree struct {
	entries []NavEntry
}

// NewNavTree validates entries recursively and returns the tree.
func NewNavTree(entries ...NavEntry) (*NavTree, error) {
	if err := validateEntries(entries, nil); err != nil {
		return nil, err
	}
	return &NavTree{entries: append([]NavEntry(nil), entries...)}, nil
}

// MustNavTree panics when the entries are malformed. Intended for static configuration.
func MustNavTree(entries ...NavEntry) *NavTree {
	tree, err := NewNavTree(entries...)
	if err != nil {
		panic(err)
	}
	return tree
}

func validateEntries(entries []NavEntry, trail []string) error {
	seen := make(map[string]struct{}, len(entries))
	for idx, entry := range entries {
		where := append(append([]string(nil), trail...), entry.label)
		if err := entry.validate(); err != nil {
			return fmt.Errorf("shell: entry %s (index %d): %w", formatTrail(where), idx, err)
		}
		if _, dup := seen[entry.label]; dup {
			return fmt.Errorf("shell: entry %s: %w", formatTrail(where), ErrDuplicateLabel)
		}
		seen[entry.label] = struct{}{}
		if entry.kind == KindGroup {
			if err := validateEntries(entry.children, where); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatTrail(trail []string) string {
	return strings.Join(trail, " > ")
}

// Entries returns the top-level entries in display order.
func (t *NavTree) Entries() []NavEntry {
	if t == nil {
		return nil
	}
	return append([]NavEntry(nil), t.entries...)
}

// Walk visits every entry depth-first in display order. Returning false stops the walk.
func (t *NavTree) Walk(fn func(entry NavEntry, depth int, parent *NavEntry) bool) {
	if t == nil || fn == nil {
		return
	}
	walkEntries(t.entries, 0, nil, fn)
}

func walkEntries(entries []NavEntry, depth int, parent *NavEntry, fn func(NavEntry, int, *NavEntry) bool) bool {
	for i := range entries {
		entry := entries[i]
		if !fn(entry, depth, parent) {
			return false
		}
		if entry.kind == KindGroup {
			if !walkEntries(entry.children, depth+1, &entry, fn) {
				return false
			}
		}
	}
	return true
}

// Groups returns every group label, depth-first.
func (t *NavTree) Groups() []string {
	var labels []string
	t.Walk(func(entry NavEntry, _ int, _ *NavEntry) bool {
		if entry.IsGroup() {
			labels = append(labels, entry.label)
		}
		return true
	})
	return labels
}

// Leaves returns every leaf, depth-first.
func (t *NavTree) Leaves() []NavEntry {
	var leaves []NavEntry
	t.Walk(func(entry NavEntry, _ int, _ *NavEntry) bool {
		if entry.IsLeaf() {
			leaves = append(leaves, entry)
		}
		return true
	})
	return leaves
}

// FindGroup returns the first group with the given label.
func (t *NavTree) FindGroup(label string) (NavEntry, bool) {
	var (
		found NavEntry
		ok    bool
	)
	t.Walk(func(entry NavEntry, _ int, _ *NavEntry) bool {
		if entry.IsGroup() && entry.label == label {
			found, ok = entry, true
			return false
		}
		return true
	})
	return found, ok
}

// FindLeaf returns the first leaf whose path equals path.
func (t *NavTree) FindLeaf(path string) (NavEntry, bool) {
	var (
		found NavEntry
		ok    bool
	)
	t.Walk(func(entry NavEntry, _ int, _ *NavEntry) bool {
		if entry.IsLeaf() && entry.path == path {
			found, ok = entry, true
			return false
		}
		return true
	})
	return found, ok
}
