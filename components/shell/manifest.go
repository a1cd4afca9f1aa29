package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current nav manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// NavManifest models a YAML/JSON document describing the navigation tree.
type NavManifest struct {
	Version  string      `json:"version" yaml:"version"`
	Branding *Branding   `json:"branding,omitempty" yaml:"branding,omitempty"`
	Entries  []EntrySpec `json:"entries" yaml:"entries"`
	Source   string      `json:"-" yaml:"-"`
}

// EntrySpec is the loose, serializable form of a NavEntry.
type EntrySpec struct {
	Label      string      `json:"label" yaml:"label"`
	Title      bool        `json:"title,omitempty" yaml:"title,omitempty"`
	Path       string      `json:"path,omitempty" yaml:"path,omitempty"`
	Icon       string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	ExactMatch bool        `json:"exact_match,omitempty" yaml:"exact_match,omitempty"`
	Badge      *Badge      `json:"badge,omitempty" yaml:"badge,omitempty"`
	Children   []EntrySpec `json:"children,omitempty" yaml:"children,omitempty"`
}

// Build converts the spec into a NavEntry, rejecting ambiguous shapes.
func (s EntrySpec) Build() (NavEntry, error) {
	hasPath := s.Path != ""
	hasChildren := s.Children != nil
	set := 0
	for _, flag := range []bool{s.Title, hasPath, hasChildren} {
		if flag {
			set++
		}
	}
	if set != 1 {
		return NavEntry{}, fmt.Errorf("shell: entry %q must be exactly one of title, path or children: %w", s.Label, ErrInvalidEntry)
	}
	opts := []EntryOption{WithIcon(s.Icon)}
	switch {
	case s.Title:
		if s.ExactMatch || s.Badge != nil {
			return NavEntry{}, fmt.Errorf("shell: title %q cannot carry exact_match or badge: %w", s.Label, ErrInvalidEntry)
		}
		return SectionTitle(s.Label, opts...), nil
	case hasPath:
		if s.ExactMatch {
			opts = append(opts, ExactMatch())
		}
		if s.Badge != nil {
			opts = append(opts, WithBadge(s.Badge.Text, s.Badge.Kind))
		}
		return Leaf(s.Label, s.Path, opts...), nil
	default:
		if s.ExactMatch || s.Badge != nil {
			return NavEntry{}, fmt.Errorf("shell: group %q cannot carry exact_match or badge: %w", s.Label, ErrInvalidEntry)
		}
		children := make([]NavEntry, 0, len(s.Children))
		for _, childSpec := range s.Children {
			child, err := childSpec.Build()
			if err != nil {
				return NavEntry{}, fmt.Errorf("shell: group %q: %w", s.Label, err)
			}
			children = append(children, child)
		}
		return Group(s.Label, children, opts...), nil
	}
}

// SpecFor converts an entry back into its serializable form.
func SpecFor(entry NavEntry) EntrySpec {
	spec := EntrySpec{
		Label: entry.label,
		Icon:  entry.icon,
	}
	switch entry.kind {
	case KindSectionTitle:
		spec.Title = true
	case KindLeaf:
		spec.Path = entry.path
		spec.ExactMatch = entry.exactMatch
		if badge, ok := entry.Badge(); ok {
			spec.Badge = &badge
		}
	case KindGroup:
		spec.Children = make([]EntrySpec, 0, len(entry.children))
		for _, child := range entry.children {
			spec.Children = append(spec.Children, SpecFor(child))
		}
	}
	return spec
}

// ManifestFor builds a manifest document from a tree.
func ManifestFor(tree *NavTree, branding *Branding) *NavManifest {
	doc := &NavManifest{Version: manifestVersionV1, Branding: branding}
	for _, entry := range tree.Entries() {
		doc.Entries = append(doc.Entries, SpecFor(entry))
	}
	return doc
}

// Tree validates the manifest and builds the nav tree.
func (doc *NavManifest) Tree() (*NavTree, error) {
	if doc == nil {
		return nil, errors.New("shell: manifest document is nil")
	}
	entries := make([]NavEntry, 0, len(doc.Entries))
	for _, spec := range doc.Entries {
		entry, err := spec.Build()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return NewNavTree(entries...)
}

// Validate checks document-level fields.
func (doc *NavManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("shell: unsupported manifest version %q", doc.Version)
	}
	if len(doc.Entries) == 0 {
		return errors.New("shell: manifest declares no entries")
	}
	return nil
}

func (doc *NavManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

// DecodeManifest reads a manifest from any reader. Unknown fields are rejected.
func DecodeManifest(r io.Reader) (*NavManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc NavManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("shell: manifest is empty")
		}
		return nil, fmt.Errorf("shell: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadNavTree reads, schema-validates and builds the tree from a manifest file.
func LoadNavTree(path string, validator *NavSchemaValidator) (*NavTree, *NavManifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("shell: open manifest %s: %w", path, err)
	}
	if validator != nil {
		if err := validator.ValidateYAML(data); err != nil {
			return nil, nil, fmt.Errorf("shell: manifest %s: %w", path, err)
		}
	}
	doc, err := DecodeManifest(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("shell: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	tree, err := doc.Tree()
	if err != nil {
		return nil, nil, fmt.Errorf("shell: manifest %s: %w", path, err)
	}
	return tree, doc, nil
}

// WriteManifest encodes the manifest as YAML.
func WriteManifest(w io.Writer, doc *NavManifest) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("shell: write manifest: %w", err)
	}
	return encoder.Close()
}
