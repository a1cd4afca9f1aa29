package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNavTreeFromManifest(t *testing.T) {
	tree, doc, err := LoadNavTree("testdata/nav.yaml", NewNavSchemaValidator())
	require.NoError(t, err)
	require.NotNil(t, doc.Branding)
	assert.Equal(t, "ACME", doc.Branding.Name)
	assert.Equal(t, "testdata/nav.yaml", doc.Source)

	entries := tree.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, KindGroup, entries[0].Kind())
	assert.True(t, entries[0].Children()[1].ExactMatch())
	badge, ok := entries[1].Badge()
	require.True(t, ok)
	assert.Equal(t, BadgeNew, badge.Kind)
	assert.Equal(t, KindSectionTitle, entries[2].Kind())
}

func TestAmbiguousEntryRejectedBySchemaAndBuild(t *testing.T) {
	_, _, err := LoadNavTree("testdata/nav_ambiguous.yaml", NewNavSchemaValidator())
	require.Error(t, err)

	_, _, err = LoadNavTree("testdata/nav_ambiguous.yaml", nil)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry without schema, got %v", err)
	}
}

func TestEntrySpecBuildRejectsInvalidShapes(t *testing.T) {
	cases := map[string]EntrySpec{
		"nothing set":        {Label: "Empty"},
		"title and path":     {Label: "T", Title: true, Path: "/t"},
		"title and children": {Label: "T", Title: true, Children: []EntrySpec{{Label: "A", Path: "/a"}}},
		"path and children":  {Label: "G", Path: "/g", Children: []EntrySpec{{Label: "A", Path: "/a"}}},
		"badge on group":     {Label: "G", Badge: &Badge{Text: "x", Kind: BadgeNew}, Children: []EntrySpec{{Label: "A", Path: "/a"}}},
		"exact on title":     {Label: "T", Title: true, ExactMatch: true},
		"nested invalid":     {Label: "G", Children: []EntrySpec{{Label: "Bad"}}},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := spec.Build()
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestEmptyChildrenListFailsTreeConstruction(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader("entries:\n  - label: Apps\n    children: []\n"))
	require.NoError(t, err)
	_, err = doc.Tree()
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("entries:\n  - label: Home\n    href: /\n"))
	assert.Error(t, err)

	_, err = DecodeManifest(strings.NewReader(""))
	assert.Error(t, err)

	_, err = DecodeManifest(strings.NewReader("version: \"2\"\nentries:\n  - label: Home\n    path: /\n"))
	assert.Error(t, err)
}

func TestManifestExportRoundTripsDefaultTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, ManifestFor(DefaultNavTree(), nil)))
	require.NoError(t, NewNavSchemaValidator().ValidateYAML(buf.Bytes()))

	doc, err := DecodeManifest(&buf)
	require.NoError(t, err)
	tree, err := doc.Tree()
	require.NoError(t, err)
	assert.Equal(t, DefaultNavTree().Groups(), tree.Groups())
	assert.Equal(t, len(DefaultNavTree().Leaves()), len(tree.Leaves()))
}

func TestSchemaValidatorRejectsBadBadgeKind(t *testing.T) {
	err := NewNavSchemaValidator().ValidateYAML([]byte("entries:\n  - label: Blog\n    path: /blog\n    badge: {text: New, kind: shiny}\n"))
	assert.Error(t, err)
}
