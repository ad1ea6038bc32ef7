package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestScanDerivesIDs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "intro.md", "# Intro\n")
	writeFile(t, root, "architecture/overview.md", "# Overview\n")
	writeFile(t, root, "widgets/picker.mdx", "# Picker\n")
	writeFile(t, root, "assets/diagram.svg", "<svg/>")

	store, err := Scan(root)
	require.NoError(t, err)

	ids := store.IDs()
	assert.Equal(t, map[string]bool{
		"intro":                 true,
		"architecture/overview": true,
		"widgets/picker":        true,
	}, ids, "ids are relative paths minus extension; non-content files ignored")
}

func TestScanTitleFromFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "page.md", `---
title: Explicit Title
description: A summary
sidebar_position: 3
---
Body text.
`)

	store, err := Scan(root)
	require.NoError(t, err)

	doc := store.Get("page")
	require.NotNil(t, doc)
	assert.Equal(t, "Explicit Title", doc.Title)
	assert.Equal(t, "A summary", doc.Summary)
	assert.Equal(t, 3, doc.Position)
	assert.Contains(t, string(doc.Body), "Body text.")
}

func TestScanTitleFromHeading(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guide.md", "# Getting Started\n\nSome prose.\n")

	store, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", store.Get("guide").Title)
}

func TestScanTitleInferredFromFilename(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup/key-event_handling.md", "no heading here\n")

	store, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, "Key Event Handling", store.Get("setup/key-event_handling").Title)
}

func TestScanIDsAreCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "API.md", "# API\n")

	store, err := Scan(root)
	require.NoError(t, err)
	assert.NotNil(t, store.Get("API"))
	assert.Nil(t, store.Get("api"))
}

func TestDocumentsOrderedByPositionHint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "c.md", "---\nsidebar_position: 1\n---\n# C\n")
	writeFile(t, root, "a.md", "---\nsidebar_position: 2\n---\n# A\n")
	writeFile(t, root, "b.md", "# B\n")
	writeFile(t, root, "d.md", "# D\n")

	store, err := Scan(root)
	require.NoError(t, err)

	docs := store.Documents()
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids, "positioned docs first, unset ordered by id")
}

func TestScanRejectsDuplicateIDs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guide.md", "# From md\n")
	writeFile(t, root, "guide.mdx", "# From mdx\n")

	_, err := Scan(root)
	require.Error(t, err, "two files mapping to one id must fail the scan")
	assert.Contains(t, err.Error(), `"guide"`)
	assert.Contains(t, err.Error(), "guide.md")
	assert.Contains(t, err.Error(), "guide.mdx")
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
