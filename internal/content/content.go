// Package content scans the content root and exposes the store of
// documentation pages. A document's id is its root-relative path minus
// the extension, slash-delimited, exact and case-sensitive: the file
// content/architecture/overview.md is the document architecture/overview.
package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is one scanned content file.
type Document struct {
	ID         string
	SourcePath string
	Title      string
	Summary    string
	Layout     string
	// Position is the sidebar_position front-matter hint; zero means
	// unset. It orders documents only where no sidebar order applies.
	Position int
	Body     []byte
}

// Store holds every document found under a content root.
type Store struct {
	Root string
	docs map[string]*Document
}

type matter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Layout      string `yaml:"layout"`
	Position    int    `yaml:"sidebar_position"`
}

var titleCaser = cases.Title(language.English)

// Scan walks root and loads every .md/.mdx file into a Store. Files that
// fail to read abort the scan: a half-scanned store would make downstream
// validation lie. Two files mapping to the same document id (such as
// guide.md next to guide.mdx) are an error; ids must be unique across
// the whole store.
func Scan(root string) (*Store, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("content root %s: %w", root, err)
	}

	store := &Store{Root: root, docs: make(map[string]*Document)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if d.IsDir() || !isContentFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		doc, err := load(path, rel)
		if err != nil {
			return err
		}
		if existing, ok := store.docs[doc.ID]; ok {
			return fmt.Errorf("duplicate document id %q: %s and %s", doc.ID, existing.SourcePath, path)
		}
		store.docs[doc.ID] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

func load(path, rel string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fm matter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		// Malformed or absent front matter: treat the whole file as body.
		body = raw
		fm = matter{}
	}

	id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	title := fm.Title
	if title == "" {
		title = headingTitle(body)
	}
	if title == "" {
		title = inferredTitle(rel)
	}

	return &Document{
		ID:         id,
		SourcePath: path,
		Title:      title,
		Summary:    fm.Description,
		Layout:     fm.Layout,
		Position:   fm.Position,
		Body:       body,
	}, nil
}

// headingTitle returns the text of the first top-level heading, if the
// body opens with one before any other content.
func headingTitle(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
		return ""
	}
	return ""
}

// inferredTitle derives a title from the filename: hyphens and
// underscores become spaces, then the result is title-cased.
func inferredTitle(rel string) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return titleCaser.String(base)
}

// Get returns the document for id, or nil.
func (s *Store) Get(id string) *Document {
	return s.docs[id]
}

// Len returns the number of documents in the store.
func (s *Store) Len() int { return len(s.docs) }

// IDs returns the set of known document ids, the shape the navigation
// validator consumes.
func (s *Store) IDs() map[string]bool {
	ids := make(map[string]bool, len(s.docs))
	for id := range s.docs {
		ids[id] = true
	}
	return ids
}

// Documents returns every document ordered by the sidebar_position hint,
// unset (zero) last, ties broken by id.
func (s *Store) Documents() []*Document {
	docs := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		pi, pj := docs[i].Position, docs[j].Position
		if pi != pj {
			if pi == 0 {
				return false
			}
			if pj == 0 {
				return true
			}
			return pi < pj
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}
