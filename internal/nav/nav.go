// Package nav models the sidebar navigation tree: a declarative YAML
// structure of categories and document references, independent of the
// on-disk content layout. The built tree is an immutable value; building
// and validating never touch the filesystem.
package nav

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Entry is one node of the raw YAML declaration. Exactly one of two
// shapes is legal: a document reference (`doc` set, nothing else) or a
// category (`label` plus a non-empty `children` list).
type Entry struct {
	Doc       string  `yaml:"doc,omitempty"`
	Label     string  `yaml:"label,omitempty"`
	Collapsed bool    `yaml:"collapsed,omitempty"`
	Children  []Entry `yaml:"children,omitempty"`
}

// Declaration is the top-level structure of a sidebar file.
type Declaration struct {
	Sidebar []Entry `yaml:"sidebar"`
}

// Node is a validated navigation tree node. IsCategory distinguishes the
// two variants: categories carry Label/Collapsed/Children, document
// references carry DocumentID.
type Node struct {
	IsCategory bool
	Label      string
	Collapsed  bool
	Children   []*Node
	DocumentID string
}

// Tree is an immutable, validated sidebar tree. Sibling order mirrors the
// declaration and drives rendered sidebar order.
type Tree struct {
	Roots []*Node
}

// DanglingReference reports a document reference with no matching content
// file. TreePath locates the offending leaf, e.g. "Architecture > overview".
type DanglingReference struct {
	DocumentID string
	TreePath   string
}

func (d DanglingReference) Error() string {
	return fmt.Sprintf("dangling reference: %s (at %s)", d.DocumentID, d.TreePath)
}

// LoadDeclaration reads and parses a sidebar declaration file. Unknown
// keys are rejected so typos surface instead of silently vanishing.
func LoadDeclaration(path string) (*Declaration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nav file %s: %w", path, err)
	}
	var decl Declaration
	if err := yaml.UnmarshalStrict(raw, &decl); err != nil {
		return nil, fmt.Errorf("parse nav file %s: %w", path, err)
	}
	return &decl, nil
}

// BuildTree validates a declaration and produces the immutable tree.
// Modeling errors — an entry that is both or neither variant, an empty
// label, an empty document id, a category with zero children — fail the
// build with a message naming the offending position.
func BuildTree(decl *Declaration) (*Tree, error) {
	if decl == nil || len(decl.Sidebar) == 0 {
		return nil, fmt.Errorf("sidebar declaration is empty")
	}
	roots, err := buildNodes(decl.Sidebar, "sidebar")
	if err != nil {
		return nil, err
	}
	return &Tree{Roots: roots}, nil
}

func buildNodes(entries []Entry, at string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(entries))
	for i, e := range entries {
		pos := fmt.Sprintf("%s[%d]", at, i)
		switch {
		case e.Doc != "" && (e.Label != "" || len(e.Children) > 0 || e.Collapsed):
			return nil, fmt.Errorf("%s: entry is both a document reference and a category", pos)
		case e.Doc != "":
			nodes = append(nodes, &Node{DocumentID: e.Doc})
		case e.Label == "":
			return nil, fmt.Errorf("%s: entry has neither a doc nor a label", pos)
		case len(e.Children) == 0:
			return nil, fmt.Errorf("%s: category %q has no children", pos, e.Label)
		default:
			children, err := buildNodes(e.Children, fmt.Sprintf("%s(%s)", pos, e.Label))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &Node{
				IsCategory: true,
				Label:      e.Label,
				Collapsed:  e.Collapsed,
				Children:   children,
			})
		}
	}
	return nodes, nil
}

// ValidateAgainstStore checks every document reference against the set of
// known document ids. All dangling references are collected in one pass;
// an author fixing a sidebar sees every broken link at once.
func (t *Tree) ValidateAgainstStore(knownIDs map[string]bool) []DanglingReference {
	var dangling []DanglingReference
	t.walk(func(n *Node, trail []string) {
		if !n.IsCategory && !knownIDs[n.DocumentID] {
			path := n.DocumentID
			if len(trail) > 0 {
				path = strings.Join(trail, " > ") + " > " + n.DocumentID
			}
			dangling = append(dangling, DanglingReference{
				DocumentID: n.DocumentID,
				TreePath:   path,
			})
		}
	})
	return dangling
}

// Orphans returns the known document ids referenced by no leaf, sorted.
// Orphans are warnings, not errors: docs deliberately kept out of the
// sidebar are a legitimate pattern.
func (t *Tree) Orphans(knownIDs map[string]bool) []string {
	referenced := make(map[string]bool)
	t.walk(func(n *Node, _ []string) {
		if !n.IsCategory {
			referenced[n.DocumentID] = true
		}
	})

	var orphans []string
	for id := range knownIDs {
		if !referenced[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	return orphans
}

// Flatten returns every referenced document id in sidebar order. The tree
// is immutable, so repeated calls re-walk it and yield the same sequence.
func (t *Tree) Flatten() []string {
	var ids []string
	t.walk(func(n *Node, _ []string) {
		if !n.IsCategory {
			ids = append(ids, n.DocumentID)
		}
	})
	return ids
}

// walk visits every node depth-first in sibling order, passing the chain
// of ancestor category labels.
func (t *Tree) walk(visit func(n *Node, trail []string)) {
	var rec func(nodes []*Node, trail []string)
	rec = func(nodes []*Node, trail []string) {
		for _, n := range nodes {
			visit(n, trail)
			if n.IsCategory {
				rec(n.Children, append(trail, n.Label))
			}
		}
	}
	rec(t.Roots, nil)
}
