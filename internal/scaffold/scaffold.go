// Package scaffold creates placeholder documentation pages from a fixed
// section template. It never overwrites an existing file: re-running the
// scaffolder over a grown content tree is always safe.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Spec describes one page to scaffold. Path is relative to the content
// root and must end in a recognized content extension (.md or .mdx).
type Spec struct {
	Path        string `yaml:"path"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Status classifies the outcome of a single scaffold call.
type Status int

const (
	// StatusCreated means a new placeholder file was written.
	StatusCreated Status = iota
	// StatusSkipped means the target already existed and was left untouched.
	StatusSkipped
	// StatusError means the spec failed; Result.Err holds the cause.
	StatusError
)

// Result is the outcome of scaffolding one Spec.
type Result struct {
	Path   string
	Status Status
	Err    error
}

// InvalidPathError reports a scaffold target that is not a usable relative
// path inside the content root.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid target path %q: %s", e.Path, e.Reason)
}

// IOError wraps a filesystem failure while creating a placeholder.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// sectionHeadings is the fixed skeleton every placeholder page carries,
// in render order.
var sectionHeadings = []string{
	"Introduction",
	"Key Concepts",
	"Implementation Details",
	"Code Examples",
	"Best Practices",
	"Common Patterns",
	"Troubleshooting",
	"Related Topics",
	"Next Steps",
}

const (
	placeholderBody = "(Content to be added)"
	trailingNotice  = "*This page is a placeholder. Contributions are welcome.*"
	genericOverview = "Documentation for this topic."
)

var contentExtensions = []string{".md", ".mdx"}

// Render produces the full placeholder file contents for a spec. The
// output depends only on Title and Description, so repeated runs are
// byte-identical.
func Render(spec Spec) string {
	overview := spec.Description
	if overview == "" {
		overview = genericOverview
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", spec.Title)
	fmt.Fprintf(&b, "## Overview\n\n%s\n\n", overview)
	for _, heading := range sectionHeadings {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", heading, placeholderBody)
	}
	b.WriteString("---\n\n")
	b.WriteString(trailingNotice)
	b.WriteString("\n")
	return b.String()
}

// resolveTarget validates spec.Path and resolves it to an absolute path
// under root. Paths that are absolute, carry no recognized extension, or
// escape the root via ".." are rejected.
func resolveTarget(root string, specPath string) (string, error) {
	if specPath == "" {
		return "", &InvalidPathError{Path: specPath, Reason: "empty path"}
	}
	if filepath.IsAbs(specPath) || strings.HasPrefix(specPath, "/") {
		return "", &InvalidPathError{Path: specPath, Reason: "must be relative to the content root"}
	}

	ext := strings.ToLower(filepath.Ext(specPath))
	recognized := false
	for _, e := range contentExtensions {
		if ext == e {
			recognized = true
			break
		}
	}
	if !recognized {
		return "", &InvalidPathError{Path: specPath, Reason: "unrecognized content extension"}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &IOError{Path: specPath, Cause: err}
	}
	target := filepath.Join(absRoot, filepath.FromSlash(specPath))

	// filepath.Join cleans the path, so a surviving escape means the
	// spec pointed outside the root.
	if target != absRoot && !strings.HasPrefix(target, absRoot+string(filepath.Separator)) {
		return "", &InvalidPathError{Path: specPath, Reason: "escapes the content root"}
	}
	if target == absRoot {
		return "", &InvalidPathError{Path: specPath, Reason: "resolves to the content root itself"}
	}
	return target, nil
}

// Scaffold creates the placeholder file described by spec under root.
// An existing file at the target is reported as Skipped and left
// byte-for-byte untouched. The exists check and the write are not atomic
// against external concurrent writers; this tool is a single-developer,
// one-shot command and accepts that.
func Scaffold(root string, spec Spec) Result {
	target, err := resolveTarget(root, spec.Path)
	if err != nil {
		return Result{Path: spec.Path, Status: StatusError, Err: err}
	}

	if _, err := os.Stat(target); err == nil {
		return Result{Path: spec.Path, Status: StatusSkipped}
	} else if !os.IsNotExist(err) {
		return Result{Path: spec.Path, Status: StatusError, Err: &IOError{Path: spec.Path, Cause: err}}
	}

	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return Result{Path: spec.Path, Status: StatusError, Err: &IOError{Path: spec.Path, Cause: err}}
	}
	if err := os.WriteFile(target, []byte(Render(spec)), 0o644); err != nil {
		return Result{Path: spec.Path, Status: StatusError, Err: &IOError{Path: spec.Path, Cause: err}}
	}
	return Result{Path: spec.Path, Status: StatusCreated}
}

// ScaffoldAll runs every spec in input order. A failing spec does not stop
// the batch; the returned slice holds one Result per input Spec, in order.
func ScaffoldAll(root string, specs []Spec) []Result {
	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		results = append(results, Scaffold(root, spec))
	}
	return results
}
