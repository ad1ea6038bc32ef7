package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/docsmith/docsmith/internal/scaffold"
)

var (
	scaffoldRoot     string
	scaffoldSpecFile string
)

// scaffoldCmd batch-creates placeholder pages. One line is printed per
// spec; existing files are skipped, never overwritten.
var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Creates placeholder content files from a spec list",
	Long: `The scaffold command reads a YAML list of page specs (path, title,
description) and creates a placeholder file for each one under the
content root. Existing files are reported as SKIPPED and left untouched,
so the command is safe to re-run over a growing content tree. A failing
spec does not stop the batch; the exit code is non-zero if any spec
failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := scaffoldRoot
		if root == "" {
			root = appConfig.ContentDir
		}
		return runScaffold(root, scaffoldSpecFile)
	},
}

func runScaffold(root, specFile string) error {
	specs, err := loadSpecs(specFile)
	if err != nil {
		return err
	}

	results := scaffold.ScaffoldAll(root, specs)

	var created, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case scaffold.StatusCreated:
			created++
			fmt.Printf("CREATED %s\n", r.Path)
		case scaffold.StatusSkipped:
			skipped++
			fmt.Printf("SKIPPED %s\n", r.Path)
		case scaffold.StatusError:
			failed++
			fmt.Printf("ERROR %s: %v\n", r.Path, r.Err)
		}
	}
	fmt.Printf("scaffold: %d created, %d skipped, %d errors\n", created, skipped, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d specs failed", failed, len(results))
	}
	return nil
}

// loadSpecs reads the spec file: a YAML list of {path, title, description}
// entries. An unreadable or unparsable file is fatal; there is no per-item
// work to continue with.
func loadSpecs(path string) ([]scaffold.Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file %s: %w", path, err)
	}
	var specs []scaffold.Spec
	if err := yaml.UnmarshalStrict(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse spec file %s: %w", path, err)
	}
	return specs, nil
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldRoot, "root", "", "content root directory (default: configured contentDir)")
	scaffoldCmd.Flags().StringVar(&scaffoldSpecFile, "spec-file", "", "YAML file listing pages to scaffold")
	_ = scaffoldCmd.MarkFlagRequired("spec-file")
	rootCmd.AddCommand(scaffoldCmd)
}
