package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsmith/docsmith/internal/content"
	"github.com/docsmith/docsmith/internal/nav"
)

var (
	validateRoot    string
	validateNavFile string
)

// validateNavCmd checks the sidebar declaration against the content on
// disk. Every dangling reference is reported (not just the first);
// orphaned documents are warnings and never affect the exit code.
var validateNavCmd = &cobra.Command{
	Use:   "validate-nav",
	Short: "Validates the sidebar navigation against the content store",
	Long: `The validate-nav command loads the sidebar declaration, builds the
navigation tree, and checks every document reference against the files
actually present under the content root. All dangling references are
collected and printed in one pass. Content files referenced by no sidebar
entry are printed as warnings only: keeping a document out of the sidebar
is a legitimate pattern.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := validateRoot
		if root == "" {
			root = appConfig.ContentDir
		}
		navFile := validateNavFile
		if navFile == "" {
			navFile = appConfig.NavFile
		}
		return runValidateNav(root, navFile)
	},
}

func runValidateNav(root, navFile string) error {
	decl, err := nav.LoadDeclaration(navFile)
	if err != nil {
		return err
	}
	tree, err := nav.BuildTree(decl)
	if err != nil {
		return fmt.Errorf("invalid sidebar declaration: %w", err)
	}

	store, err := content.Scan(root)
	if err != nil {
		return err
	}
	knownIDs := store.IDs()

	dangling := tree.ValidateAgainstStore(knownIDs)
	for _, d := range dangling {
		fmt.Println(d.Error())
	}
	orphans := tree.Orphans(knownIDs)
	for _, id := range orphans {
		fmt.Printf("warning: orphaned document: %s\n", id)
	}

	fmt.Printf("validate-nav: %d documents, %d dangling references, %d orphans\n",
		store.Len(), len(dangling), len(orphans))

	if len(dangling) > 0 {
		return fmt.Errorf("%d dangling references", len(dangling))
	}
	return nil
}

func init() {
	validateNavCmd.Flags().StringVar(&validateRoot, "root", "", "content root directory (default: configured contentDir)")
	validateNavCmd.Flags().StringVar(&validateNavFile, "nav-file", "", "sidebar declaration file (default: configured navFile)")
	rootCmd.AddCommand(validateNavCmd)
}
