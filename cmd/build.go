package cmd

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/docsmith/docsmith/internal/config"
	"github.com/docsmith/docsmith/internal/content"
	"github.com/docsmith/docsmith/internal/model"
	"github.com/docsmith/docsmith/internal/nav"
)

const (
	baseLayout   = "base.html"
	homeLayout   = "home.html"
	singleLayout = "single.html"
)

// buildCmd renders the static site.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, sidebar, and layouts",
	Long: `The build command scans the content root, validates the sidebar
declaration against it, converts each Markdown document to HTML, applies
the templates from the layouts directory (including partials), copies
static assets, and writes the site into the configured output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig)
	},
}

func runBuildProcess(cfg config.Config) error {
	fmt.Println("Starting docsmith build...")

	store, err := content.Scan(cfg.ContentDir)
	if err != nil {
		return err
	}
	fmt.Printf("Scanned %d documents under '%s'.\n", store.Len(), cfg.ContentDir)

	tree, err := loadSidebar(cfg.NavFile, store)
	if err != nil {
		return err
	}

	if err := prepareOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.StaticDir); !os.IsNotExist(err) {
		if err := copyDirContents(cfg.StaticDir, cfg.OutputDir); err != nil {
			return fmt.Errorf("failed to copy static assets: %w", err)
		}
		fmt.Println("Static assets copied.")
	}

	templates, err := parseLayouts(cfg.LayoutsDir)
	if err != nil {
		return err
	}

	site := assembleSite(cfg, store, tree)

	mdParser := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	for _, doc := range store.Documents() {
		page := site.PagesByID[doc.ID]

		var htmlBuffer bytes.Buffer
		if err := mdParser.Convert(doc.Body, &htmlBuffer); err != nil {
			return fmt.Errorf("failed to convert markdown for '%s': %w", doc.SourcePath, err)
		}
		page.ContentHTML = template.HTML(htmlBuffer.String())

		if err := renderPage(templates, cfg.OutputDir, site, page); err != nil {
			return err
		}
	}

	if err := renderLanding(templates, cfg.OutputDir, site); err != nil {
		return err
	}

	fmt.Println("docsmith build completed.")
	return nil
}

// loadSidebar loads and validates the sidebar tree. A missing nav file
// downgrades to an empty sidebar with a warning so a fresh project can
// build before its navigation is authored; dangling references fail the
// build outright.
func loadSidebar(navFile string, store *content.Store) (*nav.Tree, error) {
	if _, err := os.Stat(navFile); os.IsNotExist(err) {
		fmt.Printf("Warning: nav file '%s' not found, building without a sidebar.\n", navFile)
		return nil, nil
	}
	decl, err := nav.LoadDeclaration(navFile)
	if err != nil {
		return nil, err
	}
	tree, err := nav.BuildTree(decl)
	if err != nil {
		return nil, fmt.Errorf("invalid sidebar declaration: %w", err)
	}
	if dangling := tree.ValidateAgainstStore(store.IDs()); len(dangling) > 0 {
		for _, d := range dangling {
			fmt.Println(d.Error())
		}
		return nil, fmt.Errorf("sidebar has %d dangling references", len(dangling))
	}
	return tree, nil
}

func prepareOutputDir(outputDir string) error {
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}
	return nil
}

// parseLayouts loads every .html file under layoutsDir: base.html and the
// partials first, the page layouts after, home.html last so it can
// redefine blocks the other layouts establish.
func parseLayouts(layoutsDir string) (*template.Template, error) {
	if _, err := os.Stat(layoutsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("layouts directory '%s' not found", layoutsDir)
	}

	var layoutFiles []string
	err := filepath.WalkDir(layoutsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			layoutFiles = append(layoutFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in '%s': %w", layoutsDir, err)
	}

	var basePath, homePath string
	var partialFiles, pageFiles []string
	for _, f := range layoutFiles {
		switch {
		case filepath.Base(f) == baseLayout && filepath.Dir(f) == layoutsDir:
			basePath = f
		case filepath.Base(f) == homeLayout && filepath.Dir(f) == layoutsDir:
			homePath = f
		case strings.HasPrefix(filepath.Dir(f), filepath.Join(layoutsDir, "partials")):
			partialFiles = append(partialFiles, f)
		default:
			pageFiles = append(pageFiles, f)
		}
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found directly in layouts directory '%s'", baseLayout, layoutsDir)
	}

	templates, err := template.ParseFiles(append([]string{basePath}, partialFiles...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}
	if len(pageFiles) > 0 {
		if templates, err = templates.ParseFiles(pageFiles...); err != nil {
			return nil, fmt.Errorf("failed to parse page layouts: %w", err)
		}
	}
	if homePath != "" {
		if templates, err = templates.ParseFiles(homePath); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", homeLayout, err)
		}
	}
	return templates, nil
}

// assembleSite builds the template-facing site value: one page per
// document plus the sidebar mapped from the navigation tree, document
// labels taken from page titles.
func assembleSite(cfg config.Config, store *content.Store, tree *nav.Tree) *model.Site {
	site := &model.Site{
		Title:       cfg.SiteTitle,
		Description: cfg.SiteDescription,
		BaseURL:     cfg.BaseURL,
		PagesByID:   make(map[string]*model.Page),
	}
	for _, doc := range store.Documents() {
		page := &model.Page{
			ID:        doc.ID,
			Title:     doc.Title,
			Summary:   doc.Summary,
			Layout:    doc.Layout,
			Permalink: "/" + doc.ID + "/",
		}
		site.Pages = append(site.Pages, page)
		site.PagesByID[doc.ID] = page
	}
	if tree != nil {
		site.Sidebar = sidebarItems(tree.Roots, site.PagesByID)
	}
	return site
}

func sidebarItems(nodes []*nav.Node, pages map[string]*model.Page) []*model.SidebarItem {
	items := make([]*model.SidebarItem, 0, len(nodes))
	for _, n := range nodes {
		if n.IsCategory {
			items = append(items, &model.SidebarItem{
				Label:     n.Label,
				Collapsed: n.Collapsed,
				Children:  sidebarItems(n.Children, pages),
			})
			continue
		}
		// References were validated against the store before this point.
		page := pages[n.DocumentID]
		items = append(items, &model.SidebarItem{
			Label:     page.Title,
			Permalink: page.Permalink,
		})
	}
	return items
}

// renderPage writes one document page, honoring the front-matter layout
// when it names a parsed template and falling back to single.html, then
// base.html.
func renderPage(templates *template.Template, outputDir string, site *model.Site, page *model.Page) error {
	layoutToExecute := singleLayout
	if page.Layout != "" {
		if templates.Lookup(page.Layout) != nil {
			layoutToExecute = page.Layout
		} else {
			fmt.Printf("Warning: layout '%s' for page '%s' not found, using '%s'\n", page.Layout, page.Title, layoutToExecute)
		}
	}
	if templates.Lookup(layoutToExecute) == nil {
		layoutToExecute = baseLayout
		if templates.Lookup(layoutToExecute) == nil {
			return fmt.Errorf("no layout available for page '%s'", page.Title)
		}
	}

	outputPath := filepath.Join(outputDir, filepath.FromSlash(page.ID), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", page.ID, err)
	}

	data := struct {
		Site *model.Site
		Page *model.Page
	}{Site: site, Page: page}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	defer outFile.Close()

	if err := templates.ExecuteTemplate(outFile, layoutToExecute, data); err != nil {
		return fmt.Errorf("failed to execute layout '%s' for page '%s': %w", layoutToExecute, page.Title, err)
	}
	fmt.Printf("Generated %s\n", outputPath)
	return nil
}

// renderLanding writes the site root index.html from site metadata only.
func renderLanding(templates *template.Template, outputDir string, site *model.Site) error {
	if templates.Lookup(homeLayout) == nil {
		return fmt.Errorf("homepage layout '%s' not found in layouts directory", homeLayout)
	}

	outputPath := filepath.Join(outputDir, "index.html")
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create homepage file '%s': %w", outputPath, err)
	}
	defer outFile.Close()

	data := struct {
		Site *model.Site
	}{Site: site}

	if err := templates.ExecuteTemplate(outFile, homeLayout, data); err != nil {
		return fmt.Errorf("failed to execute homepage layout: %w", err)
	}
	fmt.Printf("Generated %s\n", outputPath)
	return nil
}

// copyDirContents recursively copies contents from src to dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		return copyFile(path, dstPath)
	})
}

// copyFile copies a single file from srcFile to dstFile.
func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination directory for %s: %w", dstFile, err)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
