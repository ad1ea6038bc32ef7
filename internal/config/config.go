package config

// Config holds the site-wide settings loaded from config.yaml,
// DOCSMITH_* environment variables, and command-line flags.
type Config struct {
	SiteTitle       string `mapstructure:"siteTitle"`
	SiteDescription string `mapstructure:"siteDescription"`
	BaseURL         string `mapstructure:"baseURL"`
	ContentDir      string `mapstructure:"contentDir"`
	NavFile         string `mapstructure:"navFile"`
	LayoutsDir      string `mapstructure:"layoutsDir"`
	StaticDir       string `mapstructure:"staticDir"`
	OutputDir       string `mapstructure:"outputDir"`
}
