package portal

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/simars/portal/views"
)

// Link is a labelled external profile link.
type Link = views.Link

// SiteConfig holds all configuration for a portal site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Simars.io")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Intro            string `mapstructure:"intro"`
	Links            []Link `mapstructure:"links"`
	BlogHeading      string `mapstructure:"blog_heading"`
	ExternalBlogURL  string `mapstructure:"external_blog_url"`
	ExternalBlogName string `mapstructure:"external_blog_name"` // default "Medium"

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	ContentDir   string `mapstructure:"content_dir"`   // Markdown root (default "content")
	DatabasePath string `mapstructure:"database_path"` // SQLite path (default "data/portal.db")
	OutputDir    string `mapstructure:"output_dir"`    // Static export target (default "public_html")

	Watch          bool          `mapstructure:"watch"`           // Reload content on file changes
	MetricsEnabled bool          `mapstructure:"metrics_enabled"` // Serve /metrics
	PostCacheTTL   time.Duration `mapstructure:"post_cache_ttl"`  // Post cache TTL (default 5min)

	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogToStdout   bool   `mapstructure:"log_to_stdout"`
	LogFormatJSON bool   `mapstructure:"log_format_json"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Simars.io"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.BlogHeading == "" {
		c.BlogHeading = "Programming, Architecture, Concepts & Trends"
	}
	if c.ExternalBlogName == "" {
		c.ExternalBlogName = "Medium"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portal.db"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public_html"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// PostsDir is where post markdown files live.
func (c SiteConfig) PostsDir() string {
	return filepath.Join(c.ContentDir, "posts")
}

// AboutFile is the markdown document rendered on the About page.
func (c SiteConfig) AboutFile() string {
	return filepath.Join(c.ContentDir, "pages", "about.md")
}

// View returns the subset of the config the templates read.
func (c SiteConfig) View() views.SiteConfig {
	return views.SiteConfig{
		Name:             c.Name,
		URL:              c.URL,
		Description:      c.Description,
		Author:           c.Author,
		Intro:            c.Intro,
		Links:            c.Links,
		BlogHeading:      c.BlogHeading,
		ExternalBlogURL:  c.ExternalBlogURL,
		ExternalBlogName: c.ExternalBlogName,
	}
}

// LoadConfig reads the YAML config file at path (optional when empty or
// missing) and applies PORTAL_* environment overrides, e.g. PORTAL_ADDR.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_dir", "content")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_to_stdout", true)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return SiteConfig{}, fmt.Errorf("portal: read config: %w", err)
		}
	}

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{
		"name", "url", "description", "author", "intro", "blog_heading",
		"external_blog_url", "external_blog_name", "database_path", "output_dir",
		"watch", "metrics_enabled", "post_cache_ttl", "log_file", "log_format_json",
	} {
		if err := v.BindEnv(key); err != nil {
			return SiteConfig{}, fmt.Errorf("portal: bind env %s: %w", key, err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("portal: decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "static").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the default page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
