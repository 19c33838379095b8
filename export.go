package portal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	log "github.com/sirupsen/logrus"
)

// reservedPaths are served by fixed pages; posts claiming them are not
// reachable and are skipped on export.
var reservedPaths = map[string]bool{
	"/":            true,
	"/blog":        true,
	"/about":       true,
	"/public":      true,
	"/feed.xml":    true,
	"/sitemap.xml": true,
	"/robots.txt":  true,
	"/metrics":     true,
}

// ExportStats summarises a static export.
type ExportStats struct {
	Pages int
	Posts int
	Files int
}

// Export renders the whole site into outDir as static files. The directory
// is emptied first. Every page is written as <path>/index.html so the tree
// can be served by any static file host.
func (a *App) Export(ctx context.Context, outDir string) (ExportStats, error) {
	var stats ExportStats
	if err := a.checkOutDir(outDir); err != nil {
		return stats, err
	}
	if err := os.RemoveAll(outDir); err != nil {
		return stats, fmt.Errorf("portal: clean %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stats, fmt.Errorf("portal: create %s: %w", outDir, err)
	}

	pages := []struct {
		path   string
		render func(context.Context) (templ.Component, error)
	}{
		{"/", a.HomePage},
		{"/blog", a.BlogPage},
		{"/about", a.AboutPage},
	}
	for _, p := range pages {
		page, err := p.render(ctx)
		if err != nil {
			return stats, fmt.Errorf("portal: render %s: %w", p.path, err)
		}
		if err := writeComponent(ctx, outDir, p.path, page); err != nil {
			return stats, err
		}
		stats.Pages++
	}

	posts, err := a.publishedPosts(ctx)
	if err != nil {
		return stats, err
	}
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if reservedPaths[post.Path] {
			log.Warnf("export: %s claims reserved path %s, skipping", post.Source, post.Path)
			continue
		}
		if err := writeComponent(ctx, outDir, post.Path, a.Views.Post(a.Config.View(), post)); err != nil {
			return stats, err
		}
		stats.Posts++
	}

	notFound := filepath.Join(outDir, "404.html")
	if err := renderToFile(ctx, notFound, a.Views.NotFound(a.Config.View())); err != nil {
		return stats, err
	}
	stats.Files++

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"feed.xml", func(w io.Writer) error { return writeRSS(w, a.Config.View(), posts) }},
		{"sitemap.xml", func(w io.Writer) error { return writeSitemap(w, a.Config.URL, posts) }},
		{"robots.txt", func(w io.Writer) error {
			_, err := io.WriteString(w, robotsTxt(a.Config.URL))
			return err
		}},
	}
	for _, f := range files {
		var buf bytes.Buffer
		if err := f.write(&buf); err != nil {
			return stats, fmt.Errorf("portal: render %s: %w", f.name, err)
		}
		if err := writeFile(filepath.Join(outDir, f.name), buf.Bytes()); err != nil {
			return stats, err
		}
		stats.Files++
	}

	n, err := a.exportAssets(filepath.Join(outDir, "public"))
	if err != nil {
		return stats, err
	}
	stats.Files += n

	log.Infof("exported %d pages, %d posts, %d files to %s", stats.Pages, stats.Posts, stats.Files, outDir)
	return stats, nil
}

// checkOutDir refuses an output directory whose removal would delete the
// site sources or the working directory: one that equals or contains the
// content dir, the static dir or the current directory.
func (a *App) checkOutDir(outDir string) error {
	if strings.TrimSpace(outDir) == "" {
		return fmt.Errorf("portal: empty output directory")
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("portal: resolve %s: %w", outDir, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("portal: working directory: %w", err)
	}
	protected := []struct{ name, dir string }{
		{"working directory", cwd},
		{"content directory", a.Config.ContentDir},
		{"static directory", a.staticDir},
	}
	for _, p := range protected {
		dir, err := filepath.Abs(p.dir)
		if err != nil {
			return fmt.Errorf("portal: resolve %s: %w", p.dir, err)
		}
		if within(out, dir) {
			return fmt.Errorf("portal: refusing to export into %s: it contains the %s %s", outDir, p.name, p.dir)
		}
	}
	return nil
}

// within reports whether dir is parent or a descendant of it.
func within(parent, dir string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// exportAssets copies the user's static dir and then the embedded
// stylesheet into dst.
func (a *App) exportAssets(dst string) (int, error) {
	count := 0
	if info, err := os.Stat(a.staticDir); err == nil && info.IsDir() {
		n, err := copyTree(os.DirFS(a.staticDir), dst)
		if err != nil {
			return count, fmt.Errorf("portal: copy static assets: %w", err)
		}
		count += n
	}
	embedded, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		return count, err
	}
	n, err := copyTree(embedded, dst)
	if err != nil {
		return count, fmt.Errorf("portal: copy embedded assets: %w", err)
	}
	return count + n, nil
}

func copyTree(src fs.FS, dst string) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		count++
		return writeFile(filepath.Join(dst, filepath.FromSlash(p)), data)
	})
	return count, err
}

func writeComponent(ctx context.Context, outDir, urlPath string, c templ.Component) error {
	rel := filepath.FromSlash(strings.TrimPrefix(urlPath, "/"))
	return renderToFile(ctx, filepath.Join(outDir, rel, "index.html"), c)
}

func renderToFile(ctx context.Context, name string, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("portal: render %s: %w", name, err)
	}
	return writeFile(name, buf.Bytes())
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("portal: create dir for %s: %w", name, err)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("portal: write %s: %w", name, err)
	}
	return nil
}
