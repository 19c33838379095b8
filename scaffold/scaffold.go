// Package scaffold renders the starter files of a new portal site and of
// new posts from embedded text/template files.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

const siteRoot = "templates/site"

// SiteData holds the variables passed to every site template.
type SiteData struct {
	SiteName string
	Author   string
	Date     string
}

// PostData holds the variables passed to the post template.
type PostData struct {
	Title  string
	Slug   string
	Author string
	Date   string
}

// NewSiteData derives the template data for a site created in dir.
func NewSiteData(dir, author string, now time.Time) SiteData {
	return SiteData{
		SiteName: toTitle(filepath.Base(filepath.Clean(dir))),
		Author:   author,
		Date:     now.Format("2006-01-02"),
	}
}

// Site writes the starter site into dir, which must not exist yet. It
// returns the created files relative to dir.
func Site(dir string, data SiteData) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	var created []string
	err := fs.WalkDir(Templates, siteRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, siteRoot), "/")
		outPath := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		tmpl, err := parse(p)
		if err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", p, err)
		}
		created = append(created, strings.TrimSuffix(rel, ".tmpl"))
		return nil
	})
	return created, err
}

// Post renders a new draft post to w.
func Post(w io.Writer, data PostData) error {
	tmpl, err := parse(path.Join("templates", "post.md.tmpl"))
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

func parse(name string) (*template.Template, error) {
	raw, err := Templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	tmpl, err := template.New(path.Base(name)).Funcs(template.FuncMap{
		"quote": quote,
	}).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// quote renders s as a double-quoted YAML scalar.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(parts, " "))
}
