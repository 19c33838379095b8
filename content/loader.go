package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayouts are tried in order when parsing the front-matter date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// idSpace namespaces the name-based post IDs.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://simars.io/posts"))

// frontMatter mirrors the metadata block at the top of a post file.
// Both YAML (---) and TOML (+++) blocks are accepted.
type frontMatter struct {
	Path      string `yaml:"path" toml:"path"`
	Title     string `yaml:"title" toml:"title"`
	Date      any    `yaml:"date" toml:"date"`
	Author    string `yaml:"author" toml:"author"`
	Published bool   `yaml:"published" toml:"published"`
	Summary   string `yaml:"summary" toml:"summary"`
}

// ErrUnreadableDir reports that the content directory itself could not be
// read. No posts are returned with it.
var ErrUnreadableDir = errors.New("content directory unreadable")

// Load reads every *.md file below dir. A missing dir yields no posts.
// See LoadFS for how unreadable files and subdirectories are handled.
func Load(dir string) ([]Post, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every *.md file in fsys. Files and subdirectories that
// cannot be read or parsed are skipped; their errors are combined into the
// returned error while the rest of the posts are still returned. Only a
// failure to read the root aborts the load, with ErrUnreadableDir.
func LoadFS(fsys fs.FS) ([]Post, error) {
	var (
		files []string
		errs  error
	)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", p, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(d.Name()), ".md") {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableDir, err)
	}

	var (
		posts []Post
		paths = make(map[string]string)
	)
	for seq, rel := range files {
		raw, err := fs.ReadFile(fsys, rel)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", rel, err))
			continue
		}
		p, err := Parse(rel, raw)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		p.Seq = seq

		if p.Published {
			if other, dup := paths[p.Path]; dup {
				errs = multierr.Append(errs, fmt.Errorf("%s: path %q already used by %s", rel, p.Path, other))
				continue
			}
			paths[p.Path] = rel
		}
		posts = append(posts, p)
	}
	return posts, errs
}

// Parse builds a Post from the raw bytes of a markdown file. rel is the
// file's slash-separated path relative to the content directory; it seeds
// the ID and the fallbacks for a missing title or path.
func Parse(rel string, raw []byte) (Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return Post{}, fmt.Errorf("%s: front-matter: %w", rel, err)
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", rel, err)
	}

	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		words := strings.NewReplacer("-", " ", "_", " ").Replace(base)
		title = cases.Title(language.English).String(words)
	}
	urlPath := strings.TrimSpace(fm.Path)
	if urlPath == "" {
		urlPath = "/blog/" + Slugify(base)
	}

	return Post{
		ID:        uuid.NewSHA1(idSpace, []byte(rel)).String(),
		Path:      NormalizePath(urlPath),
		Title:     title,
		Date:      date,
		Author:    strings.TrimSpace(fm.Author),
		Published: fm.Published,
		Summary:   strings.TrimSpace(fm.Summary),
		Body:      string(body),
		Source:    rel,
	}, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return truncateDay(d), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateDay(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD", s)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v", v)
	}
}

// truncateDay keeps only the calendar date, since dates order posts by day.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizePath returns p with a leading slash and no trailing slash.
func NormalizePath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	return path.Clean(p)
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
