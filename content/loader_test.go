package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/multierr"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestParseYAML(t *testing.T) {
	raw := `---
path: /blog/angular-forms/
title: Angular Forms
date: 2018-03-10
author: Simar
published: true
summary: Reactive forms.
---
# Hello

Body text.
`
	p, err := Parse("2018/angular-forms.md", []byte(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Path != "/blog/angular-forms" {
		t.Errorf("Path = %q, want /blog/angular-forms", p.Path)
	}
	if p.Title != "Angular Forms" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.DateString() != "2018-03-10" {
		t.Errorf("Date = %q, want 2018-03-10", p.DateString())
	}
	if p.Author != "Simar" {
		t.Errorf("Author = %q", p.Author)
	}
	if !p.Published {
		t.Error("Published should be true")
	}
	if p.Summary != "Reactive forms." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if !strings.Contains(p.Body, "Body text.") || strings.Contains(p.Body, "title:") {
		t.Errorf("Body = %q", p.Body)
	}
	if p.ID == "" {
		t.Error("ID should be set")
	}
	again, _ := Parse("2018/angular-forms.md", []byte(raw))
	if again.ID != p.ID {
		t.Errorf("ID not stable: %q != %q", again.ID, p.ID)
	}
	other, _ := Parse("2018/other.md", []byte(raw))
	if other.ID == p.ID {
		t.Error("different files should get different IDs")
	}
}

func TestParseTOML(t *testing.T) {
	raw := `+++
title = "Kotlin Coroutines"
date = 2019-07-01
author = "Simar"
published = true
+++
Body.
`
	p, err := Parse("kotlin-coroutines.md", []byte(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Title != "Kotlin Coroutines" || p.DateString() != "2019-07-01" || !p.Published {
		t.Errorf("unexpected post: %+v", p)
	}
	if p.Path != "/blog/kotlin-coroutines" {
		t.Errorf("derived Path = %q", p.Path)
	}
}

func TestParseFallbacks(t *testing.T) {
	p, err := Parse("my_first-post.md", []byte("no front-matter here\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Title != "My First Post" {
		t.Errorf("Title = %q, want My First Post", p.Title)
	}
	if p.Path != "/blog/my-first-post" {
		t.Errorf("Path = %q", p.Path)
	}
	if p.Published {
		t.Error("posts without a published flag must stay drafts")
	}
	if !p.Date.IsZero() {
		t.Errorf("Date = %v, want zero", p.Date)
	}
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2018-03-10", "2018-03-10"},
		{"'2018-03-10T08:30:00Z'", "2018-03-10"},
		{"'2018-03-10 23:59:00'", "2018-03-10"},
		{"''", ""},
	}
	for _, tt := range tests {
		raw := "---\ndate: " + tt.input + "\n---\n"
		p, err := Parse("x.md", []byte(raw))
		if err != nil {
			t.Errorf("Parse(date %s) failed: %v", tt.input, err)
			continue
		}
		if p.DateString() != tt.want {
			t.Errorf("date %s -> %q, want %q", tt.input, p.DateString(), tt.want)
		}
	}
}

func TestParseBadDate(t *testing.T) {
	_, err := Parse("bad.md", []byte("---\ndate: last tuesday\n---\n"))
	if err == nil {
		t.Fatal("expected an error for an unparseable date")
	}
	if !strings.Contains(err.Error(), "bad.md") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\ndate: 2018-01-01\npublished: true\n---\n")
	writeFile(t, dir, "b.md", "---\ntitle: B\ndate: 2018-01-02\npublished: false\n---\n")
	writeFile(t, dir, "nested/c.md", "---\ntitle: C\ndate: 2018-01-03\npublished: true\n---\n")
	writeFile(t, dir, "broken.md", "---\ndate: yesterday\n---\n")
	writeFile(t, dir, "dup.md", "---\npath: /blog/a\ndate: 2018-01-04\npublished: true\n---\n")
	writeFile(t, dir, "notes.txt", "ignored")

	posts, err := Load(dir)
	if err == nil {
		t.Fatal("expected aggregated errors")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	// lexical walk order: a.md, b.md, broken.md, dup.md, nested/c.md
	if posts[0].Title != "A" || posts[0].Seq != 0 {
		t.Errorf("posts[0] = %+v", posts[0])
	}
	if posts[2].Source != "nested/c.md" || posts[2].Seq != 4 {
		t.Errorf("posts[2] = %+v", posts[2])
	}
}

func TestLoadDuplicateDraftPathAllowed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\npath: /blog/x\npublished: true\n---\n")
	writeFile(t, dir, "b.md", "---\npath: /blog/x\npublished: false\n---\n")

	posts, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("got %d posts, want 2", len(posts))
	}
}

// lockedFS fails to list one directory, like a subtree without read permission.
type lockedFS struct {
	fstest.MapFS
	locked string
}

func (f lockedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == f.locked {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return f.MapFS.ReadDir(name)
}

func TestLoadFSSkipsUnreadableDir(t *testing.T) {
	fsys := lockedFS{
		MapFS: fstest.MapFS{
			"a.md":        {Data: []byte("---\ntitle: A\npublished: true\n---\n")},
			"locked/b.md": {Data: []byte("---\ntitle: B\npublished: true\n---\n")},
			"z.md":        {Data: []byte("---\ntitle: Z\npublished: true\n---\n")},
		},
		locked: "locked",
	}

	posts, err := LoadFS(fsys)
	if err == nil {
		t.Fatal("expected the unreadable directory to be reported")
	}
	if errors.Is(err, ErrUnreadableDir) {
		t.Errorf("a subdirectory failure must not abort the load: %v", err)
	}
	if errs := multierr.Errors(err); len(errs) != 1 || !strings.Contains(errs[0].Error(), "locked") {
		t.Errorf("errors = %v, want one naming locked", errs)
	}
	if len(posts) != 2 || posts[0].Title != "A" || posts[1].Title != "Z" {
		t.Errorf("posts = %+v, want A and Z", posts)
	}
}

func TestLoadUnreadableRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "posts")
	writeFile(t, dir, "posts", "not a directory")

	posts, err := Load(file)
	if !errors.Is(err, ErrUnreadableDir) {
		t.Fatalf("Load(file) error = %v, want ErrUnreadableDir", err)
	}
	if posts != nil {
		t.Errorf("posts = %+v, want nil", posts)
	}
}

func TestLoadMissingDir(t *testing.T) {
	posts, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil || len(posts) != 0 {
		t.Errorf("Load(missing) = %v, %v; want empty, nil", posts, err)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"blog/x":   "/blog/x",
		"/blog/x/": "/blog/x",
		" /a//b/ ": "/a/b",
		"/":        "/",
		"":         "/",
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Go & Templ!  ", "go-templ"},
		{"already-slugged", "already-slugged"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
