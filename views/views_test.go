package views

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/simars/portal/content"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func testConfig() SiteConfig {
	return SiteConfig{
		Name:             "Simars.io",
		URL:              "https://simars.io",
		Author:           "Simar Paul Singh",
		Intro:            "My name is *Simar*.",
		BlogHeading:      "Programming, Architecture, Concepts & Trends",
		ExternalBlogURL:  "https://medium.com/simars",
		ExternalBlogName: "Medium",
		Links: []Link{
			{Label: "GitHub", URL: "https://github.com/simars"},
			{Label: "Medium", URL: "https://medium.com/simars"},
		},
	}
}

func TestByline(t *testing.T) {
	date, _ := time.Parse(content.DateLayout, "2018-03-10")
	tests := []struct {
		post content.Post
		want string
	}{
		{content.Post{Author: "Simar", Date: date}, "Posted by Simar on 2018-03-10"},
		{content.Post{Date: date}, "Posted by Anonymous on 2018-03-10"},
		{content.Post{Author: "   ", Date: date}, "Posted by Anonymous on 2018-03-10"},
		{content.Post{Author: "Simar"}, "Posted by Simar"},
	}
	for _, tt := range tests {
		if got := Byline(tt.post); got != tt.want {
			t.Errorf("Byline(%+v) = %q, want %q", tt.post, got, tt.want)
		}
	}
}

func TestPostListEmpty(t *testing.T) {
	if got := renderString(t, PostList(nil)); got != "" {
		t.Errorf("PostList(nil) = %q, want empty", got)
	}
}

func TestPostEntry(t *testing.T) {
	date, _ := time.Parse(content.DateLayout, "2018-03-10")
	got := renderString(t, PostEntry(content.Post{
		Path:  "/blog/forms",
		Title: "Forms <&> Validation",
		Date:  date,
	}))
	want := `<div class="post-entry"><h3><a href="/blog/forms">Forms &lt;&amp;&gt; Validation</a></h3>` +
		`<small>Posted by Anonymous on 2018-03-10</small><br/><br/><hr/></div>`
	if got != want {
		t.Errorf("PostEntry =\n%s\nwant\n%s", got, want)
	}
}

func TestPostEntrySanitizesHref(t *testing.T) {
	got := renderString(t, PostEntry(content.Post{Path: "javascript:alert(1)", Title: "x"}))
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe href rendered: %s", got)
	}
}

func TestPostListOrderAndCount(t *testing.T) {
	var posts []content.Post
	for i := 0; i < 5; i++ {
		posts = append(posts, content.Post{Path: fmt.Sprintf("/blog/%d", i), Title: fmt.Sprintf("T%d", i)})
	}
	got := renderString(t, PostList(posts))
	if n := strings.Count(got, `class="post-entry"`); n != 5 {
		t.Errorf("rendered %d entries, want 5", n)
	}
	last := -1
	for _, p := range posts {
		idx := strings.Index(got, `href="`+p.Path+`"`)
		if idx <= last {
			t.Fatalf("%s rendered out of order", p.Path)
		}
		last = idx
	}
}

func TestHome(t *testing.T) {
	cfg := testConfig()
	got := renderString(t, Home(cfg, []content.Post{{Path: "/blog/a", Title: "A"}}))
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Welcome to my portal | Simars.io",
		"<em>Simar</em>",
		`<h3 class="row links">`,
		`href="https://github.com/simars" target="_blank"`,
		"Recent Posts",
		"Programming, Architecture, Concepts &amp; Trends",
		`href="/blog/a"`,
		`Complete Blog <a href="/blog">[Here]</a>`,
		`application/ld+json`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Home missing %q", want)
		}
	}
}

func TestHomeWithoutExternalBlog(t *testing.T) {
	cfg := testConfig()
	cfg.ExternalBlogURL = ""
	got := renderString(t, Home(cfg, nil))
	if strings.Contains(got, "Also on") || strings.Contains(got, " or on ") {
		t.Errorf("external blog mention rendered without URL")
	}
	if strings.Contains(got, "post-entry") {
		t.Errorf("empty home rendered entries")
	}
}

func TestBlog(t *testing.T) {
	got := renderString(t, Blog(testConfig(), []content.Post{{Path: "/blog/a", Title: "A"}}))
	if !strings.Contains(got, "<title>Blog | Simars.io</title>") {
		t.Errorf("Blog title missing: %s", got)
	}
	if !strings.Contains(got, `<p>Also on <a href="https://medium.com/simars"`) {
		t.Errorf("Also on link missing")
	}
}

func TestAbout(t *testing.T) {
	got := renderString(t, About(testConfig(), templ.Raw("<p>bio</p>")))
	if !strings.Contains(got, "About Me") || !strings.Contains(got, "<p>bio</p>") {
		t.Errorf("About output = %s", got)
	}
	// nil body is allowed
	renderString(t, About(testConfig(), nil))
}

func TestPost(t *testing.T) {
	date, _ := time.Parse(content.DateLayout, "2019-01-02")
	got := renderString(t, Post(testConfig(), content.Post{
		Path:    "/blog/hello",
		Title:   "Hello",
		Author:  "Simar",
		Date:    date,
		Summary: "greeting",
		Body:    "## Section\n\ntext",
	}))
	for _, want := range []string{
		"<title>Hello | Simars.io</title>",
		`<meta name="description" content="greeting"/>`,
		`og:type" content="article"`,
		"Posted by Simar on 2019-01-02",
		`<h2 id="section">Section</h2>`,
		`"datePublished":"2019-01-02"`,
		`<link rel="canonical" href="https://simars.io/blog/hello"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Post missing %q", want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://simars.io", nil, "https://simars.io"},
		{"https://simars.io/", nil, "https://simars.io"},
		{"https://simars.io", []string{"blog"}, "https://simars.io/blog"},
		{"https://simars.io", []string{"/blog/x"}, "https://simars.io/blog/x"},
		{"https://simars.io/sub", []string{"about"}, "https://simars.io/sub/about"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}
