package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/simars/portal/content"
)

// AnonymousAuthor stands in for posts without an author.
const AnonymousAuthor = "Anonymous"

// Byline returns "Posted by {author} on {date}". An empty author becomes
// AnonymousAuthor and an undated post drops the " on {date}" part.
func Byline(p content.Post) string {
	author := strings.TrimSpace(p.Author)
	if author == "" {
		author = AnonymousAuthor
	}
	line := "Posted by " + author
	if d := p.DateString(); d != "" {
		line += " on " + d
	}
	return line
}

// PostEntry renders one listing block: linked title, byline and a rule.
func PostEntry(p content.Post) templ.Component {
	return component(func(h *markup) {
		h.raw(`<div class="post-entry"><h3><a href="`)
		h.href(p.Path)
		h.raw(`">`)
		h.text(p.Title)
		h.raw(`</a></h3><small>`)
		h.text(Byline(p))
		h.raw(`</small><br/><br/><hr/></div>`)
	})
}

// PostList renders posts in the given order. An empty list renders nothing.
func PostList(posts []content.Post) templ.Component {
	return component(func(h *markup) {
		for _, p := range posts {
			h.child(PostEntry(p))
		}
	})
}

// BlogSection is the blog heading, the external blog mention and the list.
func BlogSection(cfg SiteConfig, posts []content.Post) templ.Component {
	return component(func(h *markup) {
		h.raw(`<section class="blog">`)
		if cfg.BlogHeading != "" {
			h.raw(`<h1>`)
			h.text(cfg.BlogHeading)
			h.raw(`</h1>`)
		}
		if cfg.ExternalBlogURL != "" {
			h.raw(`<p>Also on `)
			externalLink(h, cfg.ExternalBlogURL, "["+cfg.ExternalBlogName+"]")
			h.raw(`</p>`)
		}
		h.child(PostList(posts))
		h.raw(`</section>`)
	})
}

func externalLink(h *markup, href, label string) {
	h.raw(`<a href="`)
	h.href(href)
	h.raw(`" target="_blank" rel="noopener noreferrer">`)
	h.text(label)
	h.raw(`</a>`)
}

// LinkRow renders the profile links in a single row.
func LinkRow(tag string, links []Link) templ.Component {
	return component(func(h *markup) {
		if len(links) == 0 {
			return
		}
		h.raw(`<` + tag + ` class="row links">`)
		for _, l := range links {
			externalLink(h, l.URL, l.Label)
		}
		h.raw(`</` + tag + `>`)
	})
}
