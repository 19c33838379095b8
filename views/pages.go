package views

import (
	"github.com/a-h/templ"

	"github.com/simars/portal/content"
	"github.com/simars/portal/markdown"
)

// Layout wraps body in the HTML document shell shared by every page.
func Layout(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return component(func(h *markup) {
		title := cfg.Name
		if meta.Title != "" && meta.Title != cfg.Name {
			title = meta.Title + " | " + cfg.Name
		}
		description := meta.Description
		if description == "" {
			description = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/><title>`)
		h.text(title)
		h.raw(`</title>`)
		if description != "" {
			h.raw(`<meta name="description" content="`)
			h.text(description)
			h.raw(`"/>`)
		}
		if meta.URL != "" {
			h.raw(`<link rel="canonical" href="`)
			h.href(meta.URL)
			h.raw(`"/><meta property="og:url" content="`)
			h.text(meta.URL)
			h.raw(`"/>`)
		}
		h.raw(`<meta property="og:title" content="`)
		h.text(title)
		h.raw(`"/><meta property="og:type" content="`)
		h.text(ogType)
		h.raw(`"/><link rel="stylesheet" href="/public/site.css"/>`)
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml" title="`)
		h.text(cfg.Name)
		h.raw(`"/>`)
		if meta.JSONLD != "" {
			h.raw(`<script type="application/ld+json">`)
			h.raw(meta.JSONLD)
			h.raw(`</script>`)
		}
		h.raw(`</head><body><header class="nav"><a href="/" class="brand">`)
		h.text(cfg.Name)
		h.raw(`</a><nav><a href="/blog">Blog</a><a href="/about">About</a></nav></header><main>`)
		h.child(body)
		h.raw(`</main></body></html>`)
	})
}

// Home renders the landing page with the most recent posts.
func Home(cfg SiteConfig, posts []content.Post) templ.Component {
	body := component(func(h *markup) {
		h.raw(`<h1 class="row">Welcome to my portal | `)
		h.text(cfg.Name)
		h.raw(`</h1>`)
		if cfg.Intro != "" {
			h.child(markdown.Markdown(cfg.Intro))
		}
		h.child(LinkRow("h3", cfg.Links))
		h.raw(`<hr/><h2 class="row">Recent Posts</h2>`)
		h.child(BlogSection(cfg, posts))
		h.raw(`<h3 class="row"><span>Complete Blog <a href="/blog">[Here]</a>`)
		if cfg.ExternalBlogURL != "" {
			h.raw(` or on `)
			externalLink(h, cfg.ExternalBlogURL, "["+cfg.ExternalBlogName+"]")
		}
		h.raw(`</span></h3>`)
	})
	return Layout(cfg, PageMeta{
		Title:  cfg.Name,
		URL:    BuildURL(cfg.URL),
		JSONLD: WebsiteJsonLD(cfg),
	}, body)
}

// Blog renders the full listing of published posts.
func Blog(cfg SiteConfig, posts []content.Post) templ.Component {
	return Layout(cfg, PageMeta{
		Title: "Blog",
		URL:   BuildURL(cfg.URL, "blog"),
	}, BlogSection(cfg, posts))
}

// About renders the profile page. body is the rendered about document and
// may be nil.
func About(cfg SiteConfig, body templ.Component) templ.Component {
	page := component(func(h *markup) {
		h.raw(`<h1 class="row">About Me</h1>`)
		h.child(LinkRow("h4", cfg.Links))
		h.child(body)
	})
	return Layout(cfg, PageMeta{
		Title: "About",
		URL:   BuildURL(cfg.URL, "about"),
	}, page)
}

// Post renders a single post with its markdown body.
func Post(cfg SiteConfig, post content.Post) templ.Component {
	body := component(func(h *markup) {
		h.raw(`<article class="post"><h1>`)
		h.text(post.Title)
		h.raw(`</h1><small>`)
		h.text(Byline(post))
		h.raw(`</small><div class="post-body">`)
		h.child(markdown.Markdown(post.Body))
		h.raw(`</div></article><p><a href="/blog">&larr; All posts</a></p>`)
	})
	return Layout(cfg, PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         BuildURL(cfg.URL, post.Path),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(cfg, post),
	}, body)
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Not Found"}, component(func(h *markup) {
		h.raw(`<h1>Page not found</h1><p>The page you are looking for does not exist. <a href="/">Go home</a>.</p>`)
	}))
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Error"}, component(func(h *markup) {
		h.raw(`<h1>Something went wrong</h1><p>Please try again later.</p>`)
	}))
}
