package views

// SiteConfig holds site-wide settings the templates read.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name             string
	URL              string
	Description      string
	Author           string
	Intro            string // home page introduction, markdown
	Links            []Link // profile links shown on Home and About
	BlogHeading      string
	ExternalBlogURL  string // e.g. the Medium profile; "" hides the mentions
	ExternalBlogName string
}

// Link is a labelled external profile link.
type Link struct {
	Label string `mapstructure:"label"`
	URL   string `mapstructure:"url"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}
