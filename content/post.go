// Package content loads blog posts from markdown files with front-matter
// and answers listing queries over them.
package content

import (
	"sort"
	"time"
)

// IndexLimit caps the number of posts shown on the home page.
const IndexLimit = 15

// DateLayout is the calendar date format used for storage and display.
const DateLayout = "2006-01-02"

// Post is one published or draft blog post, read from a markdown file.
type Post struct {
	ID        string
	Path      string
	Title     string
	Date      time.Time
	Author    string
	Published bool
	Summary   string
	Body      string

	// Seq is the position of the source file in lexical walk order.
	Seq    int
	Source string
}

// DateString formats the post date, or returns "" for undated posts.
func (p Post) DateString() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format(DateLayout)
}

// Query selects published posts, newest first, optionally truncated.
type Query struct {
	Limit int // 0 means unbounded
}

var (
	// IndexQuery feeds the home page "Recent Posts" list.
	IndexQuery = Query{Limit: IndexLimit}
	// BlogQuery feeds the full blog listing.
	BlogQuery = Query{}
)

// Apply filters out drafts, sorts by date descending and applies the limit.
// The input slice is left untouched.
func (q Query) Apply(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Newer(out[i], out[j])
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// Newer reports whether a sorts before b in a listing. Dated posts come
// before undated ones; equal dates fall back to source order, then ID.
func Newer(a, b Post) bool {
	switch {
	case a.Date.IsZero() != b.Date.IsZero():
		return b.Date.IsZero()
	case !a.Date.Equal(b.Date):
		return a.Date.After(b.Date)
	case a.Seq != b.Seq:
		return a.Seq < b.Seq
	default:
		return a.ID < b.ID
	}
}
