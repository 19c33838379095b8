package portal

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/simars/portal/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of the published listing with TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	byPath  map[string]int
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.byPath = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts(ctx, content.BlogQuery)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	byPath := make(map[string]int, len(posts))
	for i, p := range posts {
		byPath[p.Path] = i
	}
	c.posts = posts
	c.byPath = byPath
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached listing after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]content.Post, map[string]int, error) {
	c.mu.RLock()
	if c.valid() {
		posts, byPath := c.posts, c.byPath
		c.mu.RUnlock()
		return posts, byPath, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.byPath, nil
}

// ListPosts answers q from the cached listing. The returned slice is
// owned by the caller.
func (c *PostCache) ListPosts(ctx context.Context, q content.Query) ([]content.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return q.Apply(posts), nil
}

// GetPost returns a single published post by path from the cache.
func (c *PostCache) GetPost(ctx context.Context, path string) (content.Post, error) {
	posts, byPath, err := c.ensureLoaded(ctx)
	if err != nil {
		return content.Post{}, err
	}
	i, ok := byPath[content.NormalizePath(path)]
	if !ok {
		return content.Post{}, ErrNotFound
	}
	return posts[i], nil
}
