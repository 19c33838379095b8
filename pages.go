package portal

import (
	"context"

	"github.com/a-h/templ"

	"github.com/simars/portal/content"
)

// HomePage renders the landing page with the IndexQuery listing.
func (a *App) HomePage(ctx context.Context) (templ.Component, error) {
	posts, err := a.Cache.ListPosts(ctx, content.IndexQuery)
	if err != nil {
		return nil, err
	}
	return a.Views.Home(a.Config.View(), posts), nil
}

// BlogPage renders every published post.
func (a *App) BlogPage(ctx context.Context) (templ.Component, error) {
	posts, err := a.Cache.ListPosts(ctx, content.BlogQuery)
	if err != nil {
		return nil, err
	}
	return a.Views.Blog(a.Config.View(), posts), nil
}

// AboutPage renders the profile page.
func (a *App) AboutPage(context.Context) (templ.Component, error) {
	body, err := a.AboutBody()
	if err != nil {
		return nil, err
	}
	return a.Views.About(a.Config.View(), body), nil
}

// PostPage renders the published post at path, or returns ErrNotFound.
func (a *App) PostPage(ctx context.Context, path string) (templ.Component, error) {
	post, err := a.Cache.GetPost(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.Views.Post(a.Config.View(), post), nil
}

func (a *App) publishedPosts(ctx context.Context) ([]content.Post, error) {
	return a.Cache.ListPosts(ctx, content.BlogQuery)
}
