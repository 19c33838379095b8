package portal

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/simars/portal/views"
)

func (a *App) handleHome(c echo.Context) error {
	page, err := a.HomePage(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleBlog(c echo.Context) error {
	page, err := a.BlogPage(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleAbout(c echo.Context) error {
	page, err := a.AboutPage(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handlePost(c echo.Context) error {
	page, err := a.PostPage(c.Request().Context(), c.Request().URL.Path)
	if errors.Is(err, ErrNotFound) {
		return a.renderNotFound(c)
	}
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.publishedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config.URL, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.publishedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config.View(), posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.staticDir, "favicon.svg"))
}

// handleRobots serves static/robots.txt when present and a permissive
// default pointing at the sitemap otherwise.
func (a *App) handleRobots(c echo.Context) error {
	file := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(file); err == nil {
		return c.File(file)
	}
	return c.String(http.StatusOK, robotsTxt(a.Config.URL))
}

func robotsTxt(base string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", views.BuildURL(base, "sitemap.xml"))
}

func (a *App) renderNotFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.View()))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.WithFields(log.Fields{
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
		}).Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.View()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
