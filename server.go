package folio

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"folio/markdown"
)

// previewServer serves the built artifacts during development: a JSON
// content API, rendered markdown fragments, the feed, and the sitemap.
// It only reads the content index; all writes happen at build time.
type previewServer struct {
	cfg       SiteConfig
	cache     *PostCache
	staticDir string
}

// Serve starts the preview server over the content index in the output
// directory. Run Build first; Serve refuses to start without an index.
func (s *Site) Serve() error {
	if _, err := os.Stat(s.IndexPath()); err != nil {
		return fmt.Errorf("no content index at %s (run build first): %w", s.IndexPath(), err)
	}

	store, err := NewStore(s.IndexPath())
	if err != nil {
		return fmt.Errorf("open content index: %w", err)
	}
	defer store.Close()

	srv := &previewServer{
		cfg:       s.Config,
		cache:     NewPostCache(store, s.Config.PostCacheTTL),
		staticDir: s.staticDir,
	}

	e := echo.New()
	srv.setupMiddleware(e)
	srv.setupRoutes(e)

	if err := e.Start(s.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (srv *previewServer) setupMiddleware(e *echo.Echo) {
	e.HTTPErrorHandler = srv.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

func (srv *previewServer) setupRoutes(e *echo.Echo) {
	e.Static("/public", srv.staticDir)
	e.GET("/robots.txt", srv.handleRobots)

	e.GET("/feed.xml", srv.handleFeed)
	e.GET("/sitemap.xml", srv.handleSitemap)
	e.GET("/blog/:slug/", srv.handleFragment)

	e.GET("/api/posts", srv.handleListPosts)
	e.GET("/api/posts/:slug", srv.handleGetPost)
	e.GET("/api/tags", srv.handleListTags)
}

func (srv *previewServer) handleListPosts(c echo.Context) error {
	posts, err := srv.cache.ListPosts(c.QueryParam("tag"))
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

// postResponse wraps a single post together with entries sharing a tag.
type postResponse struct {
	Post    BlogPost   `json:"post"`
	Related []BlogPost `json:"related,omitempty"`
	JSONLD  string     `json:"jsonld"`
}

func (srv *previewServer) handleGetPost(c echo.Context) error {
	post, err := srv.cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	posts, err := srv.cache.ListPosts("")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{
		Post:    post,
		Related: RelatedPosts(post, posts),
		JSONLD:  BlogPostingJsonLD(post, srv.cfg),
	})
}

func (srv *previewServer) handleListTags(c echo.Context) error {
	tags, err := srv.cache.ListTags()
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, tags)
}

func (srv *previewServer) handleFragment(c echo.Context) error {
	post, err := srv.cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return Render(c, markdown.Fragment(post.Body))
}

func (srv *previewServer) handleFeed(c echo.Context) error {
	posts, err := srv.cache.ListPosts("")
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteFeed(c.Response(), srv.cfg, posts)
}

func (srv *previewServer) handleSitemap(c echo.Context) error {
	posts, err := srv.cache.ListPosts("")
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), srv.cfg, posts)
}

func (srv *previewServer) handleRobots(c echo.Context) error {
	return c.File(srv.staticDir + "/robots.txt")
}

func (srv *previewServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}
