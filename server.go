package main

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/Zachkp/portfolio/internal/timeline"
)

type server struct {
	cfg       config.Config
	logger    *zap.Logger
	content   *content.Store
	contact   *contact.Service
	visits    *analytics.Store
	admin     *adminSession
	timelines map[string]*timeline.Timeline
}

// newServer wires the handlers. visits may be nil, which disables analytics
// and the admin area.
func newServer(cfg config.Config, logger *zap.Logger, store *content.Store, visits *analytics.Store) (*server, error) {
	s := &server{
		cfg:       cfg,
		logger:    logger,
		content:   store,
		contact:   contact.NewService(contact.NewLogRecorder(logger), logger),
		visits:    visits,
		timelines: make(map[string]*timeline.Timeline),
	}
	for _, name := range timeline.Presets() {
		tl, err := timeline.Lookup(name)
		if err != nil {
			return nil, err
		}
		s.timelines[name] = tl
	}
	if visits != nil {
		admin, err := newAdminSession(cfg.Admin, logger)
		if err != nil {
			return nil, err
		}
		s.admin = admin
	}
	return s, nil
}

func (s *server) funcs() template.FuncMap {
	return template.FuncMap{
		// motion renders entrance timing for one element of a timeline.
		"motion": func(name, target string) template.CSS {
			if tl, ok := s.timelines[name]; ok {
				return template.CSS(tl.CSS(target))
			}
			return ""
		},
		"slot": timeline.Slot,
		"date": func(t time.Time) string { return t.Format("January 2, 2006") },
		"join": strings.Join,
		"background": func(name string) template.CSS {
			spec, err := scene.Lookup(name)
			if err != nil {
				return ""
			}
			return template.CSS("background: " + spec.Background.CSS() + ";")
		},
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(s.logger), theme.Provider())
	if s.visits != nil {
		r.Use(analytics.Middleware(s.visits, s.logger))
	}
	r.SetFuncMap(s.funcs())
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Pages
	r.GET("/", func(c *gin.Context) {
		site := s.content.Site()
		c.HTML(http.StatusOK, "index.html", s.page(c, TitleHome, "home", gin.H{
			"about":    firstOr(site.About, ""),
			"projects": site.Featured(),
			"posts":    site.Recent(3),
		}))
	})
	r.GET("/about", func(c *gin.Context) {
		site := s.content.Site()
		c.HTML(http.StatusOK, "about.html", s.page(c, TitleAbout, "about", gin.H{
			"about":      site.About,
			"experience": site.Experience,
			"education":  site.Education,
		}))
	})
	r.GET("/projects", func(c *gin.Context) {
		c.HTML(http.StatusOK, "projects.html", s.page(c, TitleProjects, "projects", gin.H{
			"projects": s.content.Site().Projects,
		}))
	})
	r.GET("/blog", func(c *gin.Context) {
		c.HTML(http.StatusOK, "blog.html", s.page(c, TitleBlog, "blog", gin.H{
			"posts": s.content.Site().Posts,
		}))
	})
	r.GET("/blog/:slug", func(c *gin.Context) {
		post, err := s.content.Site().Post(c.Param("slug"))
		if errors.Is(err, content.ErrNotFound) {
			s.notFound(c)
			return
		}
		c.HTML(http.StatusOK, "post.html", s.page(c, post.Title, "blog", gin.H{"post": post}))
	})
	r.GET("/publications", func(c *gin.Context) {
		c.HTML(http.StatusOK, "publications.html", s.page(c, TitlePublications, "publications", gin.H{
			"publications": s.content.Site().Publications,
		}))
	})
	r.GET("/contact", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", s.page(c, TitleContact, "contact", gin.H{
			"intro": ContactIntro,
		}))
	})
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.page(c, TitlePrivacy, "blog", gin.H{
			"summary":       PrivacySummary,
			"retentionDays": int(s.cfg.Retention.Hours() / 24),
		}))
	})

	// HTMX fragments
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact-form.html", gin.H{"title": TitleContact})
	})
	r.POST("/contact", s.contact.FormHandler("contact-success.html", "contact-error.html"))
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{"experience": s.content.Site().Experience})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{"education": s.content.Site().Education})
	})

	api := r.Group("/api")
	api.POST("/contact", s.contact.APIHandler())
	api.POST("/theme", theme.Handler())
	api.GET("/projects", func(c *gin.Context) { c.JSON(http.StatusOK, s.content.Site().Projects) })
	api.GET("/posts", func(c *gin.Context) { c.JSON(http.StatusOK, s.content.Site().Posts) })
	api.GET("/publications", func(c *gin.Context) { c.JSON(http.StatusOK, s.content.Site().Publications) })
	s.sceneRoutes(api)
	s.timelineRoutes(api)

	if s.admin != nil {
		s.adminRoutes(r)
	}

	r.NoRoute(s.notFound)
	return r
}

// page builds the data every full page template receives.
func (s *server) page(c *gin.Context, title, sceneName string, data gin.H) gin.H {
	st := theme.From(c)
	h := gin.H{
		"site":      s.content.Site(),
		"title":     title,
		"path":      c.Request.URL.Path,
		"scene":     sceneName,
		"theme":     st.Resolved(),
		"themeMode": st.Mode(),
		"year":      time.Now().Year(),
	}
	for k, v := range data {
		h[k] = v
	}
	return h
}

func (s *server) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "error.html", s.page(c, TitleNotFound, "blog", gin.H{
		"message": NotFoundMessage,
	}))
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}
