// Package web wires the HTTP surface: routing, sessions, templates
// and the handlers that shape view models for them.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mkarlsson/bookshop/internal/auth"
	"github.com/mkarlsson/bookshop/internal/cart"
	"github.com/mkarlsson/bookshop/internal/catalog"
	"github.com/mkarlsson/bookshop/internal/config"
	"github.com/mkarlsson/bookshop/internal/session"
	"github.com/mkarlsson/bookshop/internal/store"
)

type Server struct {
	cfg      config.Config
	store    *store.Store
	sessions *session.Store
	catalog  *catalog.Service
	cart     *cart.Service
	auth     *auth.Service
}

func NewServer(cfg config.Config, st *store.Store, sessions *session.Store,
	cat *catalog.Service, crt *cart.Service, au *auth.Service) *Server {
	return &Server{cfg: cfg, store: st, sessions: sessions, catalog: cat, cart: crt, auth: au}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog(), s.loadSession())
	r.SetFuncMap(template.FuncMap{
		"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
	})
	r.LoadHTMLGlob(s.cfg.TemplateGlob)

	r.GET("/", s.home)
	r.GET("/db-check", s.dbCheck)
	r.GET("/books", s.listBooks)

	ar := r.Group("/auth")
	{
		ar.GET("/login", s.showLogin)
		ar.POST("/login", s.handleLogin)
		ar.GET("/register", s.showRegister)
		ar.POST("/register", s.handleRegister)
		ar.POST("/logout", s.logout)
	}

	cr := r.Group("/cart")
	{
		cr.GET("", s.viewCart)
		cr.POST("/add", s.addToCart)
		cr.POST("/checkout", s.checkout)
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "errors/404", gin.H{"User": s.currentUser(c)})
	})
	return r
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home/index", gin.H{
		"User":    s.currentUser(c),
		"Message": s.popMessage(c),
	})
}

func (s *Server) dbCheck(c *gin.Context) {
	count, err := s.store.CountBooksTotal(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, "DB OK – books.count = %d", count)
}

// fail is the generic infrastructure-error handler: the raw error in
// dev, a minimal page in production. Never retried.
func (s *Server) fail(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	if s.cfg.Production() {
		c.HTML(http.StatusInternalServerError, "errors/500", gin.H{})
		return
	}
	c.String(http.StatusInternalServerError, err.Error())
}
