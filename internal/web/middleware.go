package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mkarlsson/bookshop/internal/session"
)

const sessionKey = "session"

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// loadSession attaches an existing session when the cookie resolves to
// one. Sessions are created lazily by ensureSession, so anonymous
// browsing does not grow the store.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(s.cfg.SessionCookie); err == nil {
			if sess := s.sessions.Get(id); sess != nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

func (s *Server) session(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		return v.(*session.Session)
	}
	return nil
}

func (s *Server) ensureSession(c *gin.Context) *session.Session {
	if sess := s.session(c); sess != nil {
		return sess
	}
	sess := s.sessions.New()
	c.SetCookie(s.cfg.SessionCookie, sess.ID, 0, "/", "", false, true)
	c.Set(sessionKey, sess)
	return sess
}

func (s *Server) currentUser(c *gin.Context) *session.User {
	if sess := s.session(c); sess != nil {
		return sess.User()
	}
	return nil
}

func (s *Server) popMessage(c *gin.Context) string {
	if sess := s.session(c); sess != nil {
		return sess.PopMessage()
	}
	return ""
}

// requireUser redirects unauthenticated requests to the login form
// before any side effect happens.
func (s *Server) requireUser(c *gin.Context) (*session.User, bool) {
	u := s.currentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return nil, false
	}
	return u, true
}
