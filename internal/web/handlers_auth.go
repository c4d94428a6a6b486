package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsson/bookshop/internal/auth"
	"github.com/mkarlsson/bookshop/internal/session"
	"github.com/mkarlsson/bookshop/internal/store"
)

func (s *Server) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "auth/login", gin.H{
		"User":   s.currentUser(c),
		"Errors": nil,
		"Values": gin.H{"Email": ""},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if errs := auth.ValidateLogin(email, password); len(errs) > 0 {
		s.renderLogin(c, errs, email)
		return
	}

	m, err := s.auth.Login(c.Request.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.renderLogin(c, []string{auth.ErrInvalidCredentials.Error()}, email)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	s.ensureSession(c).SetUser(&session.User{
		ID:    m.ID,
		Email: m.Email,
		Name:  m.Name(),
	})
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) renderLogin(c *gin.Context, errs []string, email string) {
	c.HTML(http.StatusBadRequest, "auth/login", gin.H{
		"User":   s.currentUser(c),
		"Errors": errs,
		"Values": gin.H{"Email": email},
	})
}

func (s *Server) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "auth/register", gin.H{
		"User":   s.currentUser(c),
		"Errors": nil,
		"Values": emptyRegistrationValues(),
	})
}

func emptyRegistrationValues() gin.H {
	return gin.H{
		"FirstName": "", "LastName": "", "Address": "", "City": "",
		"Zip": "", "Phone": "", "Email": "",
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	reg := auth.Registration{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Street:    c.PostForm("address"),
		City:      c.PostForm("city"),
		Zip:       c.PostForm("zip"),
		Phone:     c.PostForm("phone"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
	}

	if errs := reg.Validate(); len(errs) > 0 {
		s.renderRegister(c, errs, reg)
		return
	}

	_, err := s.auth.Register(c.Request.Context(), reg)
	if errors.Is(err, store.ErrConflict) {
		s.renderRegister(c, []string{"Email is already registered."}, reg)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "auth/register", gin.H{
		"User":    s.currentUser(c),
		"Errors":  nil,
		"Success": "Account created successfully.",
		"Values":  emptyRegistrationValues(),
	})
}

func (s *Server) renderRegister(c *gin.Context, errs []string, reg auth.Registration) {
	c.HTML(http.StatusBadRequest, "auth/register", gin.H{
		"User":   s.currentUser(c),
		"Errors": errs,
		"Values": gin.H{
			"FirstName": reg.FirstName,
			"LastName":  reg.LastName,
			"Address":   reg.Street,
			"City":      reg.City,
			"Zip":       reg.Zip,
			"Phone":     reg.Phone,
			"Email":     reg.Email,
		},
	})
}

func (s *Server) logout(c *gin.Context) {
	if sess := s.session(c); sess != nil {
		s.sessions.Destroy(sess.ID)
		c.SetCookie(s.cfg.SessionCookie, "", -1, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, "/")
}
