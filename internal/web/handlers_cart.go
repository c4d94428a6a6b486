package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsson/bookshop/internal/cart"
)

func (s *Server) addToCart(c *gin.Context) {
	u, ok := s.requireUser(c)
	if !ok {
		return
	}

	isbn := c.PostForm("isbn")
	title := c.PostForm("title")
	qty, err := strconv.Atoi(c.PostForm("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	msg, err := s.cart.Add(c.Request.Context(), u.ID, isbn, title, int32(qty))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ensureSession(c).SetMessage(msg)

	// Back to the page the form was on, filters intact.
	back := c.Request.Referer()
	if back == "" {
		back = "/books"
	}
	c.Redirect(http.StatusFound, back)
}

func (s *Server) viewCart(c *gin.Context) {
	u, ok := s.requireUser(c)
	if !ok {
		return
	}

	view, err := s.cart.CurrentView(c.Request.Context(), u.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "cart/index", gin.H{
		"User":       u,
		"Items":      view.Items,
		"GrandTotal": view.GrandTotal,
		"Message":    s.popMessage(c),
	})
}

func (s *Server) checkout(c *gin.Context) {
	u, ok := s.requireUser(c)
	if !ok {
		return
	}

	inv, err := s.cart.Checkout(c.Request.Context(), u.ID)
	if errors.Is(err, cart.ErrEmptyCart) {
		c.Redirect(http.StatusFound, "/cart")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "cart/invoice", gin.H{
		"User":         u,
		"OrderID":      inv.OrderID,
		"OrderDate":    inv.OrderDate,
		"DeliveryDate": inv.DeliveryDate,
		"Address":      inv.Address,
		"Items":        inv.Items,
		"GrandTotal":   inv.GrandTotal,
	})
}
