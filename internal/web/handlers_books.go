package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsson/bookshop/internal/catalog"
	"github.com/mkarlsson/bookshop/internal/store"
)

func (s *Server) listBooks(c *gin.Context) {
	q := catalog.Query{
		Filter: store.BookFilter{
			Subject: c.Query("subject"),
			Author:  c.Query("author"),
			Title:   c.Query("title"),
		},
		Page:     catalog.ParsePage(c.Query("page")),
		PageSize: catalog.ParsePageSize(c.Query("pageSize")),
	}

	listing, err := s.catalog.List(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "books/index", gin.H{
		"User":       s.currentUser(c),
		"Subjects":   listing.Subjects,
		"Books":      listing.Books,
		"Filters":    listing.Filter,
		"Page":       listing.Page,
		"PageSize":   listing.PageSize,
		"Total":      listing.Total,
		"TotalPages": listing.TotalPages,
		"Message":    s.popMessage(c),
	})
}
