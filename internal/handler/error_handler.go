package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"board-web/internal/render"
	"board-web/internal/view"
)

const (
	notFoundMessage = "Page not found."
	internalMessage = "Something went wrong. Please try again later."
)

type ErrorHandler struct {
	pages *PageHandler
}

func NewErrorHandler(pages *PageHandler) *ErrorHandler {
	return &ErrorHandler{pages: pages}
}

// NotFound renders the 404 page with the sidebar
func (h *ErrorHandler) NotFound(c *gin.Context) {
	st := h.pages.enter(c)
	defer h.pages.save(c, st)

	h.pages.render(c, http.StatusNotFound, st, render.Page{
		Page:  render.PageError,
		Title: "Not found",
		Error: notFoundMessage,
	})
}

// Panic renders the 500 page without the store or the board API
func (h *ErrorHandler) Panic(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, render.LayoutTemplate, render.Page{
		Page:    render.PageError,
		Title:   "Error",
		Error:   internalMessage,
		Status:  http.StatusInternalServerError,
		Sidebar: view.SidebarPage{Items: view.SidebarState{}.Items()},
	})
}
