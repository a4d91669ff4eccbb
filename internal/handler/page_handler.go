package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"board-web/internal/middleware"
	"board-web/internal/render"
	"board-web/internal/session"
	"board-web/internal/view"
)

// PageHandler renders the section pages reachable from the sidebar and
// owns the shared page plumbing used by the other handlers.
type PageHandler struct {
	sessions *session.Manager
	sidebar  *view.SidebarPresenter
	logger   *zap.Logger
}

func NewPageHandler(sessions *session.Manager, sidebar *view.SidebarPresenter, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		sidebar:  sidebar,
		logger:   logger,
	}
}

// Section renders the page of a nav entry
func (h *PageHandler) Section(c *gin.Context) {
	st := h.enter(c)
	defer h.save(c, st)

	title := ""
	if entry, ok := view.FindNavEntry(c.Request.URL.Path); ok {
		title = entry.Label
	}
	h.render(c, http.StatusOK, st, render.Page{
		Page:  render.PageSection,
		Title: title,
	})
}

// enter loads the visitor state and records the route change
func (h *PageHandler) enter(c *gin.Context) *session.State {
	st := h.load(c)
	st.Sidebar.Navigate(c.Request.URL.Path)
	return st
}

func (h *PageHandler) load(c *gin.Context) *session.State {
	return h.sessions.Get(c.Request.Context(), middleware.VisitorID(c))
}

func (h *PageHandler) save(c *gin.Context, st *session.State) {
	h.sessions.Put(c.Request.Context(), middleware.VisitorID(c), st)
}

// render fills in the sidebar and executes the layout
func (h *PageHandler) render(c *gin.Context, status int, st *session.State, page render.Page) {
	page.Sidebar = h.sidebar.Present(c.Request.Context(), st.Sidebar)
	if page.Status == 0 {
		page.Status = status
	}
	c.HTML(status, render.LayoutTemplate, page)
}
