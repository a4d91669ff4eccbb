package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"board-web/internal/metrics"
)

type SidebarHandler struct {
	pages   *PageHandler
	posts   *PostHandler
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSidebarHandler(pages *PageHandler, posts *PostHandler, m *metrics.Metrics, logger *zap.Logger) *SidebarHandler {
	return &SidebarHandler{
		pages:   pages,
		posts:   posts,
		metrics: m,
		logger:  logger,
	}
}

// Toggle collapses or expands the sidebar and returns to the page in the
// "redirect" form field. A mounted post view is re-rendered in place so
// its local state survives.
func (h *SidebarHandler) Toggle(c *gin.Context) {
	st := h.pages.load(c)
	st.Sidebar.Toggle()
	h.pages.save(c, st)

	if h.metrics != nil {
		h.metrics.IncrementSidebarToggles()
	}
	h.logger.Debug("Sidebar toggled", zap.Bool("collapsed", st.Sidebar.Collapsed))

	target := safeRedirect(c.PostForm("redirect"))
	if postID, ok := postIDFromPath(target); ok && h.posts.RenderMounted(c, st, postID) {
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// safeRedirect only allows local absolute paths
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func postIDFromPath(path string) (int64, bool) {
	rest, ok := strings.CutPrefix(path, "/posts/")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
