package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"board-web/internal/render"
	"board-web/internal/session"
	"board-web/internal/view"
)

type PostHandler struct {
	pages   *PageHandler
	errors  *ErrorHandler
	service *view.PostViewService
	logger  *zap.Logger
	now     func() time.Time
}

func NewPostHandler(pages *PageHandler, errs *ErrorHandler, service *view.PostViewService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		pages:   pages,
		errors:  errs,
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

func postPath(postID int64) string {
	return fmt.Sprintf("/posts/%d", postID)
}

func parsePostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// View mounts the post: the previous view is replaced and a fresh load runs.
// A load that was superseded by a newer mount of the same visitor is
// discarded and the newer state is shown instead. If the store cannot hold
// the mount, the load is applied to the request's own state.
func (h *PostHandler) View(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		h.errors.NotFound(c)
		return
	}
	ctx := c.Request.Context()

	st := h.pages.enter(c)
	if st.PostView == nil {
		st.PostView = &view.PostView{}
	}
	token := st.PostView.Begin(postID)
	h.pages.save(c, st)

	res := h.service.Fetch(ctx, postID)

	// A stored view older than this mount means the store lost it
	// (failure or expiry); this request's own state then stays current.
	target := h.pages.load(c)
	if target.PostView == nil || target.PostView.Generation < token {
		target = st
	}
	if !target.PostView.Apply(token, res) {
		h.service.Superseded(postID)
		h.renderPost(c, http.StatusOK, target)
		return
	}
	h.pages.save(c, target)

	status := http.StatusOK
	if res.NotFound() {
		status = http.StatusNotFound
	}
	h.renderPost(c, status, target)
}

// AddComment submits the "comment" form field on the mounted view
func (h *PostHandler) AddComment(c *gin.Context) {
	st, postID, ok := h.mounted(c)
	if !ok {
		return
	}

	// Collaborator failures are logged by the service; the typed text stays
	err := h.service.AddComment(c.Request.Context(), st.PostView, c.PostForm("comment"))
	if errors.Is(err, view.ErrEmptyComment) {
		h.logger.Debug("Ignoring empty comment", zap.Int64("post_id", postID))
	}

	h.pages.save(c, st)
	h.renderPost(c, http.StatusOK, st)
}

// Like flips the like flag of the mounted view
func (h *PostHandler) Like(c *gin.Context) {
	st, _, ok := h.mounted(c)
	if !ok {
		return
	}

	h.service.ToggleLike(st.PostView)

	h.pages.save(c, st)
	h.renderPost(c, http.StatusOK, st)
}

// mounted loads the visitor state for an action on /posts/:id. Actions on a
// post that is not mounted redirect to its page, which mounts it.
func (h *PostHandler) mounted(c *gin.Context) (*session.State, int64, bool) {
	postID, ok := parsePostID(c)
	if !ok {
		h.errors.NotFound(c)
		return nil, 0, false
	}

	st := h.pages.load(c)
	if !st.PostView.Mounted(postID) {
		c.Redirect(http.StatusSeeOther, postPath(postID))
		return nil, 0, false
	}
	return st, postID, true
}

// RenderMounted re-renders the mounted post view without fetching
func (h *PostHandler) RenderMounted(c *gin.Context, st *session.State, postID int64) bool {
	if st.PostView == nil || st.PostView.PostID != postID || (st.PostView.Post == nil && st.PostView.Error == "") {
		return false
	}
	h.renderPost(c, http.StatusOK, st)
	return true
}

func (h *PostHandler) renderPost(c *gin.Context, status int, st *session.State) {
	v := st.PostView
	if v == nil {
		v = &view.PostView{}
	}
	page := h.service.Present(c.Request.Context(), v, h.now())
	h.pages.render(c, status, st, render.Page{
		Page:  render.PagePost,
		Title: page.Title,
		Post:  &page,
	})
}
