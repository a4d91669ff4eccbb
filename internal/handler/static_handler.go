package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"board-web/internal/theme"
)

// StaticHandler serves the generated theme stylesheet and embedded assets
type StaticHandler struct {
	themeCSS string
	files    http.Handler
}

func NewStaticHandler(t theme.Theme, files http.FileSystem) *StaticHandler {
	return &StaticHandler{
		themeCSS: t.CSS(),
		files:    http.StripPrefix("/static", http.FileServer(files)),
	}
}

// Serve handles GET /static/*filepath
func (h *StaticHandler) Serve(c *gin.Context) {
	if c.Param("filepath") == "/theme.css" {
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(h.themeCSS))
		return
	}
	h.files.ServeHTTP(c.Writer, c.Request)
}
