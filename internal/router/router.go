package router

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"board-web/internal/client"
	"board-web/internal/handler"
	"board-web/internal/metrics"
	"board-web/internal/middleware"
	"board-web/internal/render"
	"board-web/internal/session"
	"board-web/internal/theme"
	"board-web/internal/view"
)

// Config holds router dependencies
type Config struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	BoardClient client.BoardClient
	ProfilePics client.ProfilePicResolver
	Sessions    *session.Manager
	Panel       *view.ProfilePanel
	Theme       theme.Theme
	ViewerID    int64
	Location    *time.Location
	CookieName  string
	SessionTTL  time.Duration
}

// Setup sets up the router with all routes and middleware
func Setup(cfg Config) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(render.Templates()))

	presenter := view.NewSidebarPresenter(cfg.Panel, cfg.ProfilePics, cfg.Logger)
	postViews := view.NewPostViewService(cfg.BoardClient, cfg.ViewerID, cfg.ProfilePics, cfg.Location, cfg.Logger, cfg.Metrics)

	pageHandler := handler.NewPageHandler(cfg.Sessions, presenter, cfg.Logger)
	errorHandler := handler.NewErrorHandler(pageHandler)
	postHandler := handler.NewPostHandler(pageHandler, errorHandler, postViews, cfg.Logger)
	sidebarHandler := handler.NewSidebarHandler(pageHandler, postHandler, cfg.Metrics, cfg.Logger)
	staticHandler := handler.NewStaticHandler(cfg.Theme, render.Static())
	healthHandler := handler.NewHealthHandler(cfg.Sessions, cfg.BoardClient, cfg.Logger)

	r.Use(middleware.Recovery(cfg.Logger, errorHandler.Panic))
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.SecureHeaders())

	// Probes and assets carry no visitor state
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/static/*filepath", staticHandler.Serve)

	pages := r.Group("")
	pages.Use(middleware.Visitor(cfg.CookieName, cfg.SessionTTL))
	{
		for _, entry := range view.NavEntries {
			pages.GET(entry.Path, pageHandler.Section)
		}

		pages.GET("/posts/:id", postHandler.View)
		pages.POST("/posts/:id/comments", postHandler.AddComment)
		pages.POST("/posts/:id/like", postHandler.Like)

		pages.POST("/sidebar/toggle", sidebarHandler.Toggle)
	}

	r.NoRoute(middleware.Visitor(cfg.CookieName, cfg.SessionTTL), errorHandler.NotFound)

	return r
}
