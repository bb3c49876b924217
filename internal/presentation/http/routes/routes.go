// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zrasti/malleable-go/internal/application/container"
	"github.com/zrasti/malleable-go/internal/presentation/http/handlers"
	"github.com/zrasti/malleable-go/internal/presentation/http/middleware"
	"github.com/zrasti/malleable-go/internal/presentation/templates"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.ClientIDMiddleware())

	// Static assets (stylesheet, editor script)
	r.Static("/static", "web/static")
	r.StaticFile("/favicon.ico", "web/static/favicon.ico")

	// Initialize handlers
	renderer := templates.NewPageRenderer()
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	pageHandlers := handlers.NewPageHandlers(container.PageService, container.PreviewService, authHandlers, renderer, container.Logger, container.PerfTracker)
	snapshotHandlers := handlers.NewSnapshotHandlers(container.SnapshotService, container.Logger, container.PerfTracker)
	previewHandlers := handlers.NewPreviewHandlers(container.PreviewService, container.PageService, renderer, container.Logger, container.PerfTracker)
	healthHandlers := handlers.NewHealthHandlers(container.PerfTracker)

	// The page itself
	r.GET("/", pageHandlers.GetHome)

	api := r.Group("/api/v1")
	{
		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
		}

		// Snapshot persistence (editors only)
		api.POST("/snapshots", authHandlers.EditorAuthMiddleware(), snapshotHandlers.PostSnapshot)

		// Preview sessions; exit must be registered alongside the share link
		preview := api.Group("/preview")
		{
			preview.GET("/exit", previewHandlers.GetExitPreview)
			preview.GET("/:snapshotId", previewHandlers.GetEnterPreview)
		}

		api.GET("/health", healthHandlers.GetHealth)
	}

	return r
}
