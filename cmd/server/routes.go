package main

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/internal/middleware"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	publicLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	r.GET("/health", svc.healthHandler.CheckHealth)
	r.GET("/auth/callback", svc.authHandler.Callback)

	api := r.Group("/api")
	{
		// Public site data, cached
		public := api.Group("", middleware.PublicCache(svc.cache, cacheTTL(cfg)))
		{
			public.GET("/landing", svc.publicHandler.Landing)
			public.GET("/team", svc.publicHandler.Team)
			public.GET("/team/:id", svc.publicHandler.Member)
			public.GET("/works", svc.publicHandler.Works)
			public.GET("/works/:id", svc.publicHandler.Work)
		}

		api.POST("/contact", publicLimiter.Middleware(), svc.contactHandler.Submit)

		auth := api.Group("/auth")
		{
			auth.POST("/login", publicLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.POST("/logout", svc.authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), svc.authHandler.GetCurrentUser)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AuditLog(svc.activityLog))
		{
			admin.GET("/dashboard", svc.dashboardHandler.GetStats)

			admin.GET("/team", svc.teamHandler.List)
			admin.GET("/team/:id", svc.teamHandler.GetByID)
			admin.POST("/team", svc.teamHandler.Create)
			admin.PUT("/team/:id", svc.teamHandler.Update)
			admin.DELETE("/team/:id", svc.teamHandler.Delete)

			admin.GET("/students", svc.studentHandler.List)
			admin.POST("/students", svc.studentHandler.Create)
			admin.PUT("/students/:id", svc.studentHandler.Update)
			admin.DELETE("/students/:id", svc.studentHandler.Delete)

			admin.GET("/projects", svc.projectHandler.List)
			admin.GET("/projects/:id", svc.projectHandler.GetByID)
			admin.POST("/projects", svc.projectHandler.Create)
			admin.PUT("/projects/:id", svc.projectHandler.Update)
			admin.DELETE("/projects/:id", svc.projectHandler.Delete)

			admin.GET("/admins", svc.adminUserHandler.List)
			admin.POST("/admins", svc.adminUserHandler.Invite)
			admin.DELETE("/admins/:id", svc.adminUserHandler.Delete)
			admin.PUT("/admins/:id/ban", svc.adminUserHandler.ToggleBan)

			uploads := admin.Group("/uploads")
			{
				uploads.POST("/avatar", svc.uploadHandler.UploadAvatar)
				uploads.POST("/project-image", svc.uploadHandler.UploadProjectImage)
				uploads.DELETE("/avatar", svc.uploadHandler.DeleteAvatar)
				uploads.DELETE("/project-image", svc.uploadHandler.DeleteProjectImage)
			}

			admin.GET("/contact-messages", svc.contactHandler.List)
			admin.PUT("/contact-messages/:id/read", svc.contactHandler.MarkRead)
			admin.DELETE("/contact-messages/:id", svc.contactHandler.Delete)

			admin.GET("/activity-logs", svc.activityLogHandler.List)
			admin.GET("/activity-logs/modules", svc.activityLogHandler.GetModules)
		}
	}
}
