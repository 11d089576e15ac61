// Package http wires the REST surface: staff API under /api/v1 and the
// parent portal under /portal.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/interfaces/http/handlers"
	"github.com/chroma-excellence/chromaqa/internal/interfaces/http/middleware"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type RouterDeps struct {
	AuthHandler      *handlers.AuthHandler
	ReportHandler    *handlers.ReportHandler
	SchoolHandler    *handlers.SchoolHandler
	ChecklistHandler *handlers.ChecklistHandler
	PortalHandler    *handlers.PortalHandler

	AuthMiddleware   *middleware.AuthMiddleware
	PortalMiddleware *middleware.PortalMiddleware

	AllowedOrigins []string
	Mode           string
	Logger         logger.Interface
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORS(deps.AllowedOrigins))

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", deps.AuthHandler.Login)

		authed := api.Group("")
		authed.Use(deps.AuthMiddleware.RequireAuth())
		{
			authed.GET("/me", deps.AuthHandler.Me)

			authed.GET("/schools", deps.SchoolHandler.ListSchools)
			authed.POST("/schools", deps.SchoolHandler.CreateSchool)
			authed.GET("/schools/:id", deps.SchoolHandler.GetSchool)
			authed.PUT("/schools/:id", deps.SchoolHandler.UpdateSchool)
			authed.DELETE("/schools/:id", deps.SchoolHandler.DeleteSchool)

			authed.GET("/reports", deps.ReportHandler.ListReports)
			authed.POST("/reports", deps.ReportHandler.CreateReport)
			authed.GET("/reports/:id", deps.ReportHandler.GetReport)
			authed.PUT("/reports/:id/responses", deps.ReportHandler.SaveResponses)
			authed.POST("/reports/:id/transition", deps.ReportHandler.Transition)
			authed.DELETE("/reports/:id", deps.ReportHandler.DeleteReport)
			authed.GET("/reports/:id/progress", deps.ReportHandler.GetProgress)
			authed.POST("/reports/:id/generate-summary", deps.ReportHandler.GenerateSummary)
			authed.GET("/reports/:id/export", deps.ReportHandler.ExportReport)
			authed.POST("/reports/:id/photos", deps.ReportHandler.AddPhoto)
			authed.DELETE("/reports/:id/photos/:photoId", deps.ReportHandler.RemovePhoto)

			authed.GET("/checklists/:type", deps.ChecklistHandler.GetLatestByType)
			authed.GET("/stats", deps.ReportHandler.GetStats)
		}
	}

	portal := router.Group("/portal")
	{
		portal.POST("/login", deps.PortalHandler.Login)
		portal.POST("/admin/probe", deps.PortalHandler.ProbeAdmin)
		portal.POST("/session/renew", deps.PortalHandler.RenewSession)

		session := portal.Group("")
		session.Use(deps.PortalMiddleware.RequireSession())
		{
			session.GET("/session", deps.PortalHandler.GetSession)
		}
	}

	return router
}
