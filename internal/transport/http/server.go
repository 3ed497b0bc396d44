package http

import (
	"github.com/gin-gonic/gin"

	"raidboard/internal/bootstrap"
	"raidboard/internal/transport/http/handler"
	"raidboard/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app.StartedAt)
	router.GET("/healthz", healthHandler.Check)

	adminHandler := handler.NewAdminHandler(app.AdminService, app.Bosses, app.Gyms)

	v1 := router.Group("/api/v1")
	v1.POST("/admin/login", adminHandler.Login)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.AuthJWT(app.Config.Admin.JWTSecret))
	adminGroup.GET("/raids/:code", adminHandler.GetRaid)
	adminGroup.GET("/entities", adminHandler.LookupEntity)
	adminGroup.GET("/rooms/:id", adminHandler.GetRoom)
	adminGroup.POST("/rooms/enable", adminHandler.EnableRoom)
	adminGroup.POST("/rooms/disable", adminHandler.DisableRoom)
	adminGroup.GET("/audit", adminHandler.ListAudit)

	return router
}
