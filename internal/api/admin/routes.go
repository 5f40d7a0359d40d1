package admin

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
	usersService "github.com/JorgeSaicoski/time-keeper/internal/services/users"
)

// RegisterRoutes registers the admin-only reporting routes.
func RegisterRoutes(router *gin.RouterGroup, reportService *reportsService.ReportService, userService *usersService.UserService) {
	handler := NewAdminHandler(reportService)

	adminGroup := router.Group("/admin")
	adminGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
		api.ProvisionUser(userService),
		api.RequireAdmin(userService),
	)
	{
		adminGroup.GET("/users", handler.GetUserStats)       // Per-user statistics
		adminGroup.GET("/reports", handler.GetPlatformReport) // Platform-wide aggregate
	}
}
