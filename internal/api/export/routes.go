package export

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
	usersService "github.com/JorgeSaicoski/time-keeper/internal/services/users"
)

// RegisterRoutes registers the export routes.
func RegisterRoutes(router *gin.RouterGroup, reportService *reportsService.ReportService, userService *usersService.UserService) {
	handler := NewExportHandler(reportService)

	exportGroup := router.Group("/export")
	exportGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
		api.ProvisionUser(userService),
	)
	{
		exportGroup.GET("/csv", handler.ExportCSV) // Download all entries as CSV
	}
}
