package entries

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	entriesService "github.com/JorgeSaicoski/time-keeper/internal/services/entries"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
	usersService "github.com/JorgeSaicoski/time-keeper/internal/services/users"
)

// RegisterRoutes registers entry CRUD, summary and EOD routes.
func RegisterRoutes(router *gin.RouterGroup, entryService *entriesService.EntryService, reportService *reportsService.ReportService, userService *usersService.UserService) {
	handler := NewEntryHandler(entryService, reportService)

	entriesGroup := router.Group("/entries")
	entriesGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
		api.ProvisionUser(userService),
	)
	{
		// Entry management
		entriesGroup.GET("", handler.ListEntries)          // List recent entries
		entriesGroup.PUT("/:id", handler.UpdateEntry)      // Edit non-time fields
		entriesGroup.DELETE("/:id", handler.DeleteEntry)   // Remove an entry

		// Summaries
		entriesGroup.GET("/summary/daily", handler.GetDailySummary)
		entriesGroup.GET("/summary/weekly", handler.GetWeeklySummary)
		entriesGroup.GET("/summary/monthly", handler.GetMonthlySummary)

		// End-of-day review
		entriesGroup.GET("/eod", handler.GetEODReport)
	}
}
