package admin

import (
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
)

type AdminHandler struct {
	reportService *reportsService.ReportService
}

func NewAdminHandler(reportService *reportsService.ReportService) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
	}
}

func (h *AdminHandler) GetUserStats(c *gin.Context) {
	stats, err := h.reportService.UserStats()
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "User statistics retrieved successfully", UserStatsToResponse(stats))
}

func (h *AdminHandler) GetPlatformReport(c *gin.Context) {
	report, err := h.reportService.PlatformReport()
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Platform report retrieved successfully", AdminReportToResponse(report))
}
