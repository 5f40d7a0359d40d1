package export

import (
	"fmt"
	"net/http"

	keycloakauth "github.com/JorgeSaicoski/keycloak-auth"
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
)

type ExportHandler struct {
	reportService *reportsService.ReportService
}

func NewExportHandler(reportService *reportsService.ReportService) *ExportHandler {
	return &ExportHandler{
		reportService: reportService,
	}
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	csvData, err := h.reportService.ExportCSV(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportsService.CSVFilename))
	c.Data(http.StatusOK, "text/csv", []byte(csvData))
}
