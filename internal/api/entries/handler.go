package entries

import (
	"strconv"

	keycloakauth "github.com/JorgeSaicoski/keycloak-auth"
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	entriesService "github.com/JorgeSaicoski/time-keeper/internal/services/entries"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
)

type EntryHandler struct {
	entryService  *entriesService.EntryService
	reportService *reportsService.ReportService
}

func NewEntryHandler(entryService *entriesService.EntryService, reportService *reportsService.ReportService) *EntryHandler {
	return &EntryHandler{
		entryService:  entryService,
		reportService: reportService,
	}
}

func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 0 {
			responses.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.entryService.List(userID, limit, c.Query("date"))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Entries retrieved successfully", EntriesToResponse(entries))
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	entry, err := h.entryService.Update(c.Param("id"), userID, req.ToInput())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Entry updated successfully", EntryToResponse(entry))
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.entryService.Delete(c.Param("id"), userID); err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Entry deleted successfully", nil)
}

func (h *EntryHandler) GetDailySummary(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.reportService.Daily(userID, c.Query("date"))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Daily summary retrieved successfully", DailySummaryToResponse(summary))
}

func (h *EntryHandler) GetWeeklySummary(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	buckets, err := h.reportService.Weekly(userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Weekly summary retrieved successfully", SummariesResponse{Summaries: buckets})
}

func (h *EntryHandler) GetMonthlySummary(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	buckets, err := h.reportService.Monthly(userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Monthly summary retrieved successfully", SummariesResponse{Summaries: buckets})
}

func (h *EntryHandler) GetEODReport(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	report, err := h.reportService.EOD(userID, c.Query("date"))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "EOD report retrieved successfully", EODToResponse(report))
}
