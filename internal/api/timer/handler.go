package timer

import (
	keycloakauth "github.com/JorgeSaicoski/keycloak-auth"
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	"github.com/JorgeSaicoski/time-keeper/internal/api/entries"
	timerService "github.com/JorgeSaicoski/time-keeper/internal/services/timer"
)

type TimerHandler struct {
	timerService *timerService.TimerService
}

func NewTimerHandler(timerService *timerService.TimerService) *TimerHandler {
	return &TimerHandler{
		timerService: timerService,
	}
}

func (h *TimerHandler) StartTimer(c *gin.Context) {
	var req StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	entry, err := h.timerService.Start(userID, req.ToInput())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Created(c, "Timer started successfully", entries.EntryToResponse(entry))
}

func (h *TimerHandler) StopTimer(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	entry, err := h.timerService.Stop(userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	responses.Success(c, "Timer stopped successfully", entries.EntryToResponse(entry))
}

func (h *TimerHandler) GetCurrentTimer(c *gin.Context) {
	userID, exists := keycloakauth.GetUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	entry, err := h.timerService.Current(userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	// No running timer → 200 with null data, not an error.
	if entry == nil {
		responses.Success(c, "No running timer", nil)
		return
	}

	response := entries.EntryToResponse(entry)
	responses.Success(c, "Current timer retrieved successfully", response)
}
