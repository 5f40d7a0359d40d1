package timer

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api"
	timerService "github.com/JorgeSaicoski/time-keeper/internal/services/timer"
	usersService "github.com/JorgeSaicoski/time-keeper/internal/services/users"
)

// RegisterRoutes registers the timer lifecycle routes.
func RegisterRoutes(router *gin.RouterGroup, service *timerService.TimerService, userService *usersService.UserService) {
	handler := NewTimerHandler(service)

	timerGroup := router.Group("/timer")
	timerGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
		api.ProvisionUser(userService),
	)
	{
		timerGroup.POST("/start", handler.StartTimer)      // Start a timer, 409 when one runs
		timerGroup.POST("/stop", handler.StopTimer)        // Stop the running timer
		timerGroup.GET("/current", handler.GetCurrentTimer) // Running entry or null
	}
}
