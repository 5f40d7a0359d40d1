package main

import (
	"strings"
	"time"

	"github.com/JorgeSaicoski/microservice-commons/config"
	"github.com/JorgeSaicoski/microservice-commons/database"
	"github.com/JorgeSaicoski/microservice-commons/server"
	"github.com/JorgeSaicoski/microservice-commons/utils"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/api/admin"
	"github.com/JorgeSaicoski/time-keeper/internal/api/entries"
	"github.com/JorgeSaicoski/time-keeper/internal/api/export"
	"github.com/JorgeSaicoski/time-keeper/internal/api/timer"
	clients "github.com/JorgeSaicoski/time-keeper/internal/client"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
	entriesService "github.com/JorgeSaicoski/time-keeper/internal/services/entries"
	reportsService "github.com/JorgeSaicoski/time-keeper/internal/services/reports"
	timerService "github.com/JorgeSaicoski/time-keeper/internal/services/timer"
	usersService "github.com/JorgeSaicoski/time-keeper/internal/services/users"
)

func main() {
	server := server.NewServer(server.ServerOptions{
		ServiceName:    "time-keeper",
		ServiceVersion: "1.0.0",
		SetupRoutes:    setupRoutes,
	})
	server.Start()
}

func setupRoutes(router *gin.Engine, cfg *config.Config) {
	// Connect to database using microservice-commons
	dbConnection, err := database.ConnectWithConfig(cfg.DatabaseConfig)
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	// Auto-migrate models
	if err := database.QuickMigrate(dbConnection,
		&db.TimeEntry{},
		&db.ActiveTimer{},
		&db.User{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// Reporting timezone drives every summary bucket boundary.
	reportingTZ := utils.GetEnv("REPORTING_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(reportingTZ)
	if err != nil {
		panic("Invalid REPORTING_TIMEZONE: " + err.Error())
	}

	coreURL := utils.GetEnv("PROJECT_CORE_URL", "http://localhost:8000/api/internal")
	projectClient := clients.NewProjectHTTPClient(coreURL)

	adminIDs := strings.Split(utils.GetEnv("ADMIN_USERS", ""), ",")

	// Initialize services
	userService := usersService.NewUserService(dbConnection, adminIDs)
	timerSvc := timerService.NewTimerService(dbConnection)
	entrySvc := entriesService.NewEntryService(dbConnection, loc)
	reportSvc := reportsService.NewReportService(dbConnection, projectClient, loc)

	// Setup routes
	api := router.Group("/api")
	timer.RegisterRoutes(api, timerSvc, userService)
	entries.RegisterRoutes(api, entrySvc, reportSvc, userService)
	export.RegisterRoutes(api, reportSvc, userService)
	admin.RegisterRoutes(api, reportSvc, userService)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "time-keeper",
			"version": "1.0.0",
		})
	})
}
