package admin

import (
	"time"

	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

// Response DTOs

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UserStatResponse struct {
	User          UserResponse `json:"user"`
	TotalEntries  int          `json:"total_entries"`
	TotalDuration int64        `json:"total_duration"`
	LastActivity  *time.Time   `json:"last_activity"`
}

type AdminReportResponse struct {
	TotalUsers              int     `json:"total_users"`
	TotalEntries            int     `json:"total_entries"`
	TotalDuration           int64   `json:"total_duration"`
	AverageDurationPerEntry float64 `json:"average_duration_per_entry"`
}

// Conversion methods

func UserToResponse(user *db.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func UserStatsToResponse(stats []db.UserStat) []UserStatResponse {
	responses := make([]UserStatResponse, len(stats))
	for i := range stats {
		responses[i] = UserStatResponse{
			User:          UserToResponse(&stats[i].User),
			TotalEntries:  stats[i].TotalEntries,
			TotalDuration: stats[i].TotalDuration,
			LastActivity:  stats[i].LastActivity,
		}
	}
	return responses
}

func AdminReportToResponse(report *db.AdminReport) AdminReportResponse {
	return AdminReportResponse{
		TotalUsers:              report.TotalUsers,
		TotalEntries:            report.TotalEntries,
		TotalDuration:           report.TotalDuration,
		AverageDurationPerEntry: report.AverageDurationPerEntry,
	}
}
