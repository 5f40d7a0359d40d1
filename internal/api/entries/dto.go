package entries

import (
	"time"

	"github.com/JorgeSaicoski/time-keeper/internal/db"
	entriesService "github.com/JorgeSaicoski/time-keeper/internal/services/entries"
)

// Request DTOs

type UpdateEntryRequest struct {
	TaskName    *string   `json:"task_name"`
	Description *string   `json:"description"`
	ProjectID   *string   `json:"project_id"`
	Tags        *[]string `json:"tags"`
}

func (r *UpdateEntryRequest) ToInput() entriesService.UpdateEntryInput {
	return entriesService.UpdateEntryInput{
		TaskName:    r.TaskName,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		Tags:        r.Tags,
	}
}

// Response DTOs

type EntryResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ProjectID   *string    `json:"project_id"`
	TaskName    string     `json:"task_name"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Duration    int64      `json:"duration"`
	IsRunning   bool       `json:"is_running"`
	CreatedAt   time.Time  `json:"created_at"`
}

type DailySummaryResponse struct {
	Date          string          `json:"date"`
	TotalDuration int64           `json:"total_duration"`
	EntriesCount  int             `json:"entries_count"`
	Entries       []EntryResponse `json:"entries"`
}

type SummariesResponse struct {
	Summaries []db.SummaryBucket `json:"summaries"`
}

type EODResponse struct {
	Date          string          `json:"date"`
	TotalDuration int64           `json:"total_duration"`
	Entries       []EntryResponse `json:"entries"`
}

// Conversion methods

func EntryToResponse(entry *db.TimeEntry) EntryResponse {
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		ID:          entry.ID,
		UserID:      entry.UserID,
		ProjectID:   entry.ProjectID,
		TaskName:    entry.TaskName,
		Description: entry.Description,
		Tags:        tags,
		StartTime:   entry.StartTime,
		EndTime:     entry.EndTime,
		Duration:    entry.Duration,
		IsRunning:   entry.IsRunning(),
		CreatedAt:   entry.CreatedAt,
	}
}

func EntriesToResponse(entries []db.TimeEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = EntryToResponse(&entries[i])
	}
	return responses
}

func DailySummaryToResponse(summary *db.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:          summary.Date,
		TotalDuration: summary.TotalDuration,
		EntriesCount:  summary.EntriesCount,
		Entries:       EntriesToResponse(summary.Entries),
	}
}

func EODToResponse(report *db.EODReport) EODResponse {
	return EODResponse{
		Date:          report.Date,
		TotalDuration: report.TotalDuration,
		Entries:       EntriesToResponse(report.Entries),
	}
}
