package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

// CSVFilename is the attachment name for entry exports.
const CSVFilename = "time_entries.csv"

// NoProjectLabel is rendered when an entry has no project or the
// project-core lookup fails.
const NoProjectLabel = "No Project"

var csvHeader = []string{"Date", "Employee Name", "Project", "Task Description", "Start Time", "End Time", "Total Time"}

// ExportCSV renders every entry of the user as a flat CSV, most recent
// first. Project names come from project-core; a failed lookup degrades
// to "No Project" instead of failing the export.
func (s *ReportService) ExportCSV(ctx context.Context, userID string) (string, error) {
	var users []db.User
	if err := s.userRepo.FindWhere(&users, "id = ?", userID); err != nil {
		log.Error("export-csv:user-query-failed", "userID", userID, "err", err)
		return "", apperrors.Storage("find user", err)
	}
	employeeName := userID
	if len(users) > 0 && users[0].Name != "" {
		employeeName = users[0].Name
	}

	var entries []db.TimeEntry
	if err := s.entryRepo.FindWhere(&entries, "user_id = ?", userID); err != nil {
		log.Error("export-csv:entries-query-failed", "userID", userID, "err", err)
		return "", apperrors.Storage("list entries", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return "", apperrors.Storage("write csv header", err)
	}

	projectNames := make(map[string]string)
	for _, entry := range entries {
		row := []string{
			entry.StartTime.In(s.loc).Format("2006-01-02"),
			employeeName,
			s.projectName(ctx, entry.ProjectID, projectNames),
			entry.TaskName,
			formatClock(entry.StartTime, s.loc),
			formatEndClock(entry.EndTime, s.loc),
			FormatDuration(entry.Duration),
		}
		if err := writer.Write(row); err != nil {
			return "", apperrors.Storage("write csv row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", apperrors.Storage("flush csv", err)
	}

	log.Info("export-csv:success", "userID", userID, "rows", len(entries))
	return buf.String(), nil
}

func (s *ReportService) projectName(ctx context.Context, projectID *string, cache map[string]string) string {
	if projectID == nil || *projectID == "" {
		return NoProjectLabel
	}
	if name, ok := cache[*projectID]; ok {
		return name
	}

	name := NoProjectLabel
	if s.projects != nil {
		project, err := s.projects.GetProject(ctx, *projectID)
		if err != nil {
			log.Warn("export-csv:project-lookup-failed", "projectID", *projectID, "err", err)
		} else if project.Name != "" {
			name = project.Name
		}
	}
	cache[*projectID] = name
	return name
}

// FormatDuration renders whole seconds as "{hours}h {minutes}m",
// floored to the minute.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// formatClock renders a timestamp as 12-hour "HH:MM AM/PM".
func formatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("03:04 PM")
}

func formatEndClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return formatClock(*t, loc)
}
