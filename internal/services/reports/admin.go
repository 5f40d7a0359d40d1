package reports

import (
	"sort"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

// PlatformReport aggregates every user's entries in a single pass.
// Running entries count toward total_entries but add no duration.
func (s *ReportService) PlatformReport() (*db.AdminReport, error) {
	var users []db.User
	if err := s.userRepo.FindAll(&users); err != nil {
		log.Error("platform-report:users-query-failed", "err", err)
		return nil, apperrors.Storage("list users", err)
	}

	var entries []db.TimeEntry
	if err := s.entryRepo.FindAll(&entries); err != nil {
		log.Error("platform-report:entries-query-failed", "err", err)
		return nil, apperrors.Storage("list entries", err)
	}

	report := &db.AdminReport{TotalUsers: len(users)}
	for _, entry := range entries {
		report.TotalEntries++
		if !entry.IsRunning() {
			report.TotalDuration += entry.Duration
		}
	}
	if report.TotalEntries > 0 {
		report.AverageDurationPerEntry = float64(report.TotalDuration) / float64(report.TotalEntries)
	}

	log.Info("platform-report:success",
		"users", report.TotalUsers, "entries", report.TotalEntries, "duration", report.TotalDuration)
	return report, nil
}

// UserStats returns one row per registered user, zero-entry users
// included, in registration order. last_activity is the max start_time.
func (s *ReportService) UserStats() ([]db.UserStat, error) {
	var users []db.User
	if err := s.userRepo.FindAll(&users); err != nil {
		log.Error("user-stats:users-query-failed", "err", err)
		return nil, apperrors.Storage("list users", err)
	}

	var entries []db.TimeEntry
	if err := s.entryRepo.FindAll(&entries); err != nil {
		log.Error("user-stats:entries-query-failed", "err", err)
		return nil, apperrors.Storage("list entries", err)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	stats := make([]db.UserStat, len(users))
	index := make(map[string]int, len(users))
	for i, user := range users {
		stats[i] = db.UserStat{User: user}
		index[user.ID] = i
	}

	for _, entry := range entries {
		i, ok := index[entry.UserID]
		if !ok {
			// Entry from an identity that never hit this service's
			// provisioning path; nothing to attribute it to.
			continue
		}
		stats[i].TotalEntries++
		if !entry.IsRunning() {
			stats[i].TotalDuration += entry.Duration
		}
		if stats[i].LastActivity == nil || entry.StartTime.After(*stats[i].LastActivity) {
			start := entry.StartTime
			stats[i].LastActivity = &start
		}
	}

	return stats, nil
}
