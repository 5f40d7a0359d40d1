package reports

import (
	"log/slog"
	"sort"
	"time"

	"github.com/JorgeSaicoski/pgconnect"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	clients "github.com/JorgeSaicoski/time-keeper/internal/client"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "ReportService"),
)

// Trailing window lengths, in calendar days ending today.
const (
	WeeklyWindowDays  = 7
	MonthlyWindowDays = 30
)

type entryRepository interface {
	FindAll(dest *[]db.TimeEntry) error
	FindWhere(dest *[]db.TimeEntry, condition interface{}, args ...interface{}) error
}

type userRepository interface {
	FindAll(dest *[]db.User) error
	FindWhere(dest *[]db.User, condition interface{}, args ...interface{}) error
}

// ReportService computes summaries, admin aggregates and exports from
// stored entries. All bucketing happens in the configured reporting
// timezone; an entry belongs wholly to the day its start_time falls on,
// even when it ends after midnight.
type ReportService struct {
	entryRepo entryRepository
	userRepo  userRepository
	projects  clients.ProjectClient
	loc       *time.Location

	now func() time.Time
}

func NewReportService(database *pgconnect.DB, projects clients.ProjectClient, loc *time.Location) *ReportService {
	return newReportService(
		pgconnect.NewRepository[db.TimeEntry](database),
		pgconnect.NewRepository[db.User](database),
		projects,
		loc,
	)
}

func newReportService(entryRepo entryRepository, userRepo userRepository, projects clients.ProjectClient, loc *time.Location) *ReportService {
	return &ReportService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		projects:  projects,
		loc:       loc,
		now:       time.Now,
	}
}

// Daily summarizes one calendar day. An empty date means today in the
// reporting timezone. Running entries count toward entries_count but
// contribute no duration.
func (s *ReportService) Daily(userID, date string) (*db.DailySummary, error) {
	if date == "" {
		date = s.now().In(s.loc).Format("2006-01-02")
	}

	entries, err := s.entriesForDay(userID, date)
	if err != nil {
		return nil, err
	}

	total, count := summarize(entries)
	return &db.DailySummary{
		Date:          date,
		TotalDuration: total,
		EntriesCount:  count,
		Entries:       entries,
	}, nil
}

// Weekly returns one bucket per day for the trailing 7 calendar days
// ending today, most recent last. Empty days appear with zero totals.
func (s *ReportService) Weekly(userID string) ([]db.SummaryBucket, error) {
	return s.trailing(userID, WeeklyWindowDays)
}

// Monthly is Weekly with a 30 day window.
func (s *ReportService) Monthly(userID string) ([]db.SummaryBucket, error) {
	return s.trailing(userID, MonthlyWindowDays)
}

// EOD returns the flat end-of-day review view: the same selection as
// Daily, shaped for the editable report screen.
func (s *ReportService) EOD(userID, date string) (*db.EODReport, error) {
	summary, err := s.Daily(userID, date)
	if err != nil {
		return nil, err
	}
	return &db.EODReport{
		Date:          summary.Date,
		TotalDuration: summary.TotalDuration,
		Entries:       summary.Entries,
	}, nil
}

func (s *ReportService) trailing(userID string, days int) ([]db.SummaryBucket, error) {
	today := s.now().In(s.loc)
	windowStart := startOfDay(today.AddDate(0, 0, -(days-1)), s.loc)
	windowEnd := startOfDay(today, s.loc).AddDate(0, 0, 1)

	var entries []db.TimeEntry
	if err := s.entryRepo.FindWhere(&entries,
		"user_id = ? AND start_time >= ? AND start_time < ?", userID, windowStart, windowEnd); err != nil {
		log.Error("trailing-summary:query-failed", "userID", userID, "days", days, "err", err)
		return nil, apperrors.Storage("list entries for summary", err)
	}

	buckets := make([]db.SummaryBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = db.SummaryBucket{Date: date}
		index[date] = i
	}

	for _, entry := range entries {
		date := entry.StartTime.In(s.loc).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			continue
		}
		buckets[i].EntriesCount++
		if !entry.IsRunning() {
			buckets[i].TotalDuration += entry.Duration
		}
	}
	return buckets, nil
}

func (s *ReportService) entriesForDay(userID, date string) ([]db.TimeEntry, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, apperrors.Validation("invalid date format, use YYYY-MM-DD")
	}

	var entries []db.TimeEntry
	if err := s.entryRepo.FindWhere(&entries,
		"user_id = ? AND start_time >= ? AND start_time < ?", userID, day, day.AddDate(0, 0, 1)); err != nil {
		log.Error("daily-summary:query-failed", "userID", userID, "date", date, "err", err)
		return nil, apperrors.Storage("list entries for day", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartTime.Before(entries[j].StartTime)
	})
	return entries, nil
}

// summarize sums completed durations and counts every entry, running
// ones included.
func summarize(entries []db.TimeEntry) (total int64, count int) {
	for _, entry := range entries {
		count++
		if !entry.IsRunning() {
			total += entry.Duration
		}
	}
	return total, count
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
