package entries

import (
	"log/slog"
	"sort"
	"time"

	"github.com/JorgeSaicoski/pgconnect"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "EntryService"),
)

// DefaultListLimit caps unbounded list requests.
const DefaultListLimit = 100

type entryRepository interface {
	Update(entry *db.TimeEntry) error
	Delete(entry *db.TimeEntry) error
	FindWhere(dest *[]db.TimeEntry, condition interface{}, args ...interface{}) error
}

type activeTimerRepository interface {
	Delete(active *db.ActiveTimer) error
	FindWhere(dest *[]db.ActiveTimer, condition interface{}, args ...interface{}) error
}

// UpdateEntryInput carries the editable fields of a completed or running
// entry. Nil means "leave unchanged". Identity and time fields are not
// editable here: start_time is immutable and end_time is set exactly once
// by stop, so the end-of-day editor can only correct what was worked on,
// never when.
type UpdateEntryInput struct {
	TaskName    *string
	Description *string
	ProjectID   *string
	Tags        *[]string
}

// EntryService owns entry lookup and the edit/delete rules. Every query
// carries the owner's user_id; entries of other users are reported as
// absent, never as forbidden.
type EntryService struct {
	entryRepo  entryRepository
	activeRepo activeTimerRepository
	loc        *time.Location
}

func NewEntryService(database *pgconnect.DB, loc *time.Location) *EntryService {
	return newEntryService(
		pgconnect.NewRepository[db.TimeEntry](database),
		pgconnect.NewRepository[db.ActiveTimer](database),
		loc,
	)
}

func newEntryService(entryRepo entryRepository, activeRepo activeTimerRepository, loc *time.Location) *EntryService {
	return &EntryService{
		entryRepo:  entryRepo,
		activeRepo: activeRepo,
		loc:        loc,
	}
}

// List returns the user's entries, most recent start_time first. A date
// filter (YYYY-MM-DD) narrows the result to that calendar day in the
// reporting timezone.
func (s *EntryService) List(userID string, limit int, date string) ([]db.TimeEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var entries []db.TimeEntry
	if date != "" {
		dayStart, dayEnd, err := dayWindow(date, s.loc)
		if err != nil {
			return nil, err
		}
		if err := s.entryRepo.FindWhere(&entries,
			"user_id = ? AND start_time >= ? AND start_time < ?", userID, dayStart, dayEnd); err != nil {
			log.Error("list-entries:query-failed", "userID", userID, "err", err)
			return nil, apperrors.Storage("list entries", err)
		}
	} else {
		if err := s.entryRepo.FindWhere(&entries, "user_id = ?", userID); err != nil {
			log.Error("list-entries:query-failed", "userID", userID, "err", err)
			return nil, apperrors.Storage("list entries", err)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Get returns a single entry owned by the user.
func (s *EntryService) Get(id, userID string) (*db.TimeEntry, error) {
	var entries []db.TimeEntry
	if err := s.entryRepo.FindWhere(&entries, "id = ? AND user_id = ?", id, userID); err != nil {
		log.Error("get-entry:query-failed", "entryID", id, "err", err)
		return nil, apperrors.Storage("find entry", err)
	}
	if len(entries) == 0 {
		return nil, apperrors.NotFound("entry", id)
	}
	return &entries[0], nil
}

// Update applies the editable fields and persists. Works on running and
// completed entries alike; duration is never recomputed because the time
// fields cannot change.
func (s *EntryService) Update(id, userID string, in UpdateEntryInput) (*db.TimeEntry, error) {
	entry, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if in.TaskName != nil {
		if *in.TaskName == "" {
			return nil, apperrors.Validation("task_name must not be empty")
		}
		entry.TaskName = *in.TaskName
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}
	if in.ProjectID != nil {
		entry.ProjectID = in.ProjectID
	}
	if in.Tags != nil {
		entry.Tags = append([]string(nil), (*in.Tags)...)
	}
	entry.UpdatedAt = time.Now()

	if err := s.entryRepo.Update(entry); err != nil {
		log.Error("update-entry:db-update-failed", "entryID", id, "err", err)
		return nil, apperrors.Storage("update entry", err)
	}

	log.Info("update-entry:success", "entryID", id, "userID", userID)
	return entry, nil
}

// Delete removes an entry owned by the user. Deleting a running entry
// also releases its active-timer claim so the user can start again.
func (s *EntryService) Delete(id, userID string) error {
	entry, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(entry); err != nil {
		log.Error("delete-entry:db-delete-failed", "entryID", id, "err", err)
		return apperrors.Storage("delete entry", err)
	}

	if entry.IsRunning() {
		var active []db.ActiveTimer
		if err := s.activeRepo.FindWhere(&active, "user_id = ?", userID); err != nil {
			log.Error("delete-entry:claim-lookup-failed", "userID", userID, "err", err)
			return apperrors.Storage("find active timer", err)
		}
		if len(active) > 0 && active[0].EntryID == id {
			if err := s.activeRepo.Delete(&active[0]); err != nil {
				log.Error("delete-entry:claim-delete-failed", "userID", userID, "err", err)
				return apperrors.Storage("release active timer", err)
			}
		}
	}

	log.Info("delete-entry:success", "entryID", id, "userID", userID)
	return nil
}

// dayWindow resolves a YYYY-MM-DD date to its [00:00, 24:00) window in
// the reporting timezone.
func dayWindow(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("invalid date format, use YYYY-MM-DD")
	}
	return day, day.AddDate(0, 0, 1), nil
}
