package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/JorgeSaicoski/pgconnect"
	"github.com/google/uuid"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "TimerService"),
)

type entryRepository interface {
	Create(entry *db.TimeEntry) error
	Update(entry *db.TimeEntry) error
	Delete(entry *db.TimeEntry) error
	FindWhere(dest *[]db.TimeEntry, condition interface{}, args ...interface{}) error
}

type activeTimerRepository interface {
	Create(active *db.ActiveTimer) error
	Delete(active *db.ActiveTimer) error
	FindWhere(dest *[]db.ActiveTimer, condition interface{}, args ...interface{}) error
}

// StartTimerInput carries the caller-editable fields of a new entry.
type StartTimerInput struct {
	TaskName    string
	Description string
	ProjectID   *string
	Tags        []string
}

// TimerService enforces the single-running-entry-per-user rule. The
// ActiveTimer primary key is the durable constraint; the keyed mutex
// serializes same-user transitions in this process so unrelated users
// never contend.
type TimerService struct {
	entryRepo  entryRepository
	activeRepo activeTimerRepository

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex

	now func() time.Time
}

func NewTimerService(database *pgconnect.DB) *TimerService {
	return newTimerService(
		pgconnect.NewRepository[db.TimeEntry](database),
		pgconnect.NewRepository[db.ActiveTimer](database),
	)
}

func newTimerService(entryRepo entryRepository, activeRepo activeTimerRepository) *TimerService {
	return &TimerService{
		entryRepo:  entryRepo,
		activeRepo: activeRepo,
		userLocks:  make(map[string]*sync.Mutex),
		now:        time.Now,
	}
}

func (s *TimerService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// Start creates a running entry for the user. Fails with Conflict when
// the user already has one.
func (s *TimerService) Start(userID string, in StartTimerInput) (*db.TimeEntry, error) {
	if in.TaskName == "" {
		return nil, apperrors.Validation("task_name must not be empty")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var active []db.ActiveTimer
	if err := s.activeRepo.FindWhere(&active, "user_id = ?", userID); err != nil {
		log.Error("start-timer:active-check-failed", "userID", userID, "err", err)
		return nil, apperrors.Storage("check active timer", err)
	}
	if len(active) > 0 {
		log.Warn("start-timer:conflict", "userID", userID, "entryID", active[0].EntryID)
		return nil, apperrors.Conflict("timer already running")
	}

	now := s.now()
	entry := &db.TimeEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProjectID:   in.ProjectID,
		TaskName:    in.TaskName,
		Description: in.Description,
		Tags:        append([]string(nil), in.Tags...),
		StartTime:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		log.Error("start-timer:entry-insert-failed", "userID", userID, "err", err)
		return nil, apperrors.Storage("create entry", err)
	}

	claim := &db.ActiveTimer{
		UserID:    userID,
		EntryID:   entry.ID,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.activeRepo.Create(claim); err != nil {
		// Lost the race on the primary key: another start claimed the
		// user first. Roll back the orphan entry and report the conflict.
		s.entryRepo.Delete(entry)
		log.Warn("start-timer:claim-lost", "userID", userID, "err", err)
		return nil, apperrors.Conflict("timer already running")
	}

	log.Info("start-timer:success", "userID", userID, "entryID", entry.ID)
	return entry, nil
}

// Stop completes the user's running entry. Fails with NotRunning when
// there is none.
func (s *TimerService) Stop(userID string) (*db.TimeEntry, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var active []db.ActiveTimer
	if err := s.activeRepo.FindWhere(&active, "user_id = ?", userID); err != nil {
		log.Error("stop-timer:active-lookup-failed", "userID", userID, "err", err)
		return nil, apperrors.Storage("find active timer", err)
	}
	if len(active) == 0 {
		return nil, apperrors.NotRunning("no running timer found")
	}
	claim := active[0]

	var entries []db.TimeEntry
	if err := s.entryRepo.FindWhere(&entries, "id = ? AND user_id = ?", claim.EntryID, userID); err != nil {
		log.Error("stop-timer:entry-lookup-failed", "userID", userID, "err", err)
		return nil, apperrors.Storage("find running entry", err)
	}
	if len(entries) == 0 {
		// Stale claim without an entry behind it. Drop it so the user is
		// not stuck with a phantom timer.
		s.activeRepo.Delete(&claim)
		log.Warn("stop-timer:stale-claim", "userID", userID, "entryID", claim.EntryID)
		return nil, apperrors.NotRunning("no running timer found")
	}
	entry := entries[0]

	end := s.now()
	entry.EndTime = &end
	entry.Duration = int64(end.Sub(entry.StartTime) / time.Second)
	if entry.Duration < 0 {
		entry.Duration = 0
	}
	entry.UpdatedAt = end

	if err := s.entryRepo.Update(&entry); err != nil {
		log.Error("stop-timer:entry-update-failed", "userID", userID, "err", err)
		return nil, apperrors.Storage("update entry", err)
	}

	if err := s.activeRepo.Delete(&claim); err != nil {
		log.Error("stop-timer:claim-delete-failed", "userID", userID, "err", err)
		return nil, apperrors.Storage("release active timer", err)
	}

	log.Info("stop-timer:success", "userID", userID, "entryID", entry.ID, "duration", entry.Duration)
	return &entry, nil
}

// Current returns the user's running entry, or nil when none exists.
func (s *TimerService) Current(userID string) (*db.TimeEntry, error) {
	var active []db.ActiveTimer
	if err := s.activeRepo.FindWhere(&active, "user_id = ?", userID); err != nil {
		return nil, apperrors.Storage("find active timer", err)
	}
	if len(active) == 0 {
		return nil, nil
	}

	var entries []db.TimeEntry
	if err := s.entryRepo.FindWhere(&entries, "id = ? AND user_id = ?", active[0].EntryID, userID); err != nil {
		return nil, apperrors.Storage("find running entry", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}
