package db

import (
	"time"
)

// TimeEntry represents a single tracked block of work time
type TimeEntry struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;not null"`    // Owner, immutable
	ProjectID   *string    `json:"project_id"`                       // Back-reference to project-core, optional
	TaskName    string     `json:"task_name" gorm:"not null"`        // Never empty
	Description string     `json:"description"`                      // Optional free text
	Tags        []string   `json:"tags" gorm:"serializer:json"`      // Display order preserved
	StartTime   time.Time  `json:"start_time" gorm:"index;not null"` // Immutable after creation
	EndTime     *time.Time `json:"end_time"`                         // nil while the timer runs
	Duration    int64      `json:"duration" gorm:"default:0"`        // Whole seconds, set on stop
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsRunning reports whether the entry's timer is still open.
func (e *TimeEntry) IsRunning() bool {
	return e.EndTime == nil
}

// ActiveTimer tracks a user's running entry (one per user max).
// The user_id primary key is the storage-level check-and-set: a second
// start for the same user fails on the key instead of racing a lookup.
type ActiveTimer struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	EntryID   string    `json:"entry_id" gorm:"not null"`
	StartedAt time.Time `json:"started_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is the local registry row behind an authenticated identity.
// Provisioned lazily by the auth middleware; admin reports iterate it.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	Role      string    `json:"role" gorm:"default:'user'"` // user, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailySummary represents one user's aggregated day
type DailySummary struct {
	Date          string      `json:"date"` // YYYY-MM-DD in the reporting timezone
	TotalDuration int64       `json:"total_duration"`
	EntriesCount  int         `json:"entries_count"`
	Entries       []TimeEntry `json:"entries"` // start_time ascending, running entry included
}

// SummaryBucket is one day of a weekly/monthly trailing window
type SummaryBucket struct {
	Date          string `json:"date"`
	TotalDuration int64  `json:"total_duration"`
	EntriesCount  int    `json:"entries_count"`
}

// EODReport is the flat end-of-day review view of a single day
type EODReport struct {
	Date          string      `json:"date"`
	TotalDuration int64       `json:"total_duration"`
	Entries       []TimeEntry `json:"entries"`
}

// AdminReport represents platform-wide aggregate statistics
type AdminReport struct {
	TotalUsers              int     `json:"total_users"`
	TotalEntries            int     `json:"total_entries"`
	TotalDuration           int64   `json:"total_duration"`
	AverageDurationPerEntry float64 `json:"average_duration_per_entry"` // 0 when no entries
}

// UserStat is one row of the per-user admin listing
type UserStat struct {
	User          User       `json:"user"`
	TotalEntries  int        `json:"total_entries"`
	TotalDuration int64      `json:"total_duration"`
	LastActivity  *time.Time `json:"last_activity"` // max start_time, nil when no entries
}

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
