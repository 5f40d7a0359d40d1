package entries

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

type fakeEntryRepo struct {
	entries map[string]db.TimeEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]db.TimeEntry)}
}

func (r *fakeEntryRepo) Update(entry *db.TimeEntry) error {
	r.entries[entry.ID] = *entry
	return nil
}

func (r *fakeEntryRepo) Delete(entry *db.TimeEntry) error {
	delete(r.entries, entry.ID)
	return nil
}

func (r *fakeEntryRepo) FindWhere(dest *[]db.TimeEntry, cond interface{}, args ...interface{}) error {
	condition, _ := cond.(string)
	switch condition {
	case "id = ? AND user_id = ?":
		for _, e := range r.entries {
			if e.ID == args[0].(string) && e.UserID == args[1].(string) {
				*dest = append(*dest, e)
			}
		}
	case "user_id = ?":
		for _, e := range r.entries {
			if e.UserID == args[0].(string) {
				*dest = append(*dest, e)
			}
		}
	case "user_id = ? AND start_time >= ? AND start_time < ?":
		from, to := args[1].(time.Time), args[2].(time.Time)
		for _, e := range r.entries {
			if e.UserID == args[0].(string) && !e.StartTime.Before(from) && e.StartTime.Before(to) {
				*dest = append(*dest, e)
			}
		}
	default:
		return fmt.Errorf("unexpected condition %q", condition)
	}
	return nil
}

type fakeActiveRepo struct {
	claims map[string]db.ActiveTimer
}

func newFakeActiveRepo() *fakeActiveRepo {
	return &fakeActiveRepo{claims: make(map[string]db.ActiveTimer)}
}

func (r *fakeActiveRepo) Delete(active *db.ActiveTimer) error {
	delete(r.claims, active.UserID)
	return nil
}

func (r *fakeActiveRepo) FindWhere(dest *[]db.ActiveTimer, cond interface{}, args ...interface{}) error {
	condition, _ := cond.(string)
	if condition != "user_id = ?" {
		return fmt.Errorf("unexpected condition %q", condition)
	}
	if claim, ok := r.claims[args[0].(string)]; ok {
		*dest = append(*dest, claim)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func seedEntry(repo *fakeEntryRepo, id, userID string, start time.Time, duration int64) db.TimeEntry {
	end := start.Add(time.Duration(duration) * time.Second)
	entry := db.TimeEntry{
		ID:        id,
		UserID:    userID,
		TaskName:  "task " + id,
		StartTime: start,
		EndTime:   timePtr(end),
		Duration:  duration,
	}
	repo.entries[id] = entry
	return entry
}

func setupEntryService() (*EntryService, *fakeEntryRepo, *fakeActiveRepo) {
	entryRepo := newFakeEntryRepo()
	activeRepo := newFakeActiveRepo()
	return newEntryService(entryRepo, activeRepo, time.UTC), entryRepo, activeRepo
}

func TestListMostRecentFirst(t *testing.T) {
	service, repo, _ := setupEntryService()
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	seedEntry(repo, "a", "user-1", base, 600)
	seedEntry(repo, "b", "user-1", base.Add(2*time.Hour), 600)
	seedEntry(repo, "c", "user-1", base.Add(time.Hour), 600)
	seedEntry(repo, "other", "user-2", base, 600)

	result, err := service.List("user-1", 0, "")
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "b", result[0].ID)
	assert.Equal(t, "c", result[1].ID)
	assert.Equal(t, "a", result[2].ID)
}

func TestListAppliesLimit(t *testing.T) {
	service, repo, _ := setupEntryService()
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedEntry(repo, fmt.Sprintf("e%d", i), "user-1", base.Add(time.Duration(i)*time.Hour), 60)
	}

	result, err := service.List("user-1", 2, "")
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "e4", result[0].ID)
}

func TestListDateFilter(t *testing.T) {
	service, repo, _ := setupEntryService()
	seedEntry(repo, "in", "user-1", time.Date(2024, 1, 10, 23, 50, 0, 0, time.UTC), 1200)
	seedEntry(repo, "out", "user-1", time.Date(2024, 1, 11, 0, 10, 0, 0, time.UTC), 600)

	result, err := service.List("user-1", 0, "2024-01-10")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "in", result[0].ID)
}

func TestListRejectsBadDate(t *testing.T) {
	service, _, _ := setupEntryService()

	_, err := service.List("user-1", 0, "10/01/2024")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateEditableFields(t *testing.T) {
	service, repo, _ := setupEntryService()
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	seedEntry(repo, "e1", "user-1", start, 3600)

	tags := []string{"deep-work"}
	updated, err := service.Update("e1", "user-1", UpdateEntryInput{
		TaskName:    strPtr("Reviewed designs"),
		Description: strPtr("with notes"),
		ProjectID:   strPtr("project-9"),
		Tags:        &tags,
	})
	require.NoError(t, err)

	assert.Equal(t, "Reviewed designs", updated.TaskName)
	assert.Equal(t, "with notes", updated.Description)
	assert.Equal(t, "project-9", *updated.ProjectID)
	assert.Equal(t, []string{"deep-work"}, updated.Tags)

	// Time fields survive the edit untouched.
	assert.True(t, updated.StartTime.Equal(start))
	assert.Equal(t, int64(3600), updated.Duration)
}

func TestUpdatePartial(t *testing.T) {
	service, repo, _ := setupEntryService()
	seedEntry(repo, "e1", "user-1", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 3600)

	updated, err := service.Update("e1", "user-1", UpdateEntryInput{Description: strPtr("only this")})
	require.NoError(t, err)
	assert.Equal(t, "task e1", updated.TaskName)
	assert.Equal(t, "only this", updated.Description)
}

func TestUpdateRejectsEmptyTaskName(t *testing.T) {
	service, repo, _ := setupEntryService()
	seedEntry(repo, "e1", "user-1", time.Now(), 60)

	_, err := service.Update("e1", "user-1", UpdateEntryInput{TaskName: strPtr("")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateForeignEntryNotFound(t *testing.T) {
	service, repo, _ := setupEntryService()
	seedEntry(repo, "e1", "user-1", time.Now(), 60)

	_, err := service.Update("e1", "user-2", UpdateEntryInput{Description: strPtr("x")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDelete(t *testing.T) {
	service, repo, _ := setupEntryService()
	seedEntry(repo, "e1", "user-1", time.Now(), 60)

	require.NoError(t, service.Delete("e1", "user-1"))
	assert.Empty(t, repo.entries)

	err := service.Delete("e1", "user-1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDeleteRunningEntryReleasesClaim(t *testing.T) {
	service, repo, activeRepo := setupEntryService()
	start := time.Now()
	repo.entries["running"] = db.TimeEntry{
		ID:        "running",
		UserID:    "user-1",
		TaskName:  "open",
		StartTime: start,
	}
	activeRepo.claims["user-1"] = db.ActiveTimer{UserID: "user-1", EntryID: "running", StartedAt: start}

	require.NoError(t, service.Delete("running", "user-1"))
	assert.Empty(t, repo.entries)
	assert.Empty(t, activeRepo.claims)
}
