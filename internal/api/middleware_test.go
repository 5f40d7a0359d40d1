package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

type fakeRegistry struct {
	admins    map[string]bool
	ensureErr error
	roleErr   error
	ensured   []string
}

func (f *fakeRegistry) EnsureUser(id, email, name string) (*db.User, error) {
	if f.ensureErr != nil {
		return nil, f.ensureErr
	}
	f.ensured = append(f.ensured, id)
	return &db.User{ID: id, Email: email, Name: name}, nil
}

func (f *fakeRegistry) IsAdmin(id string) (bool, error) {
	if f.roleErr != nil {
		return false, f.roleErr
	}
	return f.admins[id], nil
}

// serve runs the middleware ahead of a terminal handler and reports
// whether the handler was reached.
func serve(t *testing.T, mw gin.HandlerFunc, userID string, headers map[string]string) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reached := false
	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) {
			if userID != "" {
				c.Set("userID", userID)
			}
			c.Next()
		},
		mw,
		func(c *gin.Context) {
			reached = true
			c.Status(http.StatusOK)
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder, &reached
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	registry := &fakeRegistry{admins: map[string]bool{"admin-1": true}}

	recorder, reached := serve(t, RequireAdmin(registry), "admin-1", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	registry := &fakeRegistry{admins: map[string]bool{}}

	recorder, reached := serve(t, RequireAdmin(registry), "user-1", nil)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, *reached)
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	registry := &fakeRegistry{admins: map[string]bool{"admin-1": true}}

	recorder, reached := serve(t, RequireAdmin(registry), "", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *reached)
}

func TestRequireAdminRoleCheckFailure(t *testing.T) {
	registry := &fakeRegistry{roleErr: fmt.Errorf("connection refused")}

	recorder, reached := serve(t, RequireAdmin(registry), "user-1", nil)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.False(t, *reached)
}

func TestProvisionUserRecordsIdentity(t *testing.T) {
	registry := &fakeRegistry{}

	recorder, reached := serve(t, ProvisionUser(registry), "user-1", map[string]string{
		"X-User-Email": "ada@example.com",
		"X-User-Name":  "Ada",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
	assert.Equal(t, []string{"user-1"}, registry.ensured)
}

func TestProvisionUserFailureDoesNotBlock(t *testing.T) {
	registry := &fakeRegistry{ensureErr: fmt.Errorf("connection refused")}

	recorder, reached := serve(t, ProvisionUser(registry), "user-1", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
}

func TestProvisionUserSkipsAnonymous(t *testing.T) {
	registry := &fakeRegistry{}

	recorder, reached := serve(t, ProvisionUser(registry), "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
	assert.Empty(t, registry.ensured)
}
