package signup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-lifecycle/pkg/cleanup"
	"github.com/tendant/simple-lifecycle/pkg/identity"
	"github.com/tendant/simple-lifecycle/pkg/profile"
)

func setupHandle() (*Handle, *identity.InMemProvider, *profile.InMemProfileRepository) {
	provider := identity.NewInMemProvider()
	profiles := profile.NewInMemProfileRepository()
	service := NewRegistrationService(provider, profiles)
	return NewHandle(service), provider, profiles
}

func TestHandleRegister_Success(t *testing.T) {
	handle, _, _ := setupHandle()

	body := `{"email":"alice@example.com","password":"secret123","name":"Alice","is_student":true}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handle.Register(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "alice@example.com", resp.Data.User.Email)
	assert.NotEmpty(t, resp.Data.User.ID)
	assert.NotEmpty(t, resp.Data.User.CreatedAt)
	assert.Contains(t, resp.Data.Message, "check your email")
}

func TestHandleRegister_InvalidBody(t *testing.T) {
	handle, _, _ := setupHandle()

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handle.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.NotEmpty(t, *resp.Error)
}

func TestHandleRegister_MissingFields(t *testing.T) {
	handle, _, _ := setupHandle()

	body := `{"email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handle.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Email, password, and name are required", *resp.Error)
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	handle, _, _ := setupHandle()

	body := `{"email":"bob@example.com","password":"secret123","name":"Bob"}`

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	handle.Register(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w = httptest.NewRecorder()
	handle.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
}

// Full lifecycle: a registered account survives an immediate cleanup run,
// then gets reaped once it ages past the grace period unverified.
func TestRegisterThenCleanup(t *testing.T) {
	handle, provider, profiles := setupHandle()

	body := `{"email":"eve@example.com","password":"secret123","name":"Eve"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	handle.Register(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Contains(t, resp.Data.Message, "check your email")

	accountID, err := uuid.Parse(resp.Data.User.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	service := cleanup.NewCleanupService(provider, profiles,
		cleanup.WithClock(func() time.Time { return now }),
	)

	// A fresh unverified account is inside the grace period
	result := service.Run(context.Background())
	assert.True(t, result.Success)
	assert.Zero(t, result.DeletedCount)

	// 25 hours later it is expired and both halves are removed
	later := cleanup.NewCleanupService(provider, profiles,
		cleanup.WithClock(func() time.Time { return now.Add(25 * time.Hour) }),
	)
	result = later.Run(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.DeletedCount)

	_, err = provider.GetAccount(accountID)
	assert.ErrorIs(t, err, identity.ErrAccountNotFound)
	_, err = profiles.GetProfile(context.Background(), accountID)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

// The response body always carries both keys, with exactly one non-null.
func TestHandleRegister_ResponseShape(t *testing.T) {
	handle, _, _ := setupHandle()

	bodies := []string{
		`{"email":"carol@example.com","password":"secret123","name":"Carol"}`,
		`{"email":"carol@example.com"}`,
	}

	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		handle.Register(w, req)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Contains(t, raw, "data")
		require.Contains(t, raw, "error")

		dataNull := string(raw["data"]) == "null"
		errorNull := string(raw["error"]) == "null"
		assert.NotEqual(t, dataNull, errorNull, "exactly one of data and error must be set: %s", w.Body.String())
	}
}
