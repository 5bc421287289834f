package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_CreateAccount(t *testing.T) {
	accountID := uuid.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/accounts", r.URL.Path)
		require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, true, body["send_confirmation_email"])
		metadata, ok := body["user_metadata"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Alice", metadata["name"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"email":"alice@example.com","created_at":%q}`,
			accountID, time.Now().UTC().Format(time.RFC3339))
	}))
	defer ts.Close()

	provider := NewHTTPProvider(ts.URL, "service-key")

	account, err := provider.CreateAccount(context.Background(), CreateAccountParams{
		Email: "alice@example.com", Password: "secret123", Name: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, accountID, account.ID)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Nil(t, account.EmailConfirmedAt)
}

func TestHTTPProvider_CreateAccount_EmailTaken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"A user with this email address has already been registered"}`)
	}))
	defer ts.Close()

	provider := NewHTTPProvider(ts.URL, "service-key")

	_, err := provider.CreateAccount(context.Background(), CreateAccountParams{
		Email: "alice@example.com", Password: "secret123", Name: "Alice",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)
	// The provider's own message is preserved for the caller
	assert.Contains(t, err.Error(), "already been registered")
}

func TestHTTPProvider_ListAccounts_Pagination(t *testing.T) {
	makeAccounts := func(n int) []Account {
		accounts := make([]Account, n)
		for i := range accounts {
			accounts[i] = Account{
				ID:        uuid.New(),
				Email:     fmt.Sprintf("user%d@example.com", i),
				CreatedAt: time.Now().UTC(),
			}
		}
		return accounts
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/accounts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			json.NewEncoder(w).Encode(map[string]interface{}{"accounts": makeAccounts(2)})
		case "2":
			json.NewEncoder(w).Encode(map[string]interface{}{"accounts": makeAccounts(1)})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer ts.Close()

	provider := NewHTTPProvider(ts.URL, "service-key")
	ctx := context.Background()

	// A full page signals a possible next page
	page, err := provider.ListAccounts(ctx, ListAccountsParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Accounts, 2)
	assert.Equal(t, 2, page.NextPage)

	// A short page terminates the walk
	page, err = provider.ListAccounts(ctx, ListAccountsParams{Page: page.NextPage, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Accounts, 1)
	assert.Zero(t, page.NextPage)
}

func TestHTTPProvider_DeleteAccount(t *testing.T) {
	id := uuid.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/admin/accounts/"+id.String() {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	provider := NewHTTPProvider(ts.URL, "service-key")
	ctx := context.Background()

	assert.NoError(t, provider.DeleteAccount(ctx, id))

	err := provider.DeleteAccount(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestHTTPProvider_ExchangeSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/session", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		if body["refresh_token"] != "good-refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid token"}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"session-access","refresh_token":"session-refresh","token_type":"bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	provider := NewHTTPProvider(ts.URL, "service-key")
	ctx := context.Background()

	session, err := provider.ExchangeSession(ctx, "access", "good-refresh")
	require.NoError(t, err)
	assert.Equal(t, "session-access", session.AccessToken)
	assert.Equal(t, "session-refresh", session.RefreshToken)
	assert.Equal(t, "bearer", session.TokenType)

	_, err = provider.ExchangeSession(ctx, "access", "bad-refresh")
	assert.ErrorIs(t, err, ErrInvalidTokenPair)
}

func TestHTTPProvider_ResendVerification(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/resend", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "signup", body["type"])

		if body["email"] == "known@example.com" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"user not found"}`)
	}))
	defer ts.Close()

	provider := NewHTTPProvider(ts.URL, "service-key")
	ctx := context.Background()

	assert.NoError(t, provider.ResendVerification(ctx, "known@example.com"))

	err := provider.ResendVerification(ctx, "unknown@example.com")
	require.Error(t, err)
	assert.Equal(t, "user not found", Message(err))
}
