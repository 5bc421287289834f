package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultPerPage = 50

// HTTPProvider is a Provider implementation backed by the identity
// provider's REST admin API. Admin endpoints are authenticated with a
// service key; the token exchange endpoint is public.
type HTTPProvider struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	perPage    int
}

// HTTPProviderOption is a functional option for configuring HTTPProvider
type HTTPProviderOption func(*HTTPProvider)

// WithHTTPClient sets a custom http.Client, mainly for tests
func WithHTTPClient(client *http.Client) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.httpClient = client
	}
}

// WithPerPage sets the page size used when a caller does not specify one
func WithPerPage(perPage int) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.perPage = perPage
	}
}

// NewHTTPProvider creates a provider client for the given base URL and
// service key.
func NewHTTPProvider(baseURL, serviceKey string, opts ...HTTPProviderOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		perPage:    defaultPerPage,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

type createAccountRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
	// The provider creates the account unconfirmed and dispatches the
	// verification email when this is set.
	SendConfirmation bool `json:"send_confirmation_email"`
}

// CreateAccount creates an unconfirmed account via POST /admin/accounts.
func (p *HTTPProvider) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	body := createAccountRequest{
		Email:            params.Email,
		Password:         params.Password,
		SendConfirmation: true,
	}
	if params.Name != "" {
		body.Metadata = map[string]string{"name": params.Name}
	}

	var account Account
	err := p.do(ctx, http.MethodPost, "/admin/accounts", body, &account)
	if err != nil {
		slog.Error("Failed to create identity account", "email", params.Email, "error", err)
		return Account{}, err
	}

	slog.Info("Identity account created", "account_id", account.ID, "email", account.Email)
	return account, nil
}

type listAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// ListAccounts fetches one page via GET /admin/accounts?page=&per_page=.
func (p *HTTPProvider) ListAccounts(ctx context.Context, params ListAccountsParams) (AccountPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = p.perPage
	}

	path := fmt.Sprintf("/admin/accounts?page=%d&per_page=%d", page, perPage)

	var resp listAccountsResponse
	err := p.do(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return AccountPage{}, err
	}

	result := AccountPage{Accounts: resp.Accounts}
	// A full page means there may be more; an empty next page terminates
	// the walk on the caller's next call.
	if len(resp.Accounts) == perPage {
		result.NextPage = page + 1
	}

	return result, nil
}

// DeleteAccount removes an account via DELETE /admin/accounts/{id}.
func (p *HTTPProvider) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := p.do(ctx, http.MethodDelete, "/admin/accounts/"+id.String(), nil, nil)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && pe.Status == http.StatusNotFound {
			return ErrAccountNotFound
		}
		return err
	}

	slog.Info("Identity account deleted", "account_id", id)
	return nil
}

type exchangeSessionRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ExchangeSession exchanges a verification token pair via POST /session.
func (p *HTTPProvider) ExchangeSession(ctx context.Context, accessToken, refreshToken string) (Session, error) {
	body := exchangeSessionRequest{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	var session Session
	err := p.do(ctx, http.MethodPost, "/session", body, &session)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && (pe.Status == http.StatusUnauthorized || pe.Status == http.StatusForbidden) {
			return Session{}, ErrInvalidTokenPair
		}
		return Session{}, err
	}

	return session, nil
}

type resendRequest struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// ResendVerification re-triggers the signup confirmation email via POST /resend.
func (p *HTTPProvider) ResendVerification(ctx context.Context, email string) error {
	body := resendRequest{Type: "signup", Email: email}
	return p.do(ctx, http.MethodPost, "/resend", body, nil)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one JSON request against the provider and decodes the
// response into out when it is non-nil.
func (p *HTTPProvider) do(ctx context.Context, method, path string, body, out interface{}) error {
	base, err := url.Parse(p.baseURL)
	if err != nil {
		return fmt.Errorf("invalid provider url: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid provider path: %w", err)
	}
	endpoint := base.ResolveReference(ref).String()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return p.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}

	return nil
}

// decodeError maps a non-2xx provider response to a ProviderError,
// preserving the provider's message when one is given.
func (p *HTTPProvider) decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var er errorResponse
	message := ""
	if err := json.Unmarshal(data, &er); err == nil {
		message = er.Message
		if message == "" {
			message = er.Error
		}
	}

	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity {
		if message == "" {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: %s", ErrEmailTaken, message)
	}

	return &ProviderError{Status: resp.StatusCode, Message: message}
}
