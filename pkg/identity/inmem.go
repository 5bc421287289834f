package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemProvider implements Provider using in-memory storage. It is used by
// tests and the no-database demo binary. All data is lost on restart.
type InMemProvider struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]Account
	// refresh token -> account id, as issued by IssueTokenPair
	sessions map[string]uuid.UUID
	now      func() time.Time
}

// InMemProviderOption is a functional option for configuring InMemProvider
type InMemProviderOption func(*InMemProvider)

// WithNow overrides the provider's clock, for tests
func WithNow(now func() time.Time) InMemProviderOption {
	return func(p *InMemProvider) {
		p.now = now
	}
}

// NewInMemProvider creates a new in-memory identity provider
func NewInMemProvider(opts ...InMemProviderOption) *InMemProvider {
	p := &InMemProvider{
		accounts: make(map[uuid.UUID]Account),
		sessions: make(map[string]uuid.UUID),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// CreateAccount creates an unconfirmed account
func (p *InMemProvider) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, a := range p.accounts {
		if a.Email == params.Email {
			return Account{}, ErrEmailTaken
		}
	}

	account := Account{
		ID:        uuid.New(),
		Email:     params.Email,
		CreatedAt: p.now().UTC(),
	}
	p.accounts[account.ID] = account

	return account, nil
}

// ListAccounts returns one page of accounts ordered by creation time
func (p *InMemProvider) ListAccounts(ctx context.Context, params ListAccountsParams) (AccountPage, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	all := make([]Account, 0, len(p.accounts))
	for _, a := range p.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	start := (page - 1) * perPage
	if start >= len(all) {
		return AccountPage{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}

	result := AccountPage{Accounts: all[start:end]}
	if end < len(all) {
		result.NextPage = page + 1
	}

	return result, nil
}

// DeleteAccount removes an account by id
func (p *InMemProvider) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(p.accounts, id)

	return nil
}

// ExchangeSession consumes a previously issued token pair, confirms the
// account's email and returns a session. Each pair is usable exactly once.
func (p *InMemProvider) ExchangeSession(ctx context.Context, accessToken, refreshToken string) (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	accountID, ok := p.sessions[refreshToken]
	if !ok {
		return Session{}, ErrInvalidTokenPair
	}
	delete(p.sessions, refreshToken)

	account, ok := p.accounts[accountID]
	if !ok {
		return Session{}, ErrAccountNotFound
	}

	if account.EmailConfirmedAt == nil {
		confirmedAt := p.now().UTC()
		account.EmailConfirmedAt = &confirmedAt
		p.accounts[accountID] = account
	}

	return Session{
		AccessToken:  accessToken,
		RefreshToken: randomToken(),
		TokenType:    "bearer",
		ExpiresIn:    3600,
	}, nil
}

// ResendVerification checks the address belongs to an unconfirmed account
func (p *InMemProvider) ResendVerification(ctx context.Context, email string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, a := range p.accounts {
		if a.Email == email {
			if a.EmailConfirmedAt != nil {
				return &ProviderError{Status: 422, Message: "email already confirmed"}
			}
			return nil
		}
	}

	return ErrAccountNotFound
}

// IssueTokenPair mints a token pair for an account, standing in for the
// emailed verification link. Used by tests and the demo binary.
func (p *InMemProvider) IssueTokenPair(id uuid.UUID) (accessToken, refreshToken string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[id]; !ok {
		return "", "", ErrAccountNotFound
	}

	accessToken = randomToken()
	refreshToken = randomToken()
	p.sessions[refreshToken] = id

	return accessToken, refreshToken, nil
}

// GetAccount returns an account by id
func (p *InMemProvider) GetAccount(id uuid.UUID) (Account, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	account, ok := p.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}

	return account, nil
}

// SetCreatedAt backdates an account's creation time, for tests
func (p *InMemProvider) SetCreatedAt(id uuid.UUID, createdAt time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if account, ok := p.accounts[id]; ok {
		account.CreatedAt = createdAt
		p.accounts[id] = account
	}
}

func randomToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
