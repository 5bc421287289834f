package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Account represents an account held by the external identity provider.
// The provider is the system of record for credentials and confirmation state.
type Account struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	CreatedAt        time.Time  `json:"created_at"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
}

// IsConfirmed returns whether the account's email address has been verified.
func (a Account) IsConfirmed() bool {
	return a.EmailConfirmedAt != nil
}

// Session is an authenticated session issued by the identity provider.
// Callers treat it as an opaque bearer credential and pass it through
// to clients without interpreting its contents.
type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type,omitempty"`
	ExpiresIn    int64           `json:"expires_in,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

// CreateAccountParams contains the fields needed to create a provider account.
// Accounts are always created unconfirmed; the provider dispatches the
// verification email itself.
type CreateAccountParams struct {
	Email    string
	Password string
	Name     string
}

// ListAccountsParams controls pagination of the provider's account listing.
// Pages are 1-based.
type ListAccountsParams struct {
	Page    int
	PerPage int
}

// AccountPage is one page of the provider's account listing. NextPage is
// zero when there are no further pages.
type AccountPage struct {
	Accounts []Account
	NextPage int
}

// Provider is the client contract for the external identity provider.
type Provider interface {
	// CreateAccount creates an unconfirmed account and triggers the
	// provider's verification email.
	CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error)

	// ListAccounts returns one page of accounts in provider order.
	ListAccounts(ctx context.Context, params ListAccountsParams) (AccountPage, error)

	// DeleteAccount removes an account by id.
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	// ExchangeSession exchanges a verification token pair for an
	// authenticated session, confirming the account's email.
	ExchangeSession(ctx context.Context, accessToken, refreshToken string) (Session, error)

	// ResendVerification re-triggers the verification email for an address.
	ResendVerification(ctx context.Context, email string) error
}
