package cleanup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tendant/simple-lifecycle/pkg/identity"
	"github.com/tendant/simple-lifecycle/pkg/profile"
)

// GracePeriod is how long an unverified account survives before it becomes
// eligible for removal. Fixed policy, not configurable per run.
const GracePeriod = 24 * time.Hour

const defaultPageSize = 100

// RunResult is the outcome of one cleanup run
type RunResult struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	FailedCount  int    `json:"failedCount,omitempty"`
	Error        string `json:"error,omitempty"`
}

// CleanupService removes identity accounts that stayed unverified past the
// grace period, together with their profile rows. Each run is stateless
// and recomputes its working set from current provider data.
type CleanupService struct {
	provider identity.Provider
	profiles profile.ProfileRepository
	grace    time.Duration
	pageSize int
	now      func() time.Time
}

// CleanupServiceOption is a functional option for configuring CleanupService
type CleanupServiceOption func(*CleanupService)

// WithClock overrides the service clock, for deterministic tests
func WithClock(now func() time.Time) CleanupServiceOption {
	return func(s *CleanupService) {
		s.now = now
	}
}

// WithGracePeriod overrides the grace period, for tests that compress time
func WithGracePeriod(grace time.Duration) CleanupServiceOption {
	return func(s *CleanupService) {
		s.grace = grace
	}
}

// WithPageSize sets the provider listing page size
func WithPageSize(pageSize int) CleanupServiceOption {
	return func(s *CleanupService) {
		s.pageSize = pageSize
	}
}

// NewCleanupService creates a new CleanupService
func NewCleanupService(provider identity.Provider, profiles profile.ProfileRepository, opts ...CleanupServiceOption) *CleanupService {
	s := &CleanupService{
		provider: provider,
		profiles: profiles,
		grace:    GracePeriod,
		pageSize: defaultPageSize,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one cleanup pass: scan the provider's full account listing,
// select accounts unverified for at least the grace period, then reap
// each sequentially. Sequential processing bounds load on the provider
// and keeps per-record failures attributable in the logs. A listing
// failure is fatal for the run; a single record's failure is not.
func (s *CleanupService) Run(ctx context.Context) RunResult {
	expired, err := s.scan(ctx)
	if err != nil {
		slog.Error("Cleanup scan failed", "error", err)
		return RunResult{Success: false, Error: err.Error()}
	}

	deleted := 0
	failed := 0
	for _, account := range expired {
		if err := s.reap(ctx, account); err != nil {
			slog.Error("Failed to reap account", "account_id", account.ID, "email", account.Email, "error", err)
			failed++
			continue
		}
		slog.Info("Reaped unverified account", "account_id", account.ID, "email", account.Email)
		deleted++
	}

	slog.Info("Cleanup run complete", "scanned_expired", len(expired), "deleted", deleted, "failed", failed)
	return RunResult{Success: true, DeletedCount: deleted, FailedCount: failed}
}

// scan walks the provider listing page by page and selects accounts whose
// email is unconfirmed and whose age meets or exceeds the grace period.
// Accounts are kept in provider listing order.
func (s *CleanupService) scan(ctx context.Context) ([]identity.Account, error) {
	cutoff := s.now().UTC().Add(-s.grace)

	var expired []identity.Account
	params := identity.ListAccountsParams{Page: 1, PerPage: s.pageSize}
	for {
		page, err := s.provider.ListAccounts(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, account := range page.Accounts {
			if account.IsConfirmed() {
				continue
			}
			if account.CreatedAt.After(cutoff) {
				continue
			}
			expired = append(expired, account)
		}

		if page.NextPage == 0 {
			return expired, nil
		}
		params.Page = page.NextPage
	}
}

// reap deletes one account pair: profile row first, then the identity
// account. The profile carries a foreign-key dependency on the account id,
// so the ordering is load-bearing. A profile that was never written (a
// compensated half-registration) is not an error.
func (s *CleanupService) reap(ctx context.Context, account identity.Account) error {
	err := s.profiles.DeleteProfile(ctx, account.ID)
	if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		return err
	}

	return s.provider.DeleteAccount(ctx, account.ID)
}
