// Package signup handles user registration against the external identity
// provider and the application profile store.
//
// Registration is a two-step write that is not atomic across the pair: the
// identity account is created first (unconfirmed, with the provider
// dispatching the verification email), then the profile row keyed by the
// provider-issued id. A failed profile write triggers a best-effort
// compensating deletion of the account.
//
//	service := signup.NewRegistrationService(provider, profileRepo)
//	result, err := service.Register(ctx, signup.RegisterRequest{
//		Email:    "user@example.com",
//		Password: "secret",
//		Name:     "User",
//	})
//
// Registration is not idempotent: retrying with the same email after a
// partial failure may collide with a surviving identity account if
// compensation failed silently. The cleanup job bounds that window.
package signup
