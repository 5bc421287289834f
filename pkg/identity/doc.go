// Package identity provides the client for the external identity provider.
//
// The provider is the system of record for authentication credentials and
// email confirmation state. This package exposes the Provider interface
// consumed by signup, verification and cleanup, plus two implementations:
//
//   - HTTPProvider: REST admin client authenticated with a service key
//   - InMemProvider: in-memory double for tests and the demo binary
//
// # Basic Usage
//
//	provider := identity.NewHTTPProvider("https://auth.example.com", serviceKey)
//
//	account, err := provider.CreateAccount(ctx, identity.CreateAccountParams{
//		Email:    "user@example.com",
//		Password: "secret",
//		Name:     "User",
//	})
//
// # Pagination
//
// ListAccounts is page based. Walk pages until NextPage is zero:
//
//	params := identity.ListAccountsParams{Page: 1}
//	for {
//		page, err := provider.ListAccounts(ctx, params)
//		if err != nil {
//			return err
//		}
//		// process page.Accounts
//		if page.NextPage == 0 {
//			break
//		}
//		params.Page = page.NextPage
//	}
package identity
