package config

// IdentityProviderConfig holds settings for the hosted identity provider
type IdentityProviderConfig struct {
	BaseURL    string `env:"IDENTITY_PROVIDER_URL" env-default:"http://localhost:9999"`
	ServiceKey string `env:"IDENTITY_PROVIDER_SERVICE_KEY" env-default:""`
	PageSize   int    `env:"IDENTITY_PROVIDER_PAGE_SIZE" env-default:"100"`
}
