package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/simple-lifecycle/pkg/cleanup"
	cleanupapi "github.com/tendant/simple-lifecycle/pkg/cleanup/api"
	pkgconfig "github.com/tendant/simple-lifecycle/pkg/config"
	"github.com/tendant/simple-lifecycle/pkg/identity"
	"github.com/tendant/simple-lifecycle/pkg/notification"
	"github.com/tendant/simple-lifecycle/pkg/profile"
	"github.com/tendant/simple-lifecycle/pkg/ratelimit"
	"github.com/tendant/simple-lifecycle/pkg/signup"
	"github.com/tendant/simple-lifecycle/pkg/verification"
)

type JwtConfig struct {
	Secret string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
}

type RateLimitConfig struct {
	PerIPEnabled    bool    `env:"RATELIMIT_PER_IP_ENABLED" env-default:"true"`
	PerIPCapacity   int     `env:"RATELIMIT_PER_IP_CAPACITY" env-default:"100"`
	PerIPRefillRate float64 `env:"RATELIMIT_PER_IP_REFILL_RATE" env-default:"1.67"` // ~100 per minute

	SignupCapacity   int     `env:"RATELIMIT_SIGNUP_CAPACITY" env-default:"5"`
	SignupRefillRate float64 `env:"RATELIMIT_SIGNUP_REFILL_RATE" env-default:"0.017"` // 5 per 5 minutes

	ResendCapacity   int     `env:"RATELIMIT_RESEND_CAPACITY" env-default:"3"`
	ResendRefillRate float64 `env:"RATELIMIT_RESEND_REFILL_RATE" env-default:"0.01"` // 3 per 5 minutes
}

type Config struct {
	AppConfig       app.AppConfig
	DbConfig        pkgconfig.DatabaseConfig
	ProviderConfig  pkgconfig.IdentityProviderConfig
	EmailConfig     pkgconfig.EmailConfig
	CleanupConfig   pkgconfig.CleanupConfig
	JwtConfig       JwtConfig
	RateLimitConfig RateLimitConfig
}

// loadEnvFile loads environment variables from a .env file in the working
// directory, if one exists. Already-set variables win.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("Failed to get current working directory", "error", err)
		return
	}

	envFile := cwd + "/.env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		slog.Error("Failed to load .env file", "error", err, "path", envFile)
		return
	}

	slog.Info("Configuration loaded from .env file", "path", envFile)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	loadEnvFile()

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	pool, err := dbutils.NewDbPool(context.Background(), config.DbConfig.ToDbConfig())
	if err != nil {
		slog.Error("Failed creating dbpool", "db", config.DbConfig.Database, "host", config.DbConfig.Host, "port", config.DbConfig.Port, "user", config.DbConfig.User)
		os.Exit(-1)
	}

	provider := identity.NewHTTPProvider(
		config.ProviderConfig.BaseURL,
		config.ProviderConfig.ServiceKey,
		identity.WithPerPage(config.ProviderConfig.PageSize),
	)

	profileRepo, err := profile.NewProfileRepository("postgres", profile.RepositoryConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed creating profile repository", "error", err)
		os.Exit(-1)
	}

	registrationService := signup.NewRegistrationService(provider, profileRepo)
	verificationService := verification.NewVerificationService(provider)
	cleanupService := cleanup.NewCleanupService(provider, profileRepo,
		cleanup.WithPageSize(config.ProviderConfig.PageSize),
	)

	signupHandle := signup.NewHandle(registrationService)
	verificationHandle := verification.NewHandle(verificationService)
	cleanupHandle := cleanupapi.NewHandler(cleanupService)

	rateLimitMiddleware := ratelimit.NewMiddleware(rateLimitConfig(&config.RateLimitConfig))
	tokenAuth := jwtauth.New("HS256", []byte(config.JwtConfig.Secret), nil)

	server.R.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware.Handler)
		r.Post("/api/lifecycle/register", signupHandle.Register)
		r.Post("/api/lifecycle/resend", verificationHandle.Resend)
		r.Post("/api/lifecycle/verify", verificationHandle.Verify)
	})

	server.R.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Post("/api/lifecycle/admin/cleanup", cleanupHandle.TriggerCleanup)
	})

	if config.CleanupConfig.Enabled {
		interval, err := time.ParseDuration(config.CleanupConfig.Interval)
		if err != nil {
			slog.Error("Failed to parse cleanup interval", "interval", config.CleanupConfig.Interval, "error", err)
			os.Exit(-1)
		}

		opts := []cleanup.SchedulerOption{cleanup.WithInterval(interval)}
		if config.CleanupConfig.ReportTo != "" {
			manager, err := notification.NewEmailManager(config.EmailConfig.ToSMTPConfig())
			if err != nil {
				slog.Error("Failed to initialize notification manager", "error", err)
				os.Exit(-1)
			}
			opts = append(opts, cleanup.WithReporter(notification.NewCleanupReporter(manager, config.CleanupConfig.ReportTo)))
		}

		scheduler := cleanup.NewScheduler(cleanupService, opts...)
		go scheduler.Start(context.Background())
	}

	server.Run()
}

func rateLimitConfig(cfg *RateLimitConfig) *ratelimit.Config {
	rlConfig := ratelimit.DefaultConfig()
	rlConfig.PerIPEnabled = cfg.PerIPEnabled
	rlConfig.PerIPCapacity = cfg.PerIPCapacity
	rlConfig.PerIPRefillRate = cfg.PerIPRefillRate
	rlConfig.EndpointLimits = map[string]ratelimit.EndpointLimit{
		"POST /api/lifecycle/register": {
			Capacity:   cfg.SignupCapacity,
			RefillRate: cfg.SignupRefillRate,
		},
		"POST /api/lifecycle/resend": {
			Capacity:   cfg.ResendCapacity,
			RefillRate: cfg.ResendRefillRate,
		},
	}
	return rlConfig
}
