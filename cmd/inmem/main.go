// Command inmem runs a self-contained lifecycle server backed entirely by
// in-memory stores. It needs no database and no hosted identity provider,
// which makes it handy for local frontend development and demos.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/simple-lifecycle/pkg/cleanup"
	"github.com/tendant/simple-lifecycle/pkg/identity"
	"github.com/tendant/simple-lifecycle/pkg/profile"
	"github.com/tendant/simple-lifecycle/pkg/signup"
	"github.com/tendant/simple-lifecycle/pkg/verification"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	provider := identity.NewInMemProvider()
	profileRepo := profile.NewInMemProfileRepository()

	registrationService := signup.NewRegistrationService(provider, profileRepo)
	verificationService := verification.NewVerificationService(provider)
	cleanupService := cleanup.NewCleanupService(provider, profileRepo)

	signupHandle := signup.NewHandle(registrationService)
	verificationHandle := verification.NewHandle(verificationService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/lifecycle/register", signupHandle.Register)
	r.Post("/api/lifecycle/resend", verificationHandle.Resend)
	r.Post("/api/lifecycle/verify", verificationHandle.Verify)
	// The cleanup endpoint is left open here since this server only ever
	// holds throwaway data.
	r.Post("/api/lifecycle/admin/cleanup", func(w http.ResponseWriter, req *http.Request) {
		result := cleanupService.Run(req.Context())
		w.Header().Set("Content-Type", "application/json")
		if !result.Success {
			w.WriteHeader(http.StatusInternalServerError)
		}
		fmt.Fprintf(w, `{"success":%t,"deletedCount":%d}`, result.Success, result.DeletedCount)
	})

	fmt.Println("=========================================")
	fmt.Println(" In-Memory Lifecycle Server")
	fmt.Println("=========================================")
	fmt.Printf(" Listening on: http://localhost:%s\n", port)
	fmt.Println()
	fmt.Println(" Endpoints:")
	fmt.Printf("   POST http://localhost:%s/api/lifecycle/register\n", port)
	fmt.Printf("   POST http://localhost:%s/api/lifecycle/resend\n", port)
	fmt.Printf("   POST http://localhost:%s/api/lifecycle/verify\n", port)
	fmt.Printf("   POST http://localhost:%s/api/lifecycle/admin/cleanup\n", port)
	fmt.Println()
	fmt.Println(" All data is lost on restart.")
	fmt.Println("=========================================")

	seedDemoAccounts(provider, port)

	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// seedDemoAccounts creates a couple of accounts so cleanup and resend have
// something to act on right away. One account is backdated past the grace
// period and will be reaped by the first cleanup run.
func seedDemoAccounts(provider *identity.InMemProvider, port string) {
	ctx := context.Background()

	fresh, err := provider.CreateAccount(ctx, identity.CreateAccountParams{
		Email:    "fresh@example.com",
		Password: "demo-password",
		Name:     "Fresh Signup",
	})
	if err != nil {
		slog.Error("Failed to seed account", "email", "fresh@example.com", "error", err)
		return
	}

	stale, err := provider.CreateAccount(ctx, identity.CreateAccountParams{
		Email:    "stale@example.com",
		Password: "demo-password",
		Name:     "Stale Signup",
	})
	if err != nil {
		slog.Error("Failed to seed account", "email", "stale@example.com", "error", err)
		return
	}
	provider.SetCreatedAt(stale.ID, time.Now().UTC().Add(-48*time.Hour))

	accessToken, refreshToken, err := provider.IssueTokenPair(fresh.ID)
	if err != nil {
		slog.Error("Failed to issue demo token pair", "error", err)
		return
	}
	fmt.Println()
	fmt.Println(" Seeded accounts:")
	fmt.Printf("   %s (unverified, fresh)\n", fresh.Email)
	fmt.Printf("   %s (unverified, 48h old; first cleanup run removes it)\n", stale.Email)
	fmt.Println()
	fmt.Println(" Verify the fresh account with:")
	fmt.Printf("   curl -X POST http://localhost:%s/api/lifecycle/verify \\\n", port)
	fmt.Printf("     -d '{\"accessToken\":\"%s\",\"refreshToken\":\"%s\"}'\n", accessToken, refreshToken)
}
