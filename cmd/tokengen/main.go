// Command tokengen mints an HS256 JWT for calling the admin endpoints,
// such as the manual cleanup trigger. The secret must match the server's
// JWT_SECRET.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	secret := flag.String("secret", "very-secure-jwt-secret", "Secret key for signing the token")
	subject := flag.String("subject", "operator", "Subject of the token")
	roles := flag.String("roles", "admin", "Comma-separated roles claim")
	expiry := flag.Duration("expiry", 1*time.Hour, "Token expiry duration (e.g., 30m, 1h, 24h)")
	outputFormat := flag.String("format", "compact", "Output format: compact or full")
	flag.Parse()

	roleList := []string{}
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	now := time.Now().UTC()
	expiryTime := now.Add(*expiry)
	claims := jwt.MapClaims{
		"sub":   *subject,
		"roles": roleList,
		"iat":   now.Unix(),
		"exp":   expiryTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to sign token: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "compact":
		fmt.Println(tokenStr)
	case "full":
		claimsJSON, _ := json.MarshalIndent(claims, "", "  ")
		fmt.Printf("Token: %s\n\nClaims:\n%s\n\nExpires: %s\n", tokenStr, claimsJSON, expiryTime.Format(time.RFC3339))
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown output format: %s\n", *outputFormat)
		os.Exit(1)
	}
}
