// Package notification delivers operational notices over SMTP. End-user
// verification email is owned by the identity provider; this package only
// carries operator-facing mail such as the cleanup run report.
package notification
