// Package profile manages the application-owned profile rows that mirror
// identity accounts. A profile must never exist without its identity
// account, and vice versa, once registration completes; pkg/signup creates
// the pair and pkg/cleanup destroys it.
package profile
