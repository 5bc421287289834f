// Package verification exposes the email verification flows: resending
// the verification email and exchanging an emailed token pair for a
// session. Both are stateless pass-throughs to the identity provider;
// failures are translated into typed errors so nothing raised beneath
// this boundary reaches HTTP callers unstructured.
package verification
