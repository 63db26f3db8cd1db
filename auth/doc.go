// Package auth implements the stateless request authentication and
// authorization primitives for the EventFlow API.
//
// The package provides:
//   - TokenCodec: issues and verifies HS256 signed identity tokens
//   - RouteClassifier: decides whether a method/path requires authentication
//   - AccessPolicy: decides whether an authenticated identity may proceed
//   - bcrypt password hashing used by the identity issuer
//
// Everything here is free of I/O and safe for concurrent use once
// constructed. The HTTP gate that composes these lives in the middleware
// package.
package auth
