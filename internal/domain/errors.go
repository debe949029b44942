package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced on the synchronous request paths
var (
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is returned for a missing or invalid bearer token
	ErrUnauthorized = errors.New("not authorized")

	// ErrWorkspaceRequired is returned when a workspace-scoped call omits the workspace
	ErrWorkspaceRequired = errors.New("workspace ID required")

	// ErrNoAdAccount is returned when a connected platform user has no ad accounts
	ErrNoAdAccount = errors.New("no ad accounts found for this user")

	// ErrNotFound is returned when a requested document does not exist
	ErrNotFound = errors.New("not found")
)

// UpstreamAuthError reports a token exchange or validation failure against an
// external platform API
type UpstreamAuthError struct {
	Platform Platform
	Reason   string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("%s auth failed: %s", e.Platform, e.Reason)
}

// CryptoError reports a credential vault failure. It is fatal to the operation
// that triggered it and is never silently swallowed.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("vault %s failed: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error { return e.Err }
