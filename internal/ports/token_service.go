package ports

// TokenService issues and verifies bearer tokens for dashboard users
type TokenService interface {
	// Issue creates a signed token carrying the user ID
	Issue(userID string) (string, error)

	// Verify parses a token and returns the user ID it was issued for
	Verify(token string) (string, error)
}
