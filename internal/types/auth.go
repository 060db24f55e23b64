package types

// Status tracks whether a supporting record (e.g. a credential) is in use
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// AuthProvider identifies how a credential was issued
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
)

// TokenType separates short lived access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)
