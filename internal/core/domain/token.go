package domain

import "time"

// TokenKind separates access tokens from refresh tokens sharing one codec.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"

	TokenTypeBearer = "bearer"
)

// TokenClaims is what the codec recovers from a verified token.
type TokenClaims struct {
	Subject   int64
	Kind      TokenKind
	ID        string
	ExpiresAt time.Time
}

// TokenPair is issued on every register, login and refresh. It is never stored.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	UserID       int64
}
