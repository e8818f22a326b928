package domain

// TokenKind distinguishes access from refresh tokens. Each kind has its own signing secret.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenClaims is the verified payload of a token.
type TokenClaims struct {
	UserID       string
	Role         Role
	TokenVersion int
	Kind         TokenKind
	ID           string
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
