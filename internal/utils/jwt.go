package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is returned for every verification failure: bad signature,
// malformed token, wrong kind or expiry. Callers never learn which one.
var ErrTokenInvalid = errors.New("token invalid")

// claims is the signed payload of both token kinds.
type claims struct {
	Role         domain.Role      `json:"role"`
	TokenVersion int              `json:"ver"`
	Kind         domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies access and refresh tokens.
type TokenIssuer struct {
	accessSecret       []byte
	refreshSecret      []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewTokenIssuer creates a new token issuer. Access and refresh tokens are
// signed with different secrets.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:       []byte(accessSecret),
		refreshSecret:      []byte(refreshSecret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
		now:                time.Now,
	}
}

// IssueAccessToken generates a new access token for the user
func (t *TokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	return t.issue(user, domain.AccessToken)
}

// IssueRefreshToken generates a new refresh token for the user
func (t *TokenIssuer) IssueRefreshToken(user *domain.User) (string, error) {
	return t.issue(user, domain.RefreshToken)
}

// IssuePair generates an access and a refresh token for the user
func (t *TokenIssuer) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := t.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := t.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (t *TokenIssuer) issue(user *domain.User, kind domain.TokenKind) (string, error) {
	secret, expiry := t.keyFor(kind)
	now := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Kind:         kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.New().String(),
		},
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return tokenString, nil
}

// Verify validates a token of the given kind and returns its claims
func (t *TokenIssuer) Verify(tokenString string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	secret, _ := t.keyFor(kind)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)

	parsed := &claims{}
	token, err := parser.ParseWithClaims(tokenString, parsed, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if parsed.Kind != kind || parsed.Subject == "" || !parsed.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return &domain.TokenClaims{
		UserID:       parsed.Subject,
		Role:         parsed.Role,
		TokenVersion: parsed.TokenVersion,
		Kind:         parsed.Kind,
		ID:           parsed.ID,
	}, nil
}

// RefreshTokenExpiry returns the refresh token lifetime
func (t *TokenIssuer) RefreshTokenExpiry() time.Duration {
	return t.refreshTokenExpiry
}

func (t *TokenIssuer) keyFor(kind domain.TokenKind) ([]byte, time.Duration) {
	if kind == domain.RefreshToken {
		return t.refreshSecret, t.refreshTokenExpiry
	}
	return t.accessSecret, t.accessTokenExpiry
}
