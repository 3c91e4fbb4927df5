package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

var (
	ErrTokenExpired   = errors.New("access token has expired")
	ErrTokenMalformed = errors.New("access token is malformed")
	ErrNoToken        = errors.New("no access token configured")
)

type Claims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes the claims of a console access token without checking
// its signature. Only the auth service holds the key; the client uses the
// claims for expiry and display.
func Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return claims, nil
}

// IsJWT reports whether token has the three dot-separated segments of a JWT.
func IsJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

type tokenSource struct {
	raw string
	now func() time.Time
}

// NewTokenSource returns an oauth2.TokenSource for a fixed bearer token.
// JWT tokens carry their exp claim into Token.Expiry and are refused once
// expired; opaque tokens are passed through as is.
func NewTokenSource(raw string) oauth2.TokenSource {
	return &tokenSource{raw: strings.TrimSpace(raw), now: time.Now}
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	if s.raw == "" {
		return nil, ErrNoToken
	}

	token := &oauth2.Token{AccessToken: s.raw, TokenType: "Bearer"}
	if !IsJWT(s.raw) {
		return token, nil
	}

	claims, err := Inspect(s.raw)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt != nil {
		if !s.now().Before(claims.ExpiresAt.Time) {
			return nil, fmt.Errorf("%w at %s", ErrTokenExpired, claims.ExpiresAt.Time.Format(time.RFC3339))
		}
		token.Expiry = claims.ExpiresAt.Time
	}
	return token, nil
}
