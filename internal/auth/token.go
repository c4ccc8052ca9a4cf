package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig holds the signing secret and token lifetimes.
//
// The secret is process-wide; rotating it invalidates every previously issued
// token with no grace period.
type TokenConfig struct {
	Secret     string        `env:"JWT_SECRET,required"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"60m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`
}

// Claims is the token payload: subject (username), optional role (access
// tokens only), issued-at and expiry.
type Claims struct {
	Role Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bound bearer tokens using
// HMAC-SHA256. Tokens are never persisted; validity is a pure function of
// (token, current time, secret).
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a token service from config.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSigningSecret
	}

	s := &TokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = time.Hour
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = 30 * 24 * time.Hour
	}

	return s, nil
}

// IssueAccess creates a short-lived access token carrying the subject's role.
func (s *TokenService) IssueAccess(subject string, role Role) (string, error) {
	return s.issue(subject, role, s.accessTTL)
}

// IssueRefresh creates a longer-lived refresh token. Refresh tokens carry no
// role claim.
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, "", s.refreshTTL)
}

func (s *TokenService) issue(subject string, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Failure kinds are distinguishable: ErrTokenExpired for a well-signed token
// past its expiry, ErrTokenInvalid for everything else (bad signature,
// malformed token, unexpected algorithm).
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
