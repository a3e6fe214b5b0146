package jwtinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wani-app/api/internal/config"
	"github.com/wani-app/api/internal/pkg/id"
)

// Kind is the claim type tag baked into every token. A token is only
// accepted where its kind is expected; an access token can never stand in
// for a refresh token or vice versa.
type Kind string

const (
	KindAccess            Kind = "access"
	KindRefresh           Kind = "refresh"
	KindEmailVerification Kind = "email_verification"
	KindPasswordReset     Kind = "password_reset"
)

// Fixed lifetimes for the single-purpose token kinds. Access and refresh
// lifetimes come from config.
const (
	verificationTTL  = 24 * time.Hour
	passwordResetTTL = time.Hour
)

// Claims holds the JWT payload fields. Subject is the user id.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with one shared secret. There is no
// server-side revocation: a token stays valid for its full lifetime unless
// the secret is rotated.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &Provider{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// AccessTTL returns the configured access-token lifetime.
func (p *Provider) AccessTTL() time.Duration { return p.accessTTL }

// Issue signs a token of the given kind for userID using the kind's default
// lifetime.
func (p *Provider) Issue(kind Kind, userID string) (string, error) {
	return p.IssueWithTTL(kind, userID, p.defaultTTL(kind))
}

// IssueWithTTL signs a token with an explicit lifetime. Used for access
// tokens with a caller-chosen expiry and by tests.
func (p *Provider) IssueWithTTL(kind Kind, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify decodes tokenStr and checks signature, expiry, kind, and that the
// subject is a well-formed user id. It never returns an error: any failure
// yields (nil, false).
func (p *Provider) Verify(tokenStr string, kind Kind) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, false
	}
	if claims.Type != string(kind) {
		return nil, false
	}
	if !id.Valid(claims.Subject) {
		return nil, false
	}
	return claims, true
}

func (p *Provider) defaultTTL(kind Kind) time.Duration {
	switch kind {
	case KindRefresh:
		return p.refreshTTL
	case KindEmailVerification:
		return verificationTTL
	case KindPasswordReset:
		return passwordResetTTL
	default:
		return p.accessTTL
	}
}
