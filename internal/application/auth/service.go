package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wani-app/api/internal/domain"
	jwtinfra "github.com/wani-app/api/internal/infrastructure/jwt"
	"github.com/wani-app/api/internal/pkg/id"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is a freshly issued access+refresh pair. ExpiresIn is the access
// token lifetime in seconds.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error)
	Authenticate(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error)
	RefreshAccess(ctx context.Context, refreshToken string) (*TokenPair, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type mailer interface {
	SendVerificationEmail(to, name, token string) error
	SendPasswordResetEmail(to, name, token string) error
}

type hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	NeedsRehash(digest string) bool
}

type tokenCodec interface {
	Issue(kind jwtinfra.Kind, userID string) (string, error)
	Verify(token string, kind jwtinfra.Kind) (*jwtinfra.Claims, bool)
	AccessTTL() time.Duration
}

const fieldPasswordHash = "password_hash"
const fieldVerified = "is_verified"

type service struct {
	repo   userStore
	mailer mailer
	hasher hasher
	codec  tokenCodec
}

type ServiceDeps struct {
	UserRepo userStore
	Mailer   mailer
	Hasher   hasher
	Codec    tokenCodec
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:   deps.UserRepo,
		mailer: deps.Mailer,
		hasher: deps.Hasher,
		codec:  deps.Codec,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, nil, fmt.Errorf("email %q: %w", req.Email, domain.ErrEmailExists)
	}
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		PasswordHash: digest,
		FullName:     req.FullName,
		Phone:        req.Phone,
		KYCLevel:     domain.KYCUnverified,
		Role:         domain.RoleUser,
		Verified:     false,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The store enforces email uniqueness again at write time; a lost race
	// comes back as ErrEmailExists, same as the pre-check.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	s.sendVerification(u)

	pair, err := s.issuePair(u.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Authenticate checks email+password. Unknown email and wrong password are
// deliberately indistinguishable so callers cannot probe which emails exist.
// A store failure is neither: it propagates as-is.
func (s *service) Authenticate(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("authenticate: %w", domain.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("authenticate: %w", err)
	}
	if !s.hasher.Verify(req.Password, u.PasswordHash) {
		return nil, nil, fmt.Errorf("authenticate: %w", domain.ErrInvalidCredentials)
	}
	if !u.Active {
		return nil, nil, fmt.Errorf("authenticate: %w", domain.ErrAccountInactive)
	}
	if s.hasher.NeedsRehash(u.PasswordHash) {
		slog.Info("password digest below current cost policy", "user_id", u.UserID)
	}
	pair, err := s.issuePair(u.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// RefreshAccess trades a valid refresh token for a brand-new access+refresh
// pair. The old refresh token is not revoked; it stays usable until it
// expires (no server-side token state).
func (s *service) RefreshAccess(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, ok := s.codec.Verify(refreshToken, jwtinfra.KindRefresh)
	if !ok {
		return nil, fmt.Errorf("refresh: %w", domain.ErrInvalidToken)
	}
	u, err := s.repo.Get(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !u.Active {
		return nil, fmt.Errorf("refresh: %w", domain.ErrAccountInactive)
	}
	return s.issuePair(u.UserID)
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	claims, ok := s.codec.Verify(token, jwtinfra.KindEmailVerification)
	if !ok {
		return fmt.Errorf("verify email: %w", domain.ErrInvalidToken)
	}
	u, err := s.repo.Get(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	return s.repo.Update(ctx, u.UserID, map[string]interface{}{fieldVerified: true})
}

// ResendVerification always reports success to the caller. A verification
// token is issued and mailed only when the email belongs to an existing,
// not-yet-verified account.
func (s *service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		slog.Warn("resend verification for unknown email", "email", email)
		return nil
	}
	if u.Verified {
		return nil
	}
	s.sendVerification(u)
	return nil
}

// RequestPasswordReset always reports success to the caller. A reset token
// is issued and mailed only when the email belongs to an existing, active
// account.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		slog.Warn("password reset for unknown email", "email", email)
		return nil
	}
	if !u.Active {
		slog.Warn("password reset for inactive account", "user_id", u.UserID)
		return nil
	}
	token, err := s.codec.Issue(jwtinfra.KindPasswordReset, u.UserID)
	if err != nil {
		slog.Error("issue password reset token", "user_id", u.UserID, "err", err)
		return nil
	}
	if err := s.mailer.SendPasswordResetEmail(u.Email, u.FullName, token); err != nil {
		slog.Error("send password reset email", "user_id", u.UserID, "err", err)
	}
	return nil
}

// ResetPassword replaces the digest for the token's subject. The reset token
// is not invalidated after use; only its 1-hour expiry bounds reuse.
func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, ok := s.codec.Verify(token, jwtinfra.KindPasswordReset)
	if !ok {
		return fmt.Errorf("reset password: %w", domain.ErrInvalidToken)
	}
	u, err := s.repo.Get(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, u.UserID, map[string]interface{}{fieldPasswordHash: digest})
}

func (s *service) issuePair(userID string) (*TokenPair, error) {
	access, err := s.codec.Issue(jwtinfra.KindAccess, userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Issue(jwtinfra.KindRefresh, userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.codec.AccessTTL().Seconds()),
	}, nil
}

// sendVerification issues a verification token and mails it. Failures are
// logged and swallowed: registration and resend must not fail because the
// mail did not go out.
func (s *service) sendVerification(u *domain.User) {
	token, err := s.codec.Issue(jwtinfra.KindEmailVerification, u.UserID)
	if err != nil {
		slog.Error("issue verification token", "user_id", u.UserID, "err", err)
		return
	}
	if err := s.mailer.SendVerificationEmail(u.Email, u.FullName, token); err != nil {
		slog.Error("send verification email", "user_id", u.UserID, "err", err)
	}
}
