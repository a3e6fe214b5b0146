package http

import (
	"context"

	"github.com/wani-app/api/internal/domain"
	"github.com/wani-app/api/internal/infrastructure/horizon"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Ping(ctx context.Context) error
}

// HorizonClient is the minimal interface the router requires from the
// Stellar Horizon backend.
type HorizonClient interface {
	GetAccount(ctx context.Context, accountID string) (*horizon.Account, error)
}
