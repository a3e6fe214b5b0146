package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/wani-app/api/internal/domain"
	"github.com/wani-app/api/internal/infrastructure/horizon"
)

// Balances is the wallet view returned to clients: the XLM and USDC balance
// strings as Horizon reports them (7 decimal places), plus a funded flag.
// An unfunded account reports zero balances rather than an error.
type Balances struct {
	AccountID string `json:"account_id"`
	XLM       string `json:"xlm"`
	USDC      string `json:"usdc"`
	Funded    bool   `json:"funded"`
}

type Service interface {
	Balances(ctx context.Context, accountID string) (*Balances, error)
	IsFunded(ctx context.Context, accountID string) (bool, error)
}

type horizonClient interface {
	GetAccount(ctx context.Context, accountID string) (*horizon.Account, error)
}

type service struct {
	horizon    horizonClient
	usdcIssuer string
}

type ServiceDeps struct {
	Horizon    horizonClient
	USDCIssuer string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		horizon:    deps.Horizon,
		usdcIssuer: deps.USDCIssuer,
	}
}

func (s *service) Balances(ctx context.Context, accountID string) (*Balances, error) {
	acc, err := s.horizon.GetAccount(ctx, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		return &Balances{AccountID: accountID, XLM: "0", USDC: "0", Funded: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("wallet balances: %w", err)
	}

	b := &Balances{AccountID: accountID, XLM: "0", USDC: "0", Funded: true}
	for _, line := range acc.Balances {
		switch {
		case line.AssetType == "native":
			b.XLM = line.Balance
		case line.AssetCode == "USDC" && line.AssetIssuer == s.usdcIssuer:
			b.USDC = line.Balance
		}
	}
	return b, nil
}

func (s *service) IsFunded(ctx context.Context, accountID string) (bool, error) {
	_, err := s.horizon.GetAccount(ctx, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
