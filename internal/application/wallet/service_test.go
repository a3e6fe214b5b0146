package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wani-app/api/internal/domain"
	"github.com/wani-app/api/internal/infrastructure/horizon"
)

const issuer = "GISSUER"

type mockHorizon struct{ mock.Mock }

func (m *mockHorizon) GetAccount(ctx context.Context, accountID string) (*horizon.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*horizon.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(h *mockHorizon) Service {
	return NewService(ServiceDeps{Horizon: h, USDCIssuer: issuer})
}

func TestBalances_FundedAccount(t *testing.T) {
	h := &mockHorizon{}
	h.On("GetAccount", mock.Anything, "GABC").Return(&horizon.Account{
		AccountID: "GABC",
		Balances: []horizon.Balance{
			{Balance: "42.0000000", AssetType: "credit_alphanum4", AssetCode: "USDC", AssetIssuer: issuer},
			{Balance: "100.5000000", AssetType: "native"},
		},
	}, nil)

	svc := newService(h)
	b, err := svc.Balances(context.Background(), "GABC")

	require.NoError(t, err)
	assert.True(t, b.Funded)
	assert.Equal(t, "100.5000000", b.XLM)
	assert.Equal(t, "42.0000000", b.USDC)
}

func TestBalances_IgnoresForeignUSDCIssuer(t *testing.T) {
	h := &mockHorizon{}
	h.On("GetAccount", mock.Anything, "GABC").Return(&horizon.Account{
		AccountID: "GABC",
		Balances: []horizon.Balance{
			{Balance: "100.0000000", AssetType: "native"},
			{Balance: "9.0000000", AssetType: "credit_alphanum4", AssetCode: "USDC", AssetIssuer: "GFAKE"},
		},
	}, nil)

	svc := newService(h)
	b, err := svc.Balances(context.Background(), "GABC")

	require.NoError(t, err)
	assert.Equal(t, "0", b.USDC)
}

func TestBalances_UnfundedAccountIsZeroNotError(t *testing.T) {
	h := &mockHorizon{}
	h.On("GetAccount", mock.Anything, "GNEW").Return(nil, domain.ErrNotFound)

	svc := newService(h)
	b, err := svc.Balances(context.Background(), "GNEW")

	require.NoError(t, err)
	assert.False(t, b.Funded)
	assert.Equal(t, "0", b.XLM)
	assert.Equal(t, "0", b.USDC)
}

func TestBalances_HorizonDown(t *testing.T) {
	h := &mockHorizon{}
	h.On("GetAccount", mock.Anything, "GABC").Return(nil, errors.New("horizon responded 502"))

	svc := newService(h)
	_, err := svc.Balances(context.Background(), "GABC")
	require.Error(t, err)
}

func TestIsFunded(t *testing.T) {
	h := &mockHorizon{}
	h.On("GetAccount", mock.Anything, "GABC").Return(&horizon.Account{AccountID: "GABC"}, nil)
	h.On("GetAccount", mock.Anything, "GNEW").Return(nil, domain.ErrNotFound)

	svc := newService(h)

	funded, err := svc.IsFunded(context.Background(), "GABC")
	require.NoError(t, err)
	assert.True(t, funded)

	funded, err = svc.IsFunded(context.Background(), "GNEW")
	require.NoError(t, err)
	assert.False(t, funded)
}
