package horizon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wani-app/api/internal/domain"
)

const accountJSON = `{
	"account_id": "GABC",
	"sequence": "123456789",
	"balances": [
		{"balance": "100.5000000", "asset_type": "native"},
		{"balance": "42.0000000", "asset_type": "credit_alphanum4", "asset_code": "USDC", "asset_issuer": "GISSUER"}
	]
}`

func TestGetAccount_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/GABC", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(accountJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	acc, err := c.GetAccount(context.Background(), "GABC")
	require.NoError(t, err)
	assert.Equal(t, "GABC", acc.AccountID)
	require.Len(t, acc.Balances, 2)
	assert.Equal(t, "native", acc.Balances[0].AssetType)
	assert.Equal(t, "USDC", acc.Balances[1].AssetCode)
}

func TestGetAccount_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetAccount(context.Background(), "GNOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetAccount_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetAccount(context.Background(), "GABC")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
