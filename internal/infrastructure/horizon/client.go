package horizon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wani-app/api/internal/domain"
)

// Client queries a Stellar Horizon instance over its REST API. Only the
// read-only account endpoint is used; transaction submission stays outside
// this service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Account is the subset of Horizon's account record this service consumes.
type Account struct {
	AccountID string    `json:"account_id"`
	Sequence  string    `json:"sequence"`
	Balances  []Balance `json:"balances"`
}

// Balance is one asset line on a Stellar account. AssetType is
// "native" for XLM, otherwise AssetCode/AssetIssuer identify the asset.
type Balance struct {
	Balance     string `json:"balance"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAccount fetches the account record for a public key. An account that
// does not exist on the network (unfunded) maps to domain.ErrNotFound.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	u := fmt.Sprintf("%s/accounts/%s", c.baseURL, url.PathEscape(accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("horizon request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("account %s: %w", accountID, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("horizon responded %d", resp.StatusCode)
	}

	var acc Account
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		return nil, fmt.Errorf("decode horizon response: %w", err)
	}
	return &acc, nil
}
