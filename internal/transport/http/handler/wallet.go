package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wani-app/api/internal/application/wallet"
)

// WalletHandler exposes read-only Stellar wallet queries.
type WalletHandler struct {
	svc wallet.Service
}

func NewWalletHandler(svc wallet.Service) *WalletHandler { return &WalletHandler{svc: svc} }

func (h *WalletHandler) Balances(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "account is required")
		return
	}
	b, err := h.svc.Balances(r.Context(), accountID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type fundedResponse struct {
	AccountID string `json:"account_id"`
	Funded    bool   `json:"funded"`
}

// Funded reports whether an account exists on the network, without exposing
// balances. Gated on a verified email only, not on KYC.
func (h *WalletHandler) Funded(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "account is required")
		return
	}
	funded, err := h.svc.IsFunded(r.Context(), accountID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fundedResponse{AccountID: accountID, Funded: funded})
}
