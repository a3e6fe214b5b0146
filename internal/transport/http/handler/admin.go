package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wani-app/api/internal/domain"
)

type userGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// AdminHandler exposes back-office lookups. Routes using it sit behind
// RequireRole(domain.RoleAdmin).
type AdminHandler struct {
	users userGetter
}

func NewAdminHandler(users userGetter) *AdminHandler { return &AdminHandler{users: users} }

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Success: true, User: u})
}
