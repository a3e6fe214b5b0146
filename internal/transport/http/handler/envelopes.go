package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wani-app/api/internal/application/auth"
	"github.com/wani-app/api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps register/login/refresh responses.
type AuthEnvelope struct {
	Success bool            `json:"success"`
	User    *domain.User    `json:"user,omitempty"`
	Tokens  *auth.TokenPair `json:"tokens,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: code, Message: msg})
}

// httpError maps a domain error to its HTTP response. Unknown errors are
// logged with detail server-side and surface as a generic 500.
func httpError(w http.ResponseWriter, err error) {
	code := domain.ErrorCode(err)
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, code, err.Error())
	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrInsufficientKYC),
		errors.Is(err, domain.ErrInsufficientRole):
		writeError(w, http.StatusForbidden, code, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, code, err.Error())
	case errors.Is(err, domain.ErrEmailExists):
		writeError(w, http.StatusConflict, code, err.Error())
	default:
		slog.Error("unhandled error in handler", "err", err)
		writeError(w, http.StatusInternalServerError, code, "something went wrong")
	}
}
