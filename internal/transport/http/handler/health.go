package handler

import (
	"context"
	"net/http"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db  pinger
	env string
}

func NewHealthHandler(db pinger, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env}
}

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: Version, Environment: h.env, Database: "ok"}
	status := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
