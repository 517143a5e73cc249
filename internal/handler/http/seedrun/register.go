package seedrun

import (
	"log/slog"
	"net/http"

	"ponder/internal/handler/http/auth"
	seedUC "ponder/internal/usecase/seed"
)

// Register registers the seeding trigger handler with the given mux.
// Triggering a run mutates the store, so the route requires authentication
// and an authorized role.
func Register(mux *http.ServeMux, svc *seedUC.Service, logger *slog.Logger) {
	mux.Handle("POST /seed", auth.Authz(TriggerHandler{Svc: svc, Logger: logger}))
}
