package question

import (
	"log/slog"
	"net/http"

	"ponder/internal/common/pagination"
	qUC "ponder/internal/usecase/question"
)

// Register registers all question-related HTTP handlers with the given mux.
// It sets up routes for listing stored questions and retrieving a single
// question by ID. Both routes are read-only and publicly accessible.
func Register(mux *http.ServeMux, svc *qUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /questions", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /questions/", GetHandler{svc})
}
