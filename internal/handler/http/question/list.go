package question

import (
	"log/slog"
	"net/http"
	"time"

	"ponder/internal/common/pagination"
	"ponder/internal/handler/http/requestid"
	"ponder/internal/handler/http/respond"
	"ponder/internal/observability/logging"
	qUC "ponder/internal/usecase/question"
)

type ListHandler struct {
	Svc           *qUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 質問一覧取得
// @Summary      質問一覧取得（ページネーション対応）
// @Description  保存されている質問を取得します。q パラメータでタイトルを部分一致（大文字小文字を区別しない）で絞り込めます。
// @Tags         questions
// @Produce      json
// @Param        q      query    string  false  "タイトル検索文字列"
// @Param        page   query    int     false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int     false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "ページネーション付き質問一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /questions [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	// Get request ID for logging
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	// Parse pagination parameters
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	query := r.URL.Query().Get("q")

	// Log request
	logger.Info("Paginated question list request",
		"q", query,
		"page", params.Page,
		"limit", params.Limit,
		"request_id", reqID)

	// Get paginated data from service
	result, err := h.Svc.List(ctx, query, params)
	if err != nil {
		logger.Error("Failed to list questions",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit,
			"request_id", reqID)
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// Convert to DTOs
	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, DTO{
			ID:      item.ID,
			Title:   item.Title,
			Content: item.Content,
		})
	}

	// Build paginated response
	response := pagination.NewResponse(dtos, result.Pagination)

	// Record metrics
	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	// Log response
	logger.Info("Paginated response",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", duration.Milliseconds(),
		"status", http.StatusOK,
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
