package seedrun

import (
	"errors"
	"log/slog"
	"net/http"

	"ponder/internal/domain/entity"
	"ponder/internal/handler/http/requestid"
	"ponder/internal/handler/http/respond"
	"ponder/internal/observability/logging"
	seedUC "ponder/internal/usecase/seed"
)

// statusClientClosedRequest mirrors nginx's non-standard 499 code, reported
// when the caller disconnects and the run stops between titles.
const statusClientClosedRequest = 499

type TriggerHandler struct {
	Svc    *seedUC.Service
	Logger *slog.Logger
}

// ServeHTTP シード実行
// @Summary      シード実行
// @Description  設定された質問リストを読み込み、未保存のタイトルごとに回答を生成して保存します。実行は同期的で、完了までレスポンスを返しません。
// @Tags         seed
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} DTO "全タイトル処理完了"
// @Success      207 {object} DTO "一部タイトルが失敗"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      403 {string} string "Forbidden - insufficient permissions"
// @Failure      404 {string} string "Not found - source list not found"
// @Failure      499 {object} DTO "クライアント切断により実行中断"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /seed [post]
func (h TriggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	logger.Info("Seed run triggered", "request_id", reqID)

	// The monitor polls the request context between titles, so a client
	// disconnect stops the run without aborting the in-flight title.
	monitor := seedUC.NewContextMonitor(ctx)

	run, err := h.Svc.Run(ctx, monitor)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, seedUC.ErrSourceListNotFound) {
			code = http.StatusNotFound
		}
		logger.Error("Seed run failed to start",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, code, err)
		return
	}

	code := http.StatusOK
	switch run.Status {
	case entity.SeedRunPartial:
		code = http.StatusMultiStatus
	case entity.SeedRunCancelled:
		code = statusClientClosedRequest
	}

	logger.Info("Seed run finished",
		"status", string(run.Status),
		"processed", run.ProcessedCount,
		"failed", len(run.FailedTitles),
		"duration_ms", run.Duration.Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, code, toDTO(run))
}

func toDTO(run *entity.SeedRun) DTO {
	failed := run.FailedTitles
	if failed == nil {
		failed = []string{}
	}
	return DTO{
		Status:         string(run.Status),
		ProcessedCount: run.ProcessedCount,
		FailedTitles:   failed,
		DurationMS:     run.Duration.Milliseconds(),
	}
}
