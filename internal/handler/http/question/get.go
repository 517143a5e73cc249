package question

import (
	"errors"
	"net/http"

	"ponder/internal/handler/http/pathutil"
	"ponder/internal/handler/http/respond"
	qUC "ponder/internal/usecase/question"
)

type GetHandler struct{ Svc *qUC.Service }

// ServeHTTP 質問詳細取得
// @Summary      質問詳細取得
// @Description  指定されたIDの質問と生成された回答を取得します
// @Tags         questions
// @Produce      json
// @Param        id path int true "質問ID"
// @Success      200 {object} DTO "質問詳細"
// @Failure      400 {string} string "Bad request - invalid question ID"
// @Failure      404 {string} string "Not found - question not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /questions/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/questions/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	question, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, qUC.ErrInvalidQuestionID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, qUC.ErrQuestionNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	out := DTO{
		ID:      question.ID,
		Title:   question.Title,
		Content: question.Content,
	}

	respond.JSON(w, http.StatusOK, out)
}
