package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/mtkallio/playoff-pool/internal/usecase"
)

func (h *Handler) ListCategoryLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategoryLeaders")
	defer span.End()

	leaders, err := h.predictionService.CategoryLeaders(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list category leaders failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaders)
}

func (h *Handler) SubmitPredictionSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictionSheet")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	var req submitPredictionSheetRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.predictionService.SubmitSheet(ctx, userID, req.Picks); err != nil {
		h.logger.WarnContext(ctx, "submit prediction sheet failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "accepted"})
}
