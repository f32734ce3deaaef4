package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/mtkallio/playoff-pool/internal/domain/pick"
	"github.com/mtkallio/playoff-pool/internal/usecase"
)

func (h *Handler) GetPickSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPickSheet")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	sheet, err := h.pickService.Sheet(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pick sheet failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickSheetToDTO(ctx, sheet))
}

func (h *Handler) SubmitPickSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPickSheet")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	var req submitPickSheetRequest
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

	predictions := make(map[string]pick.Prediction, len(req.Predictions))
	for code, p := range req.Predictions {
		predictions[code] = pick.Prediction{Winner: p.Winner, Games: p.Games}
	}

	if err := h.pickService.SubmitSheet(ctx, userID, predictions); err != nil {
		h.logger.WarnContext(ctx, "submit pick sheet failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	sheet, err := h.pickService.Sheet(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pick sheet after submit failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickSheetToDTO(ctx, sheet))
}
