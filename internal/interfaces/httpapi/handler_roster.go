package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mtkallio/playoff-pool/internal/domain/roster"
	"github.com/mtkallio/playoff-pool/internal/usecase"
)

type rosterAssignmentDTO struct {
	ID       string `json:"id"`
	Slot     string `json:"slot"`
	PlayerID string `json:"player_id"`
	AddedAt  string `json:"added_at"`
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	views, err := h.rosterService.Roster(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, views)
}

func (h *Handler) AssignPlayerToSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPlayerToSlot")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	slot := roster.Slot(strings.TrimSpace(r.PathValue("slot")))

	var req assignPlayerRequest
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

	assignment, err := h.rosterService.AssignPlayer(ctx, userID, slot, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign player failed", "user_id", userID, "slot", string(slot), "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterAssignmentDTO{
		ID:       assignment.ID,
		Slot:     string(assignment.Slot),
		PlayerID: assignment.PlayerID,
		AddedAt:  assignment.AddedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) RemovePlayerFromSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayerFromSlot")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	slot := roster.Slot(strings.TrimSpace(r.PathValue("slot")))

	if err := h.rosterService.RemovePlayer(ctx, userID, slot); err != nil {
		h.logger.WarnContext(ctx, "remove player failed", "user_id", userID, "slot", string(slot), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}
