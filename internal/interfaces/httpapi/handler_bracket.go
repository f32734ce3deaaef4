package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/mtkallio/playoff-pool/internal/usecase"
)

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	overview, err := h.bracketService.Overview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketOverviewToDTO(ctx, overview))
}

func (h *Handler) SaveInitialMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveInitialMatchups")
	defer span.End()

	var req saveMatchupsRequest
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

	items := make([]usecase.InitialMatchupItem, 0, len(req.Matchups))
	for _, m := range req.Matchups {
		items = append(items, usecase.InitialMatchupItem{
			Code:  m.Code,
			Team1: m.Team1,
			Team2: m.Team2,
		})
	}

	if err := h.bracketService.SaveInitialMatchups(ctx, items); err != nil {
		h.logger.WarnContext(ctx, "save initial matchups failed", "count", len(items), "error", err)
		writeError(ctx, w, err)
		return
	}

	overview, err := h.bracketService.Overview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket after seeding failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketOverviewToDTO(ctx, overview))
}

func (h *Handler) SubmitSeriesResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSeriesResults")
	defer span.End()

	var req submitResultsRequest
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

	items := make([]usecase.SubmitResultItem, 0, len(req.Results))
	for _, res := range req.Results {
		items = append(items, usecase.SubmitResultItem{
			Code:   res.Code,
			Winner: res.Winner,
			Games:  res.Games,
		})
	}

	report, err := h.bracketService.SubmitResults(ctx, req.Round, items)
	if err != nil {
		h.logger.WarnContext(ctx, "submit series results failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
