package httpapi

import (
	"fmt"
	"net/http"

	"github.com/mtkallio/playoff-pool/internal/usecase"
)

func (h *Handler) RunDailyUpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDailyUpdateJob")
	defer span.End()

	if h.updateService == nil {
		writeError(ctx, w, fmt.Errorf("%w: update service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.updateService.RunDailyUpdate(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run daily update job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunInitialValuationJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunInitialValuationJob")
	defer span.End()

	if h.pricingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: pricing service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.pricingService.RunInitialValuation(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run initial valuation job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
