package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mtkallio/playoff-pool/internal/platform/logging"
	"github.com/mtkallio/playoff-pool/internal/usecase"
)

type Handler struct {
	bracketService    *usecase.BracketService
	pickService       *usecase.PickService
	predictionService *usecase.PredictionScoringService
	rosterService     *usecase.RosterService
	standingsService  *usecase.StandingsService
	playerService     *usecase.PlayerService
	userService       *usecase.UserService
	pricingService    *usecase.PricingService
	updateService     *usecase.UpdateService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	bracketService *usecase.BracketService,
	pickService *usecase.PickService,
	predictionService *usecase.PredictionScoringService,
	rosterService *usecase.RosterService,
	standingsService *usecase.StandingsService,
	playerService *usecase.PlayerService,
	userService *usecase.UserService,
	pricingService *usecase.PricingService,
	updateService *usecase.UpdateService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		bracketService:    bracketService,
		pickService:       pickService,
		predictionService: predictionService,
		rosterService:     rosterService,
		standingsService:  standingsService,
		playerService:     playerService,
		userService:       userService,
		pricingService:    pricingService,
		updateService:     updateService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
