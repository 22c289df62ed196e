package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

// maxScheduleBodyBytes caps the CSV body accepted by the import endpoint.
const maxScheduleBodyBytes = 5 << 20

type Handler struct {
	leagueService      *usecase.LeagueService
	lineupService      *usecase.LineupService
	utilizationService *usecase.UtilizationService
	location           *time.Location
	logger             *logging.Logger
	validator          *validator.Validate
}

// NewHandler reads path and query dates in location, UTC when nil.
func NewHandler(
	leagueService *usecase.LeagueService,
	lineupService *usecase.LineupService,
	utilizationService *usecase.UtilizationService,
	location *time.Location,
	logger *logging.Logger,
) *Handler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:      leagueService,
		lineupService:      lineupService,
		utilizationService: utilizationService,
		location:           location,
		logger:             logger.Named("httpapi"),
		validator:          validator.New(),
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

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if classifyError(ctx, err).httpStatus < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, args...)
		return
	}
	h.logger.ErrorContext(ctx, msg, args...)
}
