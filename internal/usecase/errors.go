package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify maps domain and store errors onto the usecase sentinels while
// keeping the original chain reachable through errors.Is.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	case errors.Is(err, domainerr.ErrKeyConflict):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	case errors.Is(err, league.ErrNotFound):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, op, err)
	case errors.Is(err, domainerr.ErrConstruction),
		errors.Is(err, domainerr.ErrInvalidRange),
		errors.Is(err, domainerr.ErrConstraintViolation):
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
