package calc

import (
	"context"
	"fmt"
	"math"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
)

// DistanceProvider measures the one-way distance between two locations in
// kilometers. Implementations must distinguish a route that cannot be
// resolved (apperr.ErrNotFound) from a transient outage
// (apperr.ErrProvider); the calculator never substitutes zero for either.
type DistanceProvider interface {
	DistanceKM(ctx context.Context, from, to models.Location) (float64, error)
}

type MileageCalculator struct {
	provider DistanceProvider
	office   *models.Location
}

func NewMileageCalculator(provider DistanceProvider, office *models.Location) *MileageCalculator {
	return &MileageCalculator{provider: provider, office: office}
}

func isReturnMode(mode models.TripMode) bool {
	switch mode {
	case models.TripModeDefaultReturn, models.TripModeOriginReturn, models.TripModeCustomReturn:
		return true
	}
	return false
}

func isOfficeMode(mode models.TripMode) bool {
	return mode == models.TripModeDefault || mode == models.TripModeDefaultReturn
}

// ValidateTrip checks the inputs a mode needs before any provider call.
// A missing origin and a missing destination are distinct errors so the
// caller can point at the right form field.
func ValidateTrip(mode models.TripMode, origin, destination *models.Location) error {
	switch mode {
	case models.TripModeDefault, models.TripModeDefaultReturn,
		models.TripModeOriginOnly, models.TripModeOriginReturn,
		models.TripModeCustomOnly, models.TripModeCustomReturn:
	default:
		return fmt.Errorf("%w: unknown trip mode %q", apperr.ErrValidation, mode)
	}

	if !isOfficeMode(mode) && origin.IsZero() {
		return fmt.Errorf("%w: origin is required", apperr.ErrValidation)
	}
	if destination.IsZero() {
		return fmt.Errorf("%w: destination is required", apperr.ErrValidation)
	}
	return nil
}

// TripKM computes the claimable distance for a trip. Return modes measure
// the one-way leg once and double it; the return leg is assumed symmetric
// and never costs a second provider call. Results are rounded to two
// decimals after any doubling.
func (m *MileageCalculator) TripKM(ctx context.Context, mode models.TripMode, origin, destination *models.Location) (float64, error) {
	if err := ValidateTrip(mode, origin, destination); err != nil {
		return 0, err
	}

	from := origin
	if isOfficeMode(mode) {
		if m.office.IsZero() {
			return 0, fmt.Errorf("%w: office location is not configured", apperr.ErrConfiguration)
		}
		from = m.office
	}

	km, err := m.provider.DistanceKM(ctx, *from, *destination)
	if err != nil {
		return 0, err
	}

	if isReturnMode(mode) {
		km *= 2
	}
	return round2(km), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
