package rates

import (
	"fmt"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
)

const dateLayout = "2006-01-02"

// DefaultOvertimeMultiplier applies when no rate entry matches an overtime
// query. It is a safe fallback, not a configuration error.
const DefaultOvertimeMultiplier = 1.5

// DefaultMileageRatePerKM is the reimbursement per kilometer when the rate
// table has no mileage entry.
const DefaultMileageRatePerKM = 0.6

// Lookup resolves the applicable multiplier for a (type, day type,
// designation) tuple on a given date. Among matching entries whose
// effective date is on or before the query date, the latest effective date
// wins; later-configured entries supersede earlier ones without mutation.
// An entry with an empty day type or designation matches any value, so a
// blanket rate can coexist with designation-specific overrides.
func Lookup(entries []models.RateConfig, rateType models.RateType, dayType models.DayType, designation string, date string) (float64, bool, error) {
	queryDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, false, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperr.ErrValidation, date)
	}

	var (
		found     bool
		bestDate  time.Time
		bestValue float64
	)
	for _, entry := range entries {
		if entry.Type != rateType {
			continue
		}
		if entry.DayType != "" && entry.DayType != dayType {
			continue
		}
		if entry.Designation != "" && entry.Designation != designation {
			continue
		}

		effective, err := time.Parse(dateLayout, entry.EffectiveDate)
		if err != nil || effective.After(queryDate) {
			continue
		}

		if !found || effective.After(bestDate) {
			found = true
			bestDate = effective
			bestValue = entry.Multiplier
		}
	}

	return bestValue, found, nil
}

// MileagePerKM resolves the per-kilometer reimbursement rate effective on
// the given date. Mileage entries are configured without day type or
// designation conditions, so the blanket match applies.
func MileagePerKM(entries []models.RateConfig, date string) (float64, error) {
	value, found, err := Lookup(entries, models.RateTypeMileage, "", "", date)
	if err != nil {
		return 0, err
	}
	if !found {
		return DefaultMileageRatePerKM, nil
	}
	return value, nil
}

// OvertimeMultiplier is Lookup specialized for overtime, falling back to
// the default multiplier when the table has no matching entry.
func OvertimeMultiplier(entries []models.RateConfig, dayType models.DayType, designation string, date string) (float64, error) {
	value, found, err := Lookup(entries, models.RateTypeOvertimeMultiplier, dayType, designation, date)
	if err != nil {
		return 0, err
	}
	if !found {
		return DefaultOvertimeMultiplier, nil
	}
	return value, nil
}
