package calc

import (
	"fmt"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
	"claimbot/internal/rates"
)

const (
	// MonthlyCapHours is the most overtime a user may accumulate in one
	// calendar month.
	MonthlyCapHours = 18.0

	// WeekdayEarliestStartHour gates weekday overtime: requests starting
	// before 8 PM are rejected at validation time.
	WeekdayEarliestStartHour = 20

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
	monthKey   = "2006-01"
)

// CapHeadroom is the largest month total that can still absorb requested
// more hours without passing capHours. The ledger's guarded update uses it
// as the filter threshold, so the acceptance rule tested here is the exact
// rule enforced in the database.
func CapHeadroom(capHours, requested float64) float64 {
	return capHours - requested
}

// FitsWithinCap reports whether a month currently holding current hours can
// take requested more without the total passing capHours. The boundary is
// inclusive: a request landing exactly on the cap is accepted.
func FitsWithinCap(current, requested, capHours float64) bool {
	if requested <= 0 || requested > capHours {
		return false
	}
	return current <= CapHeadroom(capHours, requested)
}

// OvertimeEvaluation is the computed outcome for an overtime request before
// persistence. Month is the ledger key the accumulation must use.
type OvertimeEvaluation struct {
	HoursWorked    float64
	DayType        models.DayType
	RateMultiplier float64
	HourlyRate     float64
	TotalPayout    float64
	Month          string
}

// HoursWorked computes end minus start in hours from HH:MM values, rounded
// to two decimals. An end time earlier than the start wraps by a day: the
// shift is read as running into the next morning, not as an input error.
func HoursWorked(start, end string) (float64, error) {
	startT, err := time.Parse(timeLayout, start)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid start time %q, expected HH:MM", apperr.ErrValidation, start)
	}
	endT, err := time.Parse(timeLayout, end)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid end time %q, expected HH:MM", apperr.ErrValidation, end)
	}

	minutes := endT.Sub(startT).Minutes()
	if minutes < 0 {
		minutes += 24 * 60
	}
	return round2(minutes / 60), nil
}

// DayTypeFor classifies a date as weekday or weekend. Public holidays are
// not recognized yet; the rate schema already admits them so a holiday
// calendar can slot in without a data migration.
func DayTypeFor(date string) (models.DayType, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperr.ErrValidation, date)
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return models.DayTypeWeekend, nil
	}
	return models.DayTypeWeekday, nil
}

// MonthKey returns the YYYY-MM ledger key for a date.
func MonthKey(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperr.ErrValidation, date)
	}
	return d.Format(monthKey), nil
}

// EvaluateOvertime runs the full computation for a new overtime request:
// hours worked, day-type classification, the weekday 8 PM start rule,
// multiplier lookup against the rate table and payout. The monthly cap is
// not checked here — the ledger repository enforces it atomically with the
// accumulation so two concurrent submissions cannot both slip under it.
func EvaluateOvertime(user *models.User, rateTable []models.RateConfig, date, start, end string) (*OvertimeEvaluation, error) {
	hours, err := HoursWorked(start, end)
	if err != nil {
		return nil, err
	}
	if hours == 0 {
		return nil, fmt.Errorf("%w: start and end time are identical", apperr.ErrValidation)
	}

	dayType, err := DayTypeFor(date)
	if err != nil {
		return nil, err
	}

	if dayType == models.DayTypeWeekday {
		startT, _ := time.Parse(timeLayout, start)
		if startT.Hour() < WeekdayEarliestStartHour {
			return nil, fmt.Errorf("%w: weekday overtime must start at 8 PM or later", apperr.ErrValidation)
		}
	}

	multiplier, err := rates.OvertimeMultiplier(rateTable, dayType, user.Designation, date)
	if err != nil {
		return nil, err
	}

	hourlyRate, ok := user.EffectiveHourlyRate()
	if !ok {
		return nil, fmt.Errorf("%w: hourly rate is not set, complete your salary profile first", apperr.ErrConfiguration)
	}

	month, err := MonthKey(date)
	if err != nil {
		return nil, err
	}

	return &OvertimeEvaluation{
		HoursWorked:    hours,
		DayType:        dayType,
		RateMultiplier: multiplier,
		HourlyRate:     hourlyRate,
		TotalPayout:    round2(hours * hourlyRate * multiplier),
		Month:          month,
	}, nil
}
