package rates

import (
	"errors"
	"testing"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
)

func table() []models.RateConfig {
	return []models.RateConfig{
		{Type: models.RateTypeOvertimeMultiplier, DayType: models.DayTypeWeekday, Multiplier: 1.5, EffectiveDate: "2024-01-01"},
		{Type: models.RateTypeOvertimeMultiplier, DayType: models.DayTypeWeekday, Multiplier: 1.6, EffectiveDate: "2024-06-01"},
		{Type: models.RateTypeOvertimeMultiplier, DayType: models.DayTypeWeekend, Multiplier: 2.0, EffectiveDate: "2024-01-01"},
		{Type: models.RateTypeOvertimeMultiplier, DayType: models.DayTypeWeekend, Designation: "technician", Multiplier: 2.5, EffectiveDate: "2024-03-01"},
		{Type: models.RateTypeMileage, Multiplier: 0.7, EffectiveDate: "2024-01-01"},
	}
}

func TestLookupLatestEffectiveDateWins(t *testing.T) {
	testCases := []struct {
		name        string
		dayType     models.DayType
		designation string
		date        string
		want        float64
		wantFound   bool
	}{
		{"before any entry", models.DayTypeWeekday, "", "2023-12-31", 0, false},
		{"first entry active", models.DayTypeWeekday, "", "2024-02-15", 1.5, true},
		{"superseded on effective date", models.DayTypeWeekday, "", "2024-06-01", 1.6, true},
		{"weekend blanket", models.DayTypeWeekend, "clerk", "2024-07-01", 2.0, true},
		{"designation override wins by recency", models.DayTypeWeekend, "technician", "2024-07-01", 2.5, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found, err := Lookup(table(), models.RateTypeOvertimeMultiplier, tc.dayType, tc.designation, tc.date)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tc.wantFound || got != tc.want {
				t.Errorf("Lookup = (%v, %v), want (%v, %v)", got, found, tc.want, tc.wantFound)
			}
		})
	}
}

func TestLookupRejectsBadDate(t *testing.T) {
	_, _, err := Lookup(table(), models.RateTypeOvertimeMultiplier, models.DayTypeWeekday, "", "01-02-2024")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOvertimeMultiplierDefault(t *testing.T) {
	got, err := OvertimeMultiplier(nil, models.DayTypeWeekday, "clerk", "2024-02-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultOvertimeMultiplier {
		t.Errorf("empty table should default to %v, got %v", DefaultOvertimeMultiplier, got)
	}
}
