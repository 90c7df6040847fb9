package calc

import (
	"errors"
	"strings"
	"testing"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
)

func TestHoursWorked(t *testing.T) {
	testCases := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"evening shift", "18:00", "21:30", 3.5},
		{"overnight wrap", "23:00", "01:00", 2.0},
		{"quarter hours", "20:15", "22:45", 2.5},
		{"rounding", "20:00", "20:50", 0.83},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HoursWorked(tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("HoursWorked(%s, %s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestHoursWorkedRejectsBadFormat(t *testing.T) {
	for _, input := range []string{"8pm", "25:00", "2000", ""} {
		if _, err := HoursWorked(input, "22:00"); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("start %q: want validation error, got %v", input, err)
		}
	}
}

func TestFitsWithinCapBoundary(t *testing.T) {
	testCases := []struct {
		name      string
		current   float64
		requested float64
		want      bool
	}{
		{"lands exactly on cap", 15.0, 3.0, true},
		{"hundredth over cap", 15.0, 3.01, false},
		{"empty month full cap", 0, 18.0, true},
		{"full month", 18.0, 0.5, false},
		{"zero hours", 15.0, 0, false},
		{"single request over cap", 0, 18.5, false},
		// An edit inside a month holding 17 hours must be judged by the
		// hour difference, not the edited request's full hours: bumping a
		// request up by one fits, while re-claiming 17 from scratch would
		// not.
		{"edit by difference", 17.0, 1.0, true},
		{"edit re-claiming full hours", 17.0, 17.0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FitsWithinCap(tc.current, tc.requested, MonthlyCapHours); got != tc.want {
				t.Errorf("FitsWithinCap(%v, %v, %v) = %v, want %v",
					tc.current, tc.requested, MonthlyCapHours, got, tc.want)
			}
		})
	}
}

func TestCapHeadroom(t *testing.T) {
	if got := CapHeadroom(MonthlyCapHours, 3.0); got != 15.0 {
		t.Errorf("CapHeadroom(18, 3) = %v, want 15", got)
	}
	if got := CapHeadroom(MonthlyCapHours, 18.0); got != 0.0 {
		t.Errorf("CapHeadroom(18, 18) = %v, want 0", got)
	}
}

func TestDayTypeFor(t *testing.T) {
	// 2024-06-03 is a Monday, 2024-06-08 a Saturday.
	if dt, _ := DayTypeFor("2024-06-03"); dt != models.DayTypeWeekday {
		t.Errorf("Monday should be weekday, got %s", dt)
	}
	if dt, _ := DayTypeFor("2024-06-08"); dt != models.DayTypeWeekend {
		t.Errorf("Saturday should be weekend, got %s", dt)
	}
	if _, err := DayTypeFor("June 3"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("want validation error, got %v", err)
	}
}

func verifiedUser() *models.User {
	return &models.User{
		Designation:        "technician",
		HourlyRate:         20,
		SalaryVerification: models.SalaryVerificationVerified,
	}
}

func TestEvaluateOvertimeWeekdayStartBoundary(t *testing.T) {
	user := verifiedUser()

	// 2024-06-03 is a Monday.
	_, err := EvaluateOvertime(user, nil, "2024-06-03", "19:59", "23:00")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("19:59 weekday start should be rejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "8 PM") {
		t.Errorf("rejection should explain the 8 PM rule, got %q", err)
	}

	eval, err := EvaluateOvertime(user, nil, "2024-06-03", "20:00", "23:00")
	if err != nil {
		t.Fatalf("20:00 weekday start should be accepted, got %v", err)
	}
	if eval.HoursWorked != 3.0 {
		t.Errorf("hours = %v, want 3.0", eval.HoursWorked)
	}
}

func TestEvaluateOvertimeWeekendSkipsStartRule(t *testing.T) {
	// 2024-06-08 is a Saturday; a morning start is fine.
	eval, err := EvaluateOvertime(verifiedUser(), nil, "2024-06-08", "09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.DayType != models.DayTypeWeekend {
		t.Errorf("day type = %s, want weekend", eval.DayType)
	}
}

func TestEvaluateOvertimePayout(t *testing.T) {
	rateTable := []models.RateConfig{
		{Type: models.RateTypeOvertimeMultiplier, DayType: models.DayTypeWeekend, Multiplier: 2.0, EffectiveDate: "2024-01-01"},
	}

	eval, err := EvaluateOvertime(verifiedUser(), rateTable, "2024-06-08", "09:00", "12:30")
	if err != nil {
		t.Fatal(err)
	}
	// 3.5h x 20/h x 2.0
	if eval.TotalPayout != 140.0 {
		t.Errorf("payout = %v, want 140.0", eval.TotalPayout)
	}
	if eval.Month != "2024-06" {
		t.Errorf("month key = %q, want 2024-06", eval.Month)
	}
}

func TestEvaluateOvertimeDefaultMultiplier(t *testing.T) {
	eval, err := EvaluateOvertime(verifiedUser(), nil, "2024-06-08", "09:00", "11:00")
	if err != nil {
		t.Fatal(err)
	}
	if eval.RateMultiplier != 1.5 {
		t.Errorf("multiplier = %v, want default 1.5", eval.RateMultiplier)
	}
}

func TestEvaluateOvertimeHourlyRateFallbacks(t *testing.T) {
	salaried := &models.User{MonthlySalary: 3200, SalaryVerification: models.SalaryVerificationVerified}
	eval, err := EvaluateOvertime(salaried, nil, "2024-06-08", "09:00", "11:00")
	if err != nil {
		t.Fatal(err)
	}
	if eval.HourlyRate != 20.0 {
		t.Errorf("derived rate = %v, want 3200/160 = 20", eval.HourlyRate)
	}

	unconfigured := &models.User{SalaryVerification: models.SalaryVerificationVerified}
	_, err = EvaluateOvertime(unconfigured, nil, "2024-06-08", "09:00", "11:00")
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("missing salary data should be a configuration error, got %v", err)
	}
}
