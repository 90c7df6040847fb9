package calc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
)

type fakeProvider struct {
	km    float64
	err   error
	calls int
}

func (f *fakeProvider) DistanceKM(ctx context.Context, from, to models.Location) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.km, nil
}

var (
	office = &models.Location{Address: "Head Office"}
	home   = &models.Location{Address: "12 Jalan Besar"}
	site   = &models.Location{Address: "Client Site"}
)

func TestTripKMReturnModesDoubleOneProviderCall(t *testing.T) {
	testCases := []struct {
		oneWay models.TripMode
		back   models.TripMode
		origin *models.Location
	}{
		{models.TripModeDefault, models.TripModeDefaultReturn, nil},
		{models.TripModeOriginOnly, models.TripModeOriginReturn, home},
		{models.TripModeCustomOnly, models.TripModeCustomReturn, home},
	}

	for _, tc := range testCases {
		t.Run(string(tc.back), func(t *testing.T) {
			provider := &fakeProvider{km: 12.345}
			m := NewMileageCalculator(provider, office)

			oneWay, err := m.TripKM(context.Background(), tc.oneWay, tc.origin, site)
			if err != nil {
				t.Fatalf("one-way: %v", err)
			}
			back, err := m.TripKM(context.Background(), tc.back, tc.origin, site)
			if err != nil {
				t.Fatalf("return: %v", err)
			}

			if back != oneWay*2 {
				t.Errorf("return trip = %v, want exactly double %v", back, oneWay)
			}
			if provider.calls != 2 {
				t.Errorf("provider called %d times, want 2 (one per trip, none for the return leg)", provider.calls)
			}
		})
	}
}

func TestTripKMRounding(t *testing.T) {
	provider := &fakeProvider{km: 10.004}
	m := NewMileageCalculator(provider, office)

	got, err := m.TripKM(context.Background(), models.TripModeDefaultReturn, nil, site)
	if err != nil {
		t.Fatal(err)
	}
	// 10.004 doubled is 20.008, rounded after doubling.
	if got != 20.01 {
		t.Errorf("got %v, want 20.01", got)
	}
}

func TestValidateTrip(t *testing.T) {
	testCases := []struct {
		name        string
		mode        models.TripMode
		origin      *models.Location
		destination *models.Location
		wantMsg     string
	}{
		{"missing origin", models.TripModeOriginOnly, nil, site, "origin is required"},
		{"missing destination", models.TripModeOriginOnly, home, nil, "destination is required"},
		{"office mode ignores origin", models.TripModeDefault, nil, site, ""},
		{"both present", models.TripModeCustomReturn, home, site, ""},
		{"unknown mode", models.TripMode("teleport"), home, site, "unknown trip mode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTrip(tc.mode, tc.origin, tc.destination)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q should mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestTripKMOfficeNotConfigured(t *testing.T) {
	m := NewMileageCalculator(&fakeProvider{km: 5}, nil)

	_, err := m.TripKM(context.Background(), models.TripModeDefault, nil, site)
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}

	// Non-office modes still work without an office location.
	if _, err := m.TripKM(context.Background(), models.TripModeCustomOnly, home, site); err != nil {
		t.Fatalf("custom mode should not need the office: %v", err)
	}
}

func TestTripKMProviderFailureIsNeverZero(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("%w: distance service timeout", apperr.ErrProvider)}
	m := NewMileageCalculator(provider, office)

	_, err := m.TripKM(context.Background(), models.TripModeDefault, nil, site)
	if !errors.Is(err, apperr.ErrProvider) {
		t.Fatalf("want provider error, got %v", err)
	}
}
