package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"claimbot/internal/apperr"
	"claimbot/internal/config"
	"claimbot/internal/models"
)

func newTestClient(baseURL string) *DistanceClient {
	return NewDistanceClient(&config.Config{
		DistanceAPIURL: baseURL,
		DistanceAPIKey: "test-key",
	})
}

func TestDistanceKM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/distance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not forwarded")
		}

		switch r.URL.Query().Get("origin") {
		case "Nowhere":
			w.Write([]byte(`{"status":"ZERO_RESULTS","message":"no route"}`))
		default:
			w.Write([]byte(`{"status":"OK","distanceKm":12.4}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	km, err := client.DistanceKM(context.Background(),
		models.Location{Address: "Office Tower"},
		models.Location{Lat: 3.139, Lng: 101.6869})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km != 12.4 {
		t.Errorf("expected 12.4 km, got %v", km)
	}

	_, err = client.DistanceKM(context.Background(),
		models.Location{Address: "Nowhere"},
		models.Location{Address: "Office Tower"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for zero results, got %v", err)
	}
}

func TestDistanceKMNotConfigured(t *testing.T) {
	client := NewDistanceClient(&config.Config{})

	_, err := client.DistanceKM(context.Background(),
		models.Location{Address: "A"}, models.Location{Address: "B"})
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestDistanceKMRouteMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.DistanceKM(context.Background(),
		models.Location{Address: "A"}, models.Location{Address: "B"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for 404, got %v", err)
	}
}
