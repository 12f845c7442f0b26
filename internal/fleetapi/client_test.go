package fleetapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(ts.URL+"/", "secret", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchFleet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vehicles" {
			t.Errorf("path = %q, want /vehicles", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[
			{"licensePlate":"AB12CDE","vin":"VIN1","make":"Tesla","model":"Model 3"},
			{"licensePlate":"XY99ZZZ","vin":"VIN2","make":"Nissan","model":"Leaf"}
		]`))
	})

	fleet, err := c.FetchFleet(context.Background())
	if err != nil {
		t.Fatalf("FetchFleet: %v", err)
	}
	if len(fleet) != 2 {
		t.Fatalf("len = %d, want 2", len(fleet))
	}
	if fleet[0].LicensePlate != "AB12CDE" || fleet[0].Make != "Tesla" {
		t.Errorf("fleet[0] = %+v", fleet[0])
	}
}

func TestFetchHistory(t *testing.T) {
	at := time.Date(2021, 2, 28, 23, 59, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history/2021-02-28T23:59:00Z" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"vin":"VIN1","licensePlate":"AB12CDE","timestamp":"2021-02-28T23:59:00Z","state":{"odometerInMeters":5000}}
		]`))
	})

	hist, err := c.FetchHistory(context.Background(), at)
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("len = %d, want 1", len(hist))
	}
	if hist[0].LicensePlate != "AB12CDE" || hist[0].OdometerMeters != 5000 || !hist[0].Timestamp.Equal(at) {
		t.Errorf("hist[0] = %+v", hist[0])
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.FetchFleet(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.FetchFleet(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Fatalf("err = %v, want StatusError 502", err)
	}
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})
	if _, err := c.FetchFleet(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchFleet(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	for _, u := range []string{"", "   ", "not a url", "/relative"} {
		if _, err := NewClient(u, "", 0); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", u)
		}
	}
}

func TestDecodeVehicles_RequiresPlate(t *testing.T) {
	if _, err := DecodeVehicles([]byte(`[{"vin":"VIN1"}]`)); err == nil {
		t.Fatal("expected error for vehicle without plate")
	}
}
