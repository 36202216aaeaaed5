package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
)

func TestFetchSnapshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{
			"facility": "north",
			"zones": [
				{"zone_id": "a1", "timestamp": "2024-06-01T12:00:00Z",
				 "environment": {"ppfd": 700, "vpd": 1.2},
				 "nutrients": {"ec": 2.0, "ph": 6.1, "k": 220},
				 "plant": {"stage": "bloom", "sap_flow": 75}}
			]
		}`))
	}))
	defer srv.Close()

	payload, err := FetchSnapshots(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "north", payload.Facility)
	require.Len(t, payload.Zones, 1)

	zone := payload.Zones[0]
	assert.Equal(t, "a1", zone.ZoneID)
	require.NotNil(t, zone.Timestamp)
	assert.Equal(t, stress.Flowering, zone.Plant.Stage)
	assert.InDelta(t, 220, zone.Nutrients.Potassium, 1e-9)
}

func TestFetchSnapshotsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := FetchSnapshots(context.Background(), srv.Client(), srv.URL)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestFetchSnapshotsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"zones": [`))
	}))
	defer srv.Close()

	_, err := FetchSnapshots(context.Background(), srv.Client(), srv.URL)
	assert.ErrorContains(t, err, "decode payload")
}
