package airport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxforge/metgen/pkg/logger"
)

func testResolver(t *testing.T, handler http.Handler) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := NewResolver("test-key", logger.NewNop())
	r.airportURL = srv.URL + "/airport"
	r.geocodeURL = srv.URL + "/geocode"
	r.geolocateURL = srv.URL + "/geolocate"
	return r
}

func TestResolveICAO_remoteLookup(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "EFHK", req.URL.Query().Get("ids"))
		assert.Equal(t, "json", req.URL.Query().Get("format"))
		w.Write([]byte(`[{"icaoId": "EFHK", "lat": 60.3172, "lon": 24.9633}]`))
	}))

	lat, lon, err := r.ResolveICAO(context.Background(), "efhk")
	require.NoError(t, err)
	assert.Equal(t, 60.3172, lat)
	assert.Equal(t, 24.9633, lon)
}

func TestResolveICAO_fallsBackToBundled(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	lat, lon, err := r.ResolveICAO(context.Background(), "EGLL")
	require.NoError(t, err)
	assert.Equal(t, 51.4706, lat)
	assert.Equal(t, -0.4619, lon)
}

func TestResolveICAO_unknownStation(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, _, err := r.ResolveICAO(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveFreeform(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Helsinki", req.URL.Query().Get("q"))
		assert.Equal(t, "1", req.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", req.URL.Query().Get("appid"))
		w.Write([]byte(`[{"name": "Helsinki", "lat": 60.1699, "lon": 24.9384}]`))
	}))

	lat, lon, err := r.ResolveFreeform(context.Background(), "Helsinki")
	require.NoError(t, err)
	assert.Equal(t, 60.1699, lat)
	assert.Equal(t, 24.9384, lon)
}

func TestResolveFreeform_noResults(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, _, err := r.ResolveFreeform(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveFreeform_missingKey(t *testing.T) {
	t.Parallel()
	r := NewResolver("", logger.NewNop())
	_, _, err := r.ResolveFreeform(context.Background(), "Helsinki")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeolocate(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status": "success", "lat": 45.52, "lon": -122.68, "city": "Portland", "regionName": "Oregon", "country": "United States"}`))
	}))

	loc, err := r.Geolocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45.52, loc.Latitude)
	assert.Equal(t, -122.68, loc.Longitude)
	assert.Equal(t, "Portland", loc.City)
}

func TestGeolocate_failureStatus(t *testing.T) {
	t.Parallel()
	r := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status": "fail", "message": "private range"}`))
	}))

	_, err := r.Geolocate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestLookupBundled(t *testing.T) {
	t.Parallel()
	lat, lon, ok := lookupBundled("KSEA")
	require.True(t, ok)
	assert.Equal(t, 47.4502, lat)
	assert.Equal(t, -122.3088, lon)

	_, _, ok = lookupBundled("XXXX")
	assert.False(t, ok)
}

func TestValidateLatLon(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateLatLon(0, 0))
	assert.NoError(t, ValidateLatLon(-90, 180))
	assert.Error(t, ValidateLatLon(90.1, 0))
	assert.Error(t, ValidateLatLon(0, -180.5))
}
