package noaa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxforge/metgen/pkg/logger"
)

func testNOAAClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(logger.NewNop())
	c.metarURL = srv.URL
	return c
}

func TestFetchMETAR(t *testing.T) {
	t.Parallel()
	c := testNOAAClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KSEA", r.URL.Query().Get("ids"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "false", r.URL.Query().Get("taf"))
		w.Write([]byte(`[{"rawOb": "KSEA 231453Z 18006KT 10SM FEW250 19/12 A3012"}]`))
	}))

	raw, err := c.FetchMETAR(context.Background(), "ksea")
	require.NoError(t, err)
	assert.Equal(t, "KSEA 231453Z 18006KT 10SM FEW250 19/12 A3012", raw)
}

func TestFetchMETAR_noReport(t *testing.T) {
	t.Parallel()
	c := testNOAAClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, err := c.FetchMETAR(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrNoReport)
}

func TestFetchMETAR_serverError(t *testing.T) {
	t.Parallel()
	c := testNOAAClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.FetchMETAR(context.Background(), "KSEA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}
