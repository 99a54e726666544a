package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/monocle-dev/holdings/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rr := s.json(http.MethodGet, "/api/health", nil, "")
	requireStatus(t, rr, http.StatusOK)

	body := decode[map[string]string](t, rr)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthCheckReportsClosedDatabase(t *testing.T) {
	s := newTestServer(t)

	sqlDB, err := s.conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rr := s.json(http.MethodGet, "/api/health", nil, "")
	requireStatus(t, rr, http.StatusServiceUnavailable)

	body := decode[map[string]string](t, rr)
	assert.Equal(t, "unavailable", body["database"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.conn, "user@example.com")

	requireStatus(t, s.json(http.MethodPost, "/api/investments", map[string]interface{}{
		"ticker": "TSLA",
		"tags":   []map[string]string{{"name": "EV"}},
	}, testutil.AuthHeader(t, user)), http.StatusCreated)

	rr := s.do(http.MethodGet, "/metrics", nil, "", "")
	requireStatus(t, rr, http.StatusOK)

	text := rr.Body.String()
	assert.Contains(t, text, `holdings_http_requests_total{method="POST",route="/api/investments",status="201"}`)
	assert.Contains(t, text, `holdings_reconcile_tags_total{outcome="created"}`)
	require.Contains(t, text, "holdings_http_request_duration_seconds")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/investments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	rr := httptest.NewRecorder()
	s.engine.ServeHTTP(rr, req)

	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
