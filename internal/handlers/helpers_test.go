package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/internal/config"
	"github.com/monocle-dev/holdings/internal/router"
	"github.com/monocle-dev/holdings/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t         *testing.T
	conn      *gorm.DB
	engine    *gin.Engine
	mediaRoot string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := testutil.SetupDB(t)
	mediaRoot := t.TempDir()

	engine := router.NewRouter(config.Config{
		MediaRoot:      mediaRoot,
		MediaURL:       "/media/",
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return &testServer{t: t, conn: conn, engine: engine, mediaRoot: mediaRoot}
}

func (s *testServer) do(method, path string, body io.Reader, contentType, authorization string) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rr := httptest.NewRecorder()
	s.engine.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) json(method, path string, payload interface{}, authorization string) *httptest.ResponseRecorder {
	s.t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}

	return s.do(method, path, body, "application/json", authorization)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func requireStatus(t *testing.T, rr *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
}
