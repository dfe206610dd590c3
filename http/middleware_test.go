package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	lakehttp "github.com/sagarc03/lakegate/http"
	"github.com/sagarc03/lakegate/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestFunctionKeyMiddleware_PublicAccess(t *testing.T) {
	for name, keys := range map[string]lakehttp.KeyStore{
		"nil store":   nil,
		"empty store": keybackend.NewMapKeyStore(nil),
	} {
		t.Run(name, func(t *testing.T) {
			wrapped := lakehttp.FunctionKeyMiddleware(keys, nil)(okHandler())

			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datalake/list/raw", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "OK", rec.Body.String())
		})
	}
}

func TestFunctionKeyMiddleware(t *testing.T) {
	keys := keybackend.NewMapKeyStore(map[string]string{"s3cr3t": "default"})

	tests := []struct {
		name     string
		target   string
		header   string
		wantCode int
	}{
		{name: "header key", target: "/datalake/list/raw", header: "s3cr3t", wantCode: http.StatusOK},
		{name: "query key", target: "/datalake/list/raw?code=s3cr3t", wantCode: http.StatusOK},
		{name: "header wins over query", target: "/datalake/list/raw?code=wrong", header: "s3cr3t", wantCode: http.StatusOK},
		{name: "no key", target: "/datalake/list/raw", wantCode: http.StatusUnauthorized},
		{name: "wrong header key", target: "/datalake/list/raw", header: "nope", wantCode: http.StatusUnauthorized},
		{name: "wrong query key", target: "/datalake/list/raw?code=nope", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := lakehttp.FunctionKeyMiddleware(keys, nil)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(lakehttp.FunctionKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusUnauthorized {
				assert.JSONEq(t, `{"Error":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	wrapped := lakehttp.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/a.txt", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/datalake/upload/raw/a.txt", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(len("short and stout")), entry["bytes"])
}
