package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/lakegate"
	lakehttp "github.com/sagarc03/lakegate/http"
	"github.com/sagarc03/lakegate/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 12, 7, 0, 0, 0, time.UTC)

// MockGateway is a mock implementation of http.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Upload(ctx context.Context, container, name string, content io.Reader) (lakegate.UploadReceipt, error) {
	args := m.Called(ctx, container, name, content)
	return args.Get(0).(lakegate.UploadReceipt), args.Error(1)
}

func (m *MockGateway) List(ctx context.Context, container string) (lakegate.Listing, error) {
	args := m.Called(ctx, container)
	return args.Get(0).(lakegate.Listing), args.Error(1)
}

func (m *MockGateway) Download(ctx context.Context, container, name string) (lakegate.Download, error) {
	args := m.Called(ctx, container, name)
	return args.Get(0).(lakegate.Download), args.Error(1)
}

// MockHealth is a mock implementation of http.HealthChecker
type MockHealth struct {
	mock.Mock
}

func (m *MockHealth) Check(ctx context.Context) (lakegate.HealthReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(lakegate.HealthReport), args.Error(1)
}

func (m *MockHealth) Now() time.Time {
	return fixedNow
}

func newHandler(cfg *lakehttp.HandlerConfig) (http.Handler, *MockGateway, *MockHealth) {
	if cfg == nil {
		cfg = &lakehttp.HandlerConfig{}
	}
	gw := new(MockGateway)
	health := new(MockHealth)
	return lakehttp.NewHandler(cfg, gw, health).Router(), gw, health
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestHandler_Upload_Success(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("Upload", mock.Anything, "raw", "test.txt", mock.Anything).Return(lakegate.UploadReceipt{
		Container: lakegate.ContainerRaw,
		Name:      "test.txt",
		Size:      5,
		Timestamp: fixedNow,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/test.txt", strings.NewReader("hello"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[map[string]any](t, rec.Body)
	assert.Equal(t, "File uploaded successfully", body["Message"])
	assert.Equal(t, "raw", body["Container"])
	assert.Equal(t, "test.txt", body["FileName"])
	assert.Equal(t, "2026-01-12T07:00:00Z", body["Timestamp"])
	assert.NotContains(t, body, "Size")

	gw.AssertExpectations(t)
}

func TestHandler_Upload_PassesBody(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("Upload", mock.Anything, "processed", "a/b/c.csv", mock.MatchedBy(func(r io.Reader) bool {
		data, err := io.ReadAll(r)
		return err == nil && string(data) == "x,y\n1,2\n"
	})).Return(lakegate.UploadReceipt{Container: lakegate.ContainerProcessed, Name: "a/b/c.csv"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/datalake/upload/processed/a/b/c.csv", strings.NewReader("x,y\n1,2\n"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	gw.AssertExpectations(t)
}

func TestHandler_Upload_EscapedName(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("Upload", mock.Anything, "raw", "my report.txt", mock.Anything).
		Return(lakegate.UploadReceipt{Container: lakegate.ContainerRaw, Name: "my report.txt"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/my%20report.txt", strings.NewReader("x"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	gw.AssertExpectations(t)
}

func TestHandler_EscapedPercentName(t *testing.T) {
	t.Run("upload keeps a literal percent", func(t *testing.T) {
		router, gw, _ := newHandler(nil)

		gw.On("Upload", mock.Anything, "raw", "report%41.txt", mock.Anything).
			Return(lakegate.UploadReceipt{Container: lakegate.ContainerRaw, Name: "report%41.txt"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/report%2541.txt", strings.NewReader("x"))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[lakehttp.UploadResponse](t, rec.Body)
		assert.Equal(t, "report%41.txt", body.Name)
		gw.AssertExpectations(t)
	})

	t.Run("download keeps a literal percent", func(t *testing.T) {
		router, gw, _ := newHandler(nil)

		gw.On("Download", mock.Anything, "raw", "100%.csv").
			Return(lakegate.Download{Container: lakegate.ContainerRaw, Name: "100%.csv", Content: "a"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/datalake/download/raw/100%25.csv", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		gw.AssertExpectations(t)
	})

	t.Run("escaped slash is decoded once", func(t *testing.T) {
		router, gw, _ := newHandler(nil)

		gw.On("Upload", mock.Anything, "raw", "dir/50%.txt", mock.Anything).
			Return(lakegate.UploadReceipt{Container: lakegate.ContainerRaw, Name: "dir/50%.txt"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/dir%2F50%25.txt", strings.NewReader("x"))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		gw.AssertExpectations(t)
	})
}

func TestHandler_Upload_MaxUploadSize(t *testing.T) {
	router, gw, _ := newHandler(&lakehttp.HandlerConfig{MaxUploadSize: 4})

	limited := mock.MatchedBy(func(r io.Reader) bool {
		_, err := io.ReadAll(r)
		var maxErr *http.MaxBytesError
		return errors.As(err, &maxErr) && maxErr.Limit == 4
	})
	// The gateway reports the failed read as a backend error.
	gw.On("Upload", mock.Anything, "raw", "big.txt", limited).
		Return(lakegate.UploadReceipt{}, &lakegate.OpError{
			Kind:      lakegate.ErrBackend,
			Op:        "upload",
			Container: "raw",
			Name:      "big.txt",
			Err:       fmt.Errorf("decode text: %w", &http.MaxBytesError{Limit: 4}),
		}).Once()

	req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/big.txt", strings.NewReader("too large"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"Error":"Request body exceeds 4 bytes"}`, rec.Body.String())
	gw.AssertExpectations(t)
}

func TestHandler_Upload_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing account",
			err:      &lakegate.OpError{Kind: lakegate.ErrConfiguration, Op: "upload", Container: "raw", Name: "a.txt"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Storage account configuration not found.",
		},
		{
			name:     "invalid container",
			err:      &lakegate.OpError{Kind: lakegate.ErrInvalidContainer, Op: "upload", Container: "bogus", Name: "a.txt"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid container name. Valid containers: raw, processed, curated",
		},
		{
			name:     "backend failure passes message through",
			err:      &lakegate.OpError{Kind: lakegate.ErrBackend, Op: "upload", Container: "raw", Name: "a.txt", Err: errors.New("This request is not authorized to perform this operation.")},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "This request is not authorized to perform this operation.",
		},
		{
			name:     "credential failure",
			err:      &lakegate.OpError{Kind: lakegate.ErrAuthentication, Op: "upload", Container: "raw", Name: "a.txt", Err: errors.New("DefaultAzureCredential: failed to acquire a token")},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "DefaultAzureCredential: failed to acquire a token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, gw, _ := newHandler(nil)
			gw.On("Upload", mock.Anything, mock.Anything, "a.txt", mock.Anything).Return(lakegate.UploadReceipt{}, tt.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/a.txt", strings.NewReader("x"))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode[lakehttp.ErrorResponse](t, rec.Body)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestHandler_Upload_EmptyFileName(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("Upload", mock.Anything, "raw", "", mock.Anything).Return(lakegate.UploadReceipt{}, &lakegate.OpError{
		Kind: lakegate.ErrInvalidInput, Op: "upload", Container: "raw",
	}).Once()

	req := httptest.NewRequest(http.MethodPost, "/datalake/upload/raw/", strings.NewReader("x"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "File name is required.")
}

func TestHandler_Upload_WrongMethod(t *testing.T) {
	router, gw, _ := newHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/datalake/upload/raw/a.txt", strings.NewReader("x"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Error"`)
	gw.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_List_Success(t *testing.T) {
	router, gw, _ := newHandler(nil)

	modified := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	gw.On("List", mock.Anything, "Curated").Return(lakegate.Listing{
		Container: lakegate.ContainerCurated,
		Files: []lakegate.FileEntry{
			{Name: "2026", IsDirectory: true, LastModified: modified},
			{Name: "2026/sales.parquet.txt", LastModified: modified, ContentLength: 2048},
		},
		Count:     2,
		Timestamp: fixedNow,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/list/Curated", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"Container": "curated",
		"Files": [
			{"Name": "2026", "IsDirectory": true, "LastModified": "2026-01-10T12:00:00Z", "ContentLength": 0},
			{"Name": "2026/sales.parquet.txt", "IsDirectory": false, "LastModified": "2026-01-10T12:00:00Z", "ContentLength": 2048}
		],
		"Count": 2,
		"Timestamp": "2026-01-12T07:00:00Z"
	}`, rec.Body.String())
	gw.AssertExpectations(t)
}

func TestHandler_List_Empty(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("List", mock.Anything, "raw").Return(lakegate.Listing{
		Container: lakegate.ContainerRaw,
		Files:     []lakegate.FileEntry{},
		Timestamp: fixedNow,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/list/raw", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Files":[]`)
	assert.Contains(t, rec.Body.String(), `"Count":0`)
}

func TestHandler_List_InvalidContainer(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("List", mock.Anything, "bogus").Return(lakegate.Listing{}, &lakegate.OpError{
		Kind: lakegate.ErrInvalidContainer, Op: "list", Container: "bogus",
	}).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/list/bogus", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[lakehttp.ErrorResponse](t, rec.Body)
	assert.True(t, strings.HasPrefix(body.Error, "Invalid container name"))
}

func TestHandler_Download_Success(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("Download", mock.Anything, "raw", "test.txt").Return(lakegate.Download{
		Container: lakegate.ContainerRaw,
		Name:      "test.txt",
		Content:   "hello",
		Timestamp: fixedNow,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/download/raw/test.txt", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Container":"raw","FileName":"test.txt","Content":"hello","Timestamp":"2026-01-12T07:00:00Z"}`, rec.Body.String())
}

func TestHandler_Download_NotFound(t *testing.T) {
	router, gw, _ := newHandler(nil)

	gw.On("Download", mock.Anything, "raw", "missing.txt").Return(lakegate.Download{}, &lakegate.OpError{
		Kind: lakegate.ErrNotFound, Op: "download", Container: "raw", Name: "missing.txt",
	}).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/download/raw/missing.txt", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[lakehttp.ErrorResponse](t, rec.Body)
	assert.Equal(t, "File missing.txt not found in container raw", body.Error)
}

func TestHandler_Health(t *testing.T) {
	router, _, health := newHandler(nil)

	health.On("Check", mock.Anything).Return(lakegate.HealthReport{
		Status:      lakegate.StatusHealthy,
		Timestamp:   fixedNow,
		Version:     "1.0.0",
		Environment: "Development",
		DataLake: lakegate.StorageHealth{
			Status:  lakegate.StorageNotConfigured,
			Message: "Storage account name not found in configuration",
		},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"Status": "Healthy",
		"Timestamp": "2026-01-12T07:00:00Z",
		"Version": "1.0.0",
		"Environment": "Development",
		"DataLake": {"Status": "Not Configured", "Message": "Storage account name not found in configuration"}
	}`, rec.Body.String())
}

func TestHandler_Health_Failure(t *testing.T) {
	router, _, health := newHandler(nil)

	health.On("Check", mock.Anything).Return(lakegate.HealthReport{}, errors.New("health check: health check error: probe exploded")).Once()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[lakehttp.HealthFailure](t, rec.Body)
	assert.Equal(t, lakegate.StatusUnhealthy, body.Status)
	assert.Equal(t, fixedNow, body.Timestamp)
	assert.Contains(t, body.Error, "probe exploded")
}

func TestHandler_Status(t *testing.T) {
	router, _, _ := newHandler(&lakehttp.HandlerConfig{Version: "1.0.0", Environment: "Production"})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[lakehttp.StatusResponse](t, rec.Body)
	assert.Equal(t, "operational", body.Status)
	assert.Equal(t, "lakegate", body.Service)
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "Production", body.Environment)
	assert.Len(t, body.Endpoints, 5)
}

func TestHandler_Root(t *testing.T) {
	router, _, _ := newHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[lakehttp.BannerResponse](t, rec.Body)
	assert.Equal(t, "lakegate is running", body.Message)
	assert.Equal(t, "running", body.Status)
	assert.Equal(t, fixedNow, body.Timestamp)
}

func TestHandler_UnknownRoute(t *testing.T) {
	router, _, _ := newHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/datalake/unknown", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"Error":"Route not found"}`, rec.Body.String())
}

func TestHandler_RequestID(t *testing.T) {
	router, gw, _ := newHandler(nil)
	gw.On("List", mock.Anything, "raw").Return(lakegate.Listing{Files: []lakegate.FileEntry{}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/list/raw", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	ctx := gw.Calls[0].Arguments.Get(0).(context.Context)
	assert.Equal(t, "req-123", middleware.GetReqID(ctx))
}

func TestHandler_Metrics(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("lakegate_up 1\n"))
	})
	keys := keybackend.NewMapKeyStore(map[string]string{"secret": "default"})
	router, _, _ := newHandler(&lakehttp.HandlerConfig{Metrics: metricsHandler, Keys: keys})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "metrics do not require a function key")
	assert.Equal(t, "lakegate_up 1\n", rec.Body.String())
}

func TestHandler_Middlewares(t *testing.T) {
	var seen []string
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
	router, _, _ := newHandler(&lakehttp.HandlerConfig{Middlewares: []func(http.Handler) http.Handler{mw}})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, []string{"/status"}, seen)
}

func TestHandler_CORS_Enabled_Preflight(t *testing.T) {
	router, _, _ := newHandler(&lakehttp.HandlerConfig{
		CORS: lakehttp.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"https://portal.example.com"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type", "x-functions-key"},
			MaxAge:         300,
		},
	})

	req := httptest.NewRequest(http.MethodOptions, "/datalake/list/raw", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://portal.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_CORS_Disabled(t *testing.T) {
	router, gw, _ := newHandler(nil)
	gw.On("List", mock.Anything, "raw").Return(lakegate.Listing{Files: []lakegate.FileEntry{}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/datalake/list/raw", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://portal.example.com")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
