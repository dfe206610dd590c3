package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/lakegate"
)

// Gateway is the file gateway served by the handler.
type Gateway interface {
	Upload(ctx context.Context, container, name string, content io.Reader) (lakegate.UploadReceipt, error)
	List(ctx context.Context, container string) (lakegate.Listing, error)
	Download(ctx context.Context, container, name string) (lakegate.Download, error)
}

// HealthChecker builds the health report.
type HealthChecker interface {
	Check(ctx context.Context) (lakegate.HealthReport, error)
	Now() time.Time
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
	// Keys enables function key checks. Nil or empty means public access.
	Keys KeyStore
	// MaxUploadSize limits upload bodies in bytes. Zero means no limit.
	MaxUploadSize int64

	Service     string
	Version     string
	Environment string

	// Metrics is served at MetricsPath without a function key when set.
	Metrics     http.Handler
	MetricsPath string
	// Middlewares run inside the router, after request ID and logging.
	Middlewares []func(http.Handler) http.Handler

	Logger *slog.Logger
}

// Handler provides the HTTP surface of the data lake gateway.
type Handler struct {
	config  HandlerConfig
	gateway Gateway
	health  HealthChecker
	logger  *slog.Logger
}

// NewHandler creates a new Handler with the given configuration, gateway and
// health checker.
func NewHandler(config *HandlerConfig, gateway Gateway, health HealthChecker) *Handler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		config:  *config,
		gateway: gateway,
		health:  health,
		logger:  logger,
	}
}

const (
	routeUpload   = "/datalake/upload/{container}/*"
	routeList     = "/datalake/list/{container}"
	routeDownload = "/datalake/download/{container}/*"
	routeHealth   = "/health"
	routeStatus   = "/status"
	routeRoot     = "/"
)

// Router returns an http.Handler with all gateway routes configured.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(h.config.Middlewares...)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	if h.config.Metrics != nil {
		path := h.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, h.config.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(FunctionKeyMiddleware(h.config.Keys, h.logger))

		r.Post(routeUpload, h.handleUpload)
		r.Get(routeList, h.handleList)
		r.Get(routeDownload, h.handleDownload)
		r.Get(routeHealth, h.handleHealth)
		r.Get(routeStatus, h.handleStatus)
		r.Get(routeRoot, h.handleRoot)
	})

	return r
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	Message string `json:"Message"`
	lakegate.UploadReceipt
}

// HealthFailure is the body of a failed health check.
type HealthFailure struct {
	Status    lakegate.OverallStatus `json:"Status"`
	Timestamp time.Time              `json:"Timestamp"`
	Error     string                 `json:"Error"`
}

// BannerResponse is the body served at the root path.
type BannerResponse struct {
	Message   string    `json:"Message"`
	Status    string    `json:"Status"`
	Timestamp time.Time `json:"Timestamp"`
}

// StatusResponse describes the running service.
type StatusResponse struct {
	Status      string    `json:"Status"`
	Service     string    `json:"Service"`
	Version     string    `json:"Version"`
	Environment string    `json:"Environment"`
	Timestamp   time.Time `json:"Timestamp"`
	Endpoints   []string  `json:"Endpoints"`
}

// fileName returns the wildcard tail of the route as the file name. Slashes
// are kept, so nested paths address files in subdirectories.
//
// chi routes on r.URL.RawPath when it is set, leaving the parameter escaped.
// Otherwise the parameter is already decoded and must not be unescaped again.
func fileName(r *http.Request) string {
	name := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.config.MaxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	}

	receipt, err := h.gateway.Upload(r.Context(), chi.URLParam(r, "container"), fileName(r), body)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, UploadResponse{
		Message:       "File uploaded successfully",
		UploadReceipt: receipt,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	listing, err := h.gateway.List(r.Context(), chi.URLParam(r, "container"))
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, listing)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	file, err := h.gateway.Download(r.Context(), chi.URLParam(r, "container"), fileName(r))
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, file)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	report, err := h.health.Check(r.Context())
	if err != nil {
		_ = WriteJSON(w, http.StatusServiceUnavailable, HealthFailure{
			Status:    lakegate.StatusUnhealthy,
			Timestamp: h.health.Now(),
			Error:     err.Error(),
		})
		return
	}

	_ = WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, BannerResponse{
		Message:   h.serviceName() + " is running",
		Status:    "running",
		Timestamp: h.health.Now(),
	})
}

func (h *Handler) serviceName() string {
	if h.config.Service == "" {
		return "lakegate"
	}
	return h.config.Service
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, StatusResponse{
		Status:      "operational",
		Service:     h.serviceName(),
		Version:     h.config.Version,
		Environment: h.config.Environment,
		Timestamp:   h.health.Now(),
		Endpoints: []string{
			"POST /datalake/upload/{container}/{fileName}",
			"GET /datalake/list/{container}",
			"GET /datalake/download/{container}/{fileName}",
			"GET " + routeHealth,
			"GET " + routeStatus,
		},
	})
}
