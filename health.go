package lakegate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Prober reports storage connectivity. ConnectivityProbe implements it.
type Prober interface {
	Check(ctx context.Context) StorageHealth
}

// HealthConfig holds configuration for HealthChecker.
type HealthConfig struct {
	Version     string
	Environment string
	Logger      *slog.Logger
	Now         func() time.Time
}

// HealthChecker assembles the health report served by the gateway.
//
// The overall status stays Healthy when storage is Disconnected; only a
// failure of the check itself reports Unhealthy.
type HealthChecker struct {
	probe       Prober
	version     string
	environment string
	logger      *slog.Logger
	now         func() time.Time
}

func NewHealthChecker(probe Prober, cfg HealthConfig) *HealthChecker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	env := cfg.Environment
	if env == "" {
		env = "Development"
	}
	return &HealthChecker{
		probe:       probe,
		version:     cfg.Version,
		environment: env,
		logger:      logger,
		now:         now,
	}
}

// Check runs the connectivity probe and returns the health report.
//
// It returns an error wrapping ErrHealthCheck when the request context is
// already done or the probe panics.
func (h *HealthChecker) Check(ctx context.Context) (report HealthReport, err error) {
	h.logger.InfoContext(ctx, "health check endpoint called")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("health check: %w: %v", ErrHealthCheck, r)
			h.logger.ErrorContext(ctx, "health check failed", "err", err)
			report = HealthReport{}
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("health check: %w: %w", ErrHealthCheck, ctxErr)
		h.logger.ErrorContext(ctx, "health check failed", "err", err)
		return HealthReport{}, err
	}

	report = HealthReport{
		Status:      StatusHealthy,
		Timestamp:   h.now().UTC(),
		Version:     h.version,
		Environment: h.environment,
		DataLake:    h.probe.Check(ctx),
	}

	h.logger.InfoContext(ctx, "health check completed successfully", "storage", report.DataLake.Status)
	return report, nil
}

// Now returns the checker's current time in UTC, used for failure responses.
func (h *HealthChecker) Now() time.Time {
	return h.now().UTC()
}
