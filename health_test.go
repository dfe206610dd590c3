package lakegate_test

import (
	"context"
	"testing"
	"time"

	"github.com/sagarc03/lakegate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	health lakegate.StorageHealth
	panics bool
	calls  int
}

func (s *stubProber) Check(context.Context) lakegate.StorageHealth {
	s.calls++
	if s.panics {
		panic("probe exploded")
	}
	return s.health
}

func newHealthChecker(p lakegate.Prober, env string) *lakegate.HealthChecker {
	return lakegate.NewHealthChecker(p, lakegate.HealthConfig{
		Version:     "1.0.0",
		Environment: env,
		Now:         func() time.Time { return fixedNow },
	})
}

func TestHealthChecker_Check(t *testing.T) {
	tt := []struct {
		Name    string
		Storage lakegate.StorageHealth
	}{
		{
			Name: "not configured",
			Storage: lakegate.StorageHealth{
				Status:  lakegate.StorageNotConfigured,
				Message: "Storage account name not found in configuration",
			},
		},
		{
			Name:    "connected",
			Storage: lakegate.StorageHealth{Status: lakegate.StorageConnected, StorageAccount: "mylake"},
		},
		{
			Name:    "disconnected is still healthy",
			Storage: lakegate.StorageHealth{Status: lakegate.StorageDisconnected, Error: "forbidden"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			probe := &stubProber{health: tc.Storage}
			hc := newHealthChecker(probe, "Production")

			report, err := hc.Check(context.Background())
			require.NoError(t, err)

			assert.Equal(t, lakegate.HealthReport{
				Status:      lakegate.StatusHealthy,
				Timestamp:   fixedNow,
				Version:     "1.0.0",
				Environment: "Production",
				DataLake:    tc.Storage,
			}, report)
			assert.Equal(t, 1, probe.calls)
		})
	}
}

func TestHealthChecker_DefaultEnvironment(t *testing.T) {
	hc := newHealthChecker(&stubProber{health: lakegate.StorageHealth{Status: lakegate.StorageConnected}}, "")

	report, err := hc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Development", report.Environment)
}

func TestHealthChecker_Failure(t *testing.T) {
	t.Run("cancelled context", func(t *testing.T) {
		probe := &stubProber{}
		hc := newHealthChecker(probe, "")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := hc.Check(ctx)
		assert.ErrorIs(t, err, lakegate.ErrHealthCheck)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, probe.calls)
	})

	t.Run("panicking probe", func(t *testing.T) {
		hc := newHealthChecker(&stubProber{panics: true}, "")

		report, err := hc.Check(context.Background())
		assert.ErrorIs(t, err, lakegate.ErrHealthCheck)
		assert.Contains(t, err.Error(), "probe exploded")
		assert.Equal(t, lakegate.HealthReport{}, report)
	})
}

func TestHealthChecker_Now(t *testing.T) {
	hc := newHealthChecker(&stubProber{}, "")
	assert.Equal(t, fixedNow, hc.Now())
}
