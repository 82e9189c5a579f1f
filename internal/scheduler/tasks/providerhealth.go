package tasks

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinescope/cinescope/internal/metadata"
	"github.com/cinescope/cinescope/internal/scheduler"
)

// HealthRecorder receives the outcome of each provider check.
type HealthRecorder interface {
	SetProviderUp(provider string, up bool)
}

// ProviderHealthTask tests connectivity to every configured provider.
type ProviderHealthTask struct {
	providers []metadata.Provider
	recorder  HealthRecorder
	logger    zerolog.Logger
}

// NewProviderHealthTask creates a new provider health check task.
func NewProviderHealthTask(providers []metadata.Provider, recorder HealthRecorder, logger zerolog.Logger) *ProviderHealthTask {
	return &ProviderHealthTask{
		providers: providers,
		recorder:  recorder,
		logger:    logger.With().Str("task", "provider-health").Logger(),
	}
}

// Run checks each provider. Unconfigured providers are reported down
// without a request. A failed check is logged, not returned.
func (t *ProviderHealthTask) Run(ctx context.Context) error {
	healthy := 0
	for _, p := range t.providers {
		up := t.check(ctx, p)
		if up {
			healthy++
		}
		if t.recorder != nil {
			t.recorder.SetProviderUp(p.Name(), up)
		}
	}

	t.logger.Info().Int("healthy", healthy).Int("total", len(t.providers)).Msg("Provider health check completed")
	return ctx.Err()
}

func (t *ProviderHealthTask) check(ctx context.Context, p metadata.Provider) bool {
	if !p.IsConfigured() {
		t.logger.Debug().Str("provider", p.Name()).Msg("Provider not configured, skipping check")
		return false
	}
	if err := p.Test(ctx); err != nil {
		t.logger.Warn().Err(err).Str("provider", p.Name()).Msg("Provider health check failed")
		return false
	}
	t.logger.Debug().Str("provider", p.Name()).Msg("Provider health check passed")
	return true
}

// RegisterProviderHealthTask registers the provider health check with the scheduler.
func RegisterProviderHealthTask(sched *scheduler.Scheduler, providers []metadata.Provider, recorder HealthRecorder, interval time.Duration, logger zerolog.Logger) error {
	task := NewProviderHealthTask(providers, recorder, logger)

	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return sched.RegisterTask(scheduler.TaskConfig{
		ID:          "provider-health",
		Name:        "Provider Health Check",
		Description: "Tests connectivity to the metadata providers",
		Interval:    interval,
		RunOnStart:  true,
		Func:        task.Run,
	})
}
