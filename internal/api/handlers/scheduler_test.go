package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cinescope/cinescope/internal/scheduler"
)

func setupTaskRouter(t *testing.T, fn scheduler.TaskFunc) *echo.Echo {
	t.Helper()
	sched, err := scheduler.New(zerolog.Nop())
	if err != nil {
		t.Fatalf("scheduler.New: %v", err)
	}
	if err := sched.RegisterTask(scheduler.TaskConfig{ID: "provider-health", Name: "Provider Health Check", Interval: time.Hour, Func: fn}); err != nil {
		t.Fatalf("RegisterTask: %v", err)
	}
	if err := sched.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = sched.Stop() })

	e := echo.New()
	NewSchedulerHandler(sched).RegisterRoutes(e.Group("/api/v1/tasks"))
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestSchedulerHandler_RunTask(t *testing.T) {
	release := make(chan struct{})
	e := setupTaskRouter(t, func(ctx context.Context) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})
	defer close(release)

	if rec := serve(e, http.MethodPost, "/api/v1/tasks/provider-health/run"); rec.Code != http.StatusAccepted {
		t.Fatalf("first run: status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		rec := serve(e, http.MethodPost, "/api/v1/tasks/provider-health/run")
		if rec.Code == http.StatusConflict {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("second run: status = %d, want %d", rec.Code, http.StatusConflict)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if rec := serve(e, http.MethodPost, "/api/v1/tasks/unknown/run"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown task: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSchedulerHandler_GetTask(t *testing.T) {
	e := setupTaskRouter(t, func(context.Context) error { return nil })

	if rec := serve(e, http.MethodGet, "/api/v1/tasks/provider-health"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := serve(e, http.MethodGet, "/api/v1/tasks/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
