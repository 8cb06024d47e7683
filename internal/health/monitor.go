// Package health runs the periodic reachability probe against the
// document store and publishes the result as gauges plus a snapshot for
// the /healthcheck endpoint.
package health

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"linkboard/internal/logging"
	"linkboard/internal/metrics"
	"linkboard/internal/models"
)

// Prober checks that the store is reachable. A nil return means healthy.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProbeFunc adapts a function to the Prober interface.
type ProbeFunc func(ctx context.Context) error

func (f ProbeFunc) Probe(ctx context.Context) error { return f(ctx) }

// Monitor owns the probe loop. It is constructed once at startup and
// handed to both the router (for Snapshot) and nothing else mutates it.
type Monitor struct {
	prober   Prober
	interval time.Duration
	metrics  *metrics.Metrics
	log      logging.Logger

	snapshot atomic.Pointer[models.HealthStatus]
	stop     chan struct{}
}

func NewMonitor(prober Prober, interval time.Duration, m *metrics.Metrics, log logging.Logger) *Monitor {
	mon := &Monitor{
		prober:   prober,
		interval: interval,
		metrics:  m,
		log:      log,
		stop:     make(chan struct{}),
	}
	// Start from a sane snapshot so the endpoint never serves garbage
	// before the first tick completes.
	mon.store(0)
	return mon
}

// Start launches the probe loop. One tick runs immediately so the first
// scrape after boot reflects reality rather than the zero value.
func (mon *Monitor) Start(ctx context.Context) {
	go func() {
		mon.Check(ctx)
		ticker := time.NewTicker(mon.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mon.Check(ctx)
			case <-mon.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (mon *Monitor) Stop() {
	close(mon.stop)
}

// Check runs a single probe tick and publishes the result. A probe error
// or panic becomes status 0; nothing escapes to the scheduler.
func (mon *Monitor) Check(ctx context.Context) {
	status := mon.runProbe(ctx)
	mon.store(status)
	mon.metrics.SetHealth(float64(status))
}

func (mon *Monitor) runProbe(ctx context.Context) (status int) {
	defer func() {
		if r := recover(); r != nil {
			mon.log.Error(ctx, "health probe panicked", "reason", fmt.Sprint(r))
			status = 0
		}
	}()
	if err := mon.prober.Probe(ctx); err != nil {
		mon.log.Warn(ctx, "health probe failed", "reason", err.Error())
		return 0
	}
	return 1
}

func (mon *Monitor) store(status int) {
	mon.snapshot.Store(&models.HealthStatus{
		Status: status,
		DependentServices: models.DependentServices{
			CommentDB: status,
		},
	})
}

// Snapshot returns the most recently completed probe result. It never
// blocks on a probe in flight.
func (mon *Monitor) Snapshot() models.HealthStatus {
	return *mon.snapshot.Load()
}
