package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is satisfied by every task store backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor pings the task store on a fixed schedule and caches the result for
// the health endpoint.
type Monitor struct {
	store  Pinger
	driver string

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func New(store Pinger, driver string, interval time.Duration, logger *zap.Logger) *Monitor {
	// cron schedules whole seconds only.
	interval = interval.Round(time.Second)
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		store:    store,
		driver:   driver,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}

	schedule := "@every " + interval.String()
	if _, err := m.cron.AddFunc(schedule, m.Refresh); err != nil {
		m.logger.Error("schedule store health check",
			zap.String("schedule", schedule),
			zap.Error(err),
		)
	}
	return m
}

// Start takes a first reading synchronously and then launches the scheduler.
func (m *Monitor) Start() {
	m.Refresh()
	m.cron.Start()
}

// Stop waits for a running check to finish or ctx to expire.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Online
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh pings the store once and records the outcome.
func (m *Monitor) Refresh() {
	status := Status{
		Driver:    m.driver,
		LastCheck: time.Now().UTC(),
	}

	if m.store == nil {
		status.Error = "store not configured"
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := m.store.Ping(ctx)
		cancel()
		status.Online = err == nil
		if err != nil {
			status.Error = err.Error()
		}
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if prev.Online && !status.Online {
		m.logger.Warn("task store went offline", zap.String("driver", m.driver), zap.String("error", status.Error))
	} else if !prev.Online && status.Online && !prev.LastCheck.IsZero() {
		m.logger.Info("task store back online", zap.String("driver", m.driver))
	}
}
