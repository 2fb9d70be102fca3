// Package worker runs the background jobs of the gateway. The only job
// today is the backend health monitor feeding /health and the per-service
// up gauge.
package worker

import (
	"context"
	"sync"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron"
)

var backendUp = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "gateway_backend_up",
		Help: "Whether the backend service answered its last health probe",
	},
	[]string{"service"},
)

// Monitor probes every registered backend on a cron schedule and keeps
// the latest result for the health endpoint.
type Monitor struct {
	registry *bridge.Registry
	cron     *cron.Cron
	schedule string
	log      logger.Logger

	mu     sync.RWMutex
	status map[string]bool
}

// NewMonitor creates the monitor; Start arms the schedule.
func NewMonitor(registry *bridge.Registry, cfg *models.Config, log logger.Logger) *Monitor {
	return &Monitor{
		registry: registry,
		cron:     cron.New(),
		schedule: cfg.HealthCheckSchedule,
		log:      log,
		status:   make(map[string]bool),
	}
}

// Start runs one probe immediately so /health never reports an empty
// snapshot, then repeats on the configured schedule.
func (m *Monitor) Start() error {
	if err := m.cron.AddFunc(m.schedule, m.probe); err != nil {
		return err
	}

	go m.probe()
	m.cron.Start()
	m.log.Infof("backend health monitor started, schedule %q", m.schedule)
	return nil
}

// Stop halts the schedule. A probe already in flight finishes on its own.
func (m *Monitor) Stop() {
	m.cron.Stop()
}

// Snapshot returns the latest probe results keyed by service token.
func (m *Monitor) Snapshot() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]bool, len(m.status))
	for name, up := range m.status {
		out[name] = up
	}
	return out
}

// probe pings every backend concurrently and records the outcome. Probe
// deadlines come from the per-call bridge timeout.
func (m *Monitor) probe() {
	names := m.registry.Names()
	results := make(map[string]bool, len(names))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			err := m.registry.Service(name).Ping(context.Background())
			up := err == nil
			if !up {
				m.log.Warnf("backend %s failed health probe: %v", name, err)
			}

			mu.Lock()
			results[name] = up
			mu.Unlock()

			value := 0.0
			if up {
				value = 1.0
			}
			backendUp.WithLabelValues(name).Set(value)
		}(name)
	}
	wg.Wait()

	m.mu.Lock()
	m.status = results
	m.mu.Unlock()
}
