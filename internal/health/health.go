// Package health keeps the outcome of the most recent resolution of each
// fact so the API can report which facts are working on this host.
package health

import (
	"sort"
	"sync"
	"time"

	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"go.uber.org/zap"
)

// Status of a single fact.
type Status string

const (
	Unknown  Status = "unknown"
	Healthy  Status = "healthy"
	Confined Status = "confined"
	Degraded Status = "degraded"
)

// Check is the latest result recorded for a fact.
type Check struct {
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Monitor tracks checks by name. The zero value is not usable; use
// NewMonitor.
type Monitor struct {
	mu     sync.RWMutex
	checks map[string]Check
	logger *zap.Logger
	now    func() time.Time
}

// NewMonitor creates an empty Monitor.
func NewMonitor(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = logging.L("health")
	}
	return &Monitor{
		checks: make(map[string]Check),
		logger: logger,
		now:    time.Now,
	}
}

// Update records status for name. A transition into Degraded is logged.
func (m *Monitor) Update(name string, status Status, message string) {
	m.mu.Lock()
	prev := m.checks[name]
	m.checks[name] = Check{
		Name:      name,
		Status:    status,
		Message:   message,
		UpdatedAt: m.now(),
	}
	m.mu.Unlock()

	if status == Degraded && prev.Status != Degraded {
		m.logger.Warn("fact degraded",
			zap.String(logging.KeyFact, name),
			zap.String("message", message))
	}
}

// Get returns the check recorded for name.
func (m *Monitor) Get(name string) (Check, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.checks[name]
	return c, ok
}

// Overall returns the worst status across all checks, or Unknown when
// nothing has been recorded. Confined facts count as healthy.
func (m *Monitor) Overall() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.checks) == 0 {
		return Unknown
	}
	worst := Healthy
	for _, c := range m.checks {
		if c.Status == Degraded {
			worst = Degraded
		}
	}
	return worst
}

// All returns a snapshot of all checks sorted by name.
func (m *Monitor) All() []Check {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Check, 0, len(m.checks))
	for _, c := range m.checks {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Summary returns a JSON-friendly map of the overall status and the
// status per fact.
func (m *Monitor) Summary() map[string]any {
	checks := m.All()
	components := make(map[string]string, len(checks))
	for _, c := range checks {
		components[c.Name] = string(c.Status)
	}

	return map[string]any{
		"status":     string(m.Overall()),
		"components": components,
	}
}
