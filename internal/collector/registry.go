package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/voxpupuli/puppet-networkmanager/internal/health"
	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/metrics"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"go.uber.org/zap"
)

// ErrUnknownFact is returned for a fact name no collector serves.
var ErrUnknownFact = errors.New("unknown fact")

// Registry holds the declared facts in registration order and resolves
// them by name. It keeps no resolved values.
type Registry struct {
	collectors []Collector
	byName     map[string]Collector
	confine    *Confine
	monitor    *health.Monitor
	logger     *zap.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(confine *Confine, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = logging.L("registry")
	}
	return &Registry{
		byName:  make(map[string]Collector),
		confine: confine,
		logger:  logger,
	}
}

// SetMonitor makes the registry record the outcome of every resolution
// in m.
func (r *Registry) SetMonitor(m *health.Monitor) {
	r.monitor = m
}

// Register declares a fact. Names must be unique.
func (r *Registry) Register(c Collector) error {
	if _, exists := r.byName[c.Name()]; exists {
		return fmt.Errorf("fact %s already registered", c.Name())
	}
	r.collectors = append(r.collectors, c)
	r.byName[c.Name()] = c
	return nil
}

// Names returns the declared fact names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.collectors))
	for _, c := range r.collectors {
		names = append(names, c.Name())
	}
	return names
}

// Available reports whether the named fact can resolve on this host.
func (r *Registry) Available(ctx context.Context, name string) error {
	c, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFact, name)
	}
	return r.confine.Check(ctx, c.Requires())
}

// Resolve runs the named collector. Confined facts return an error
// wrapping ErrConfined without running any command.
func (r *Registry) Resolve(ctx context.Context, name string) (interface{}, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFact, name)
	}

	if err := r.confine.Check(ctx, c.Requires()); err != nil {
		metrics.RecordFact(name, metrics.ResultConfined)
		r.record(name, health.Confined, err)
		r.logger.Debug("fact confined", zap.String(logging.KeyFact, name), zap.Error(err))
		return nil, err
	}

	value, err := c.Collect(ctx)
	if err != nil {
		metrics.RecordFact(name, metrics.ResultFailure)
		r.record(name, health.Degraded, err)
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}

	metrics.RecordFact(name, metrics.ResultSuccess)
	r.record(name, health.Healthy, nil)
	return value, nil
}

func (r *Registry) record(name string, status health.Status, err error) {
	if r.monitor == nil {
		return
	}
	var msg string
	if err != nil {
		msg = err.Error()
	}
	r.monitor.Update(name, status, msg)
}

// Collect resolves the given facts, or every declared fact when names is
// empty, into a Document. Confined facts are skipped; failing facts are
// logged and left out.
func (r *Registry) Collect(ctx context.Context, names ...string) (*Document, error) {
	if len(names) == 0 {
		names = r.Names()
	}

	doc := NewDocument()
	for _, name := range names {
		if doc.Has(name) {
			continue
		}

		value, err := r.Resolve(ctx, name)
		switch {
		case errors.Is(err, ErrUnknownFact):
			return nil, err
		case errors.Is(err, ErrConfined):
			continue
		case err != nil:
			r.logger.Error("fact resolution failed", zap.String(logging.KeyFact, name), zap.Error(err))
			continue
		}

		if err := doc.Set(name, value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Query resolves the fact named by the leading component of each dotted
// query and returns the selected values. Queries that select nothing map
// to a null result.
func (r *Registry) Query(ctx context.Context, queries ...string) (map[string]gjson.Result, error) {
	names := make([]string, 0, len(queries))
	for _, q := range queries {
		names = append(names, FactName(q))
	}

	doc, err := r.Collect(ctx, names...)
	if err != nil {
		return nil, err
	}

	results := make(map[string]gjson.Result, len(queries))
	for _, q := range queries {
		res, _ := doc.Query(q)
		results[q] = res
	}
	return results, nil
}

// NewDefaultRegistry declares the NetworkManager facts. When enabled is
// non-empty only the listed facts are registered.
func NewDefaultRegistry(client *nmcli.Client, confine *Confine, enabled []string, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = logging.L("collector")
	}

	all := NewConnectionsCollector(client, logger)
	candidates := []Collector{
		all,
		NewDevicesCollector(client, logger),
		NewActiveConnectionsCollector(all, logger),
		NewNetworkCollector(client, logger),
		NewVersionCollector(client, logger),
	}

	want := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		want[name] = true
	}

	filtered := len(want) > 0
	r := NewRegistry(confine, logger)
	for _, c := range candidates {
		if filtered && !want[c.Name()] {
			continue
		}
		if err := r.Register(c); err != nil {
			return nil, err
		}
		delete(want, c.Name())
	}

	for name := range want {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFact, name)
	}
	return r, nil
}
