package resource

import (
	"context"
	"fmt"

	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/metrics"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
	"go.uber.org/zap"
)

// Outcome is the result of reading one connection: either a Detail or
// the Err that made the connection unreadable.
type Outcome struct {
	Name   string
	Detail models.ConnectionDetail
	Err    error
}

// OK reports whether the connection was read.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Provider reads networkmanager_connection resources. It never changes
// the network configuration.
type Provider struct {
	client *nmcli.Client
	typ    *Type
	logger *zap.Logger
}

// NewProvider creates a Provider.
func NewProvider(client *nmcli.Client, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = logging.L("resource")
	}
	return &Provider{
		client: client,
		typ:    NetworkManagerConnection(),
		logger: logger.With(zap.String("type", TypeName)),
	}
}

// Type returns the resource type declaration.
func (p *Provider) Type() *Type {
	return p.typ
}

// Requires lists the executables the provider needs on PATH.
func (p *Provider) Requires() []string {
	return []string{p.client.Binary()}
}

// Get returns the current state of the named connections, or of every
// connection when names is empty. Connections that cannot be read are
// dropped. A failure to list connections yields an empty result and an
// error log entry; it is not returned.
func (p *Provider) Get(ctx context.Context, names ...string) []models.ConnectionDetail {
	p.logger.Debug("fetching NetworkManager connections", zap.Strings("names", names))

	outcomes, err := p.Outcomes(ctx, names...)
	if err != nil {
		p.logger.Error("error listing NetworkManager connections", zap.Error(err))
		return []models.ConnectionDetail{}
	}

	details := make([]models.ConnectionDetail, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			details = append(details, o.Detail)
		}
	}
	return details
}

// Outcomes reads each connection in order and reports one Outcome per
// name. The error is non-nil only when the connection list itself could
// not be obtained.
func (p *Provider) Outcomes(ctx context.Context, names ...string) ([]Outcome, error) {
	if len(names) == 0 {
		listed, err := p.client.ConnectionNames(ctx)
		if err != nil {
			return nil, err
		}
		names = listed
	}

	outcomes := make([]Outcome, 0, len(names))
	for _, name := range names {
		outcomes = append(outcomes, p.Fetch(ctx, name))
	}
	return outcomes, nil
}

// Fetch reads a single connection.
func (p *Provider) Fetch(ctx context.Context, name string) Outcome {
	raw, err := p.client.ConnectionDetail(ctx, name)
	metrics.RecordConnectionFetch(err)
	if err != nil {
		p.logger.Debug("connection unreadable, skipping",
			zap.String(logging.KeyConnection, name),
			zap.Error(err))
		return Outcome{Name: name, Err: fmt.Errorf("show connection %q: %w", name, err)}
	}

	detail := ParseDetail(name, raw)
	for _, problem := range p.typ.Check(detail) {
		p.logger.Debug("value outside declared type",
			zap.String(logging.KeyConnection, name),
			zap.Error(problem))
	}
	return Outcome{Name: name, Detail: detail}
}
