package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor"
)

// ErrConfined marks a fact or resource source that is not available on
// this host. It is not a collection failure.
var ErrConfined = errors.New("confined")

// KernelLinux is the only kernel NetworkManager facts resolve on.
const KernelLinux = "linux"

// OSProbe returns the host operating system name, e.g. "linux".
type OSProbe func(ctx context.Context) (string, error)

// HostOS reads the operating system from gopsutil.
func HostOS(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	return info.OS, nil
}

// Confine decides whether a collector can run here: the kernel must be
// Linux and every required executable must be on PATH.
type Confine struct {
	runner executor.Runner
	probe  OSProbe
}

// NewConfine creates a Confine. A nil probe uses HostOS.
func NewConfine(runner executor.Runner, probe OSProbe) *Confine {
	if probe == nil {
		probe = HostOS
	}
	return &Confine{runner: runner, probe: probe}
}

// Check returns nil when all requirements hold, or an error wrapping
// ErrConfined that names the first unmet one.
func (c *Confine) Check(ctx context.Context, requires []string) error {
	osName, err := c.probe(ctx)
	if err != nil {
		return fmt.Errorf("%w: cannot determine kernel: %v", ErrConfined, err)
	}
	if !strings.EqualFold(osName, KernelLinux) {
		return fmt.Errorf("%w: kernel is %s", ErrConfined, osName)
	}

	for _, name := range requires {
		if _, err := c.runner.LookPath(name); err != nil {
			return fmt.Errorf("%w: %s not found", ErrConfined, name)
		}
	}
	return nil
}
