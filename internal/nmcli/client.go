package nmcli

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxpupuli/puppet-networkmanager/internal/executor"
)

// Default binary names, resolved through PATH.
const (
	DefaultBinary       = "nmcli"
	DefaultDaemonBinary = "NetworkManager"
)

// Client issues the nmcli and NetworkManager invocations the agent needs.
// Every method runs exactly one command and returns its raw output.
type Client struct {
	runner executor.Runner
	binary string
	daemon string
}

// NewClient creates a Client. Empty paths fall back to the defaults.
func NewClient(runner executor.Runner, binary, daemon string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if daemon == "" {
		daemon = DefaultDaemonBinary
	}
	return &Client{runner: runner, binary: binary, daemon: daemon}
}

// Binary returns the nmcli command the client runs.
func (c *Client) Binary() string {
	return c.binary
}

// Daemon returns the NetworkManager command the client runs.
func (c *Client) Daemon() string {
	return c.daemon
}

// Connections lists all connection profiles in ConnectionFields order.
func (c *Client) Connections(ctx context.Context) (string, error) {
	return c.runner.Run(ctx, c.binary, "-t", "-f", ConnectionFields.Selector(), "con", "show")
}

// Devices lists all devices in DeviceFields order.
func (c *Client) Devices(ctx context.Context) (string, error) {
	return c.runner.Run(ctx, c.binary, "-t", "-e", "yes", "-c", "no", "-f", DeviceFields.Selector(), "device")
}

// Network returns the overall networking state, e.g. "enabled".
func (c *Client) Network(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.binary, "-c", "no", "network")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ConnectionNames lists the names of all connection profiles.
func (c *Client) ConnectionNames(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, c.binary, "-t", "-f", "name", "connection", "show")
	if err != nil {
		return nil, fmt.Errorf("list connection names: %w", err)
	}
	return ParseNames(out), nil
}

// ConnectionDetail returns the verbose key:value output for one profile.
func (c *Client) ConnectionDetail(ctx context.Context, name string) (string, error) {
	return c.runner.Run(ctx, c.binary, "-t", "connection", "show", name)
}

// Version returns the NetworkManager daemon version.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.daemon, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
