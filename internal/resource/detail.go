package resource

import (
	"strings"

	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
)

// Keys read from the verbose connection output.
const (
	KeyGeneralState  = "GENERAL.STATE"
	KeyType          = "connection.type"
	KeyInterfaceName = "connection.interface-name"
	KeyUUID          = "connection.uuid"
	KeyIPv4Method    = "ipv4.method"
	KeyIPv6Method    = "ipv6.method"

	// Multi-valued keys carry a "[n]" suffix per value.
	PrefixIPv4Address = "IP4.ADDRESS"
	PrefixIPv4DNS     = "IP4.DNS"
	PrefixIPv6Address = "IP6.ADDRESS"
	PrefixIPv6DNS     = "IP6.DNS"

	// StateUnknown is used when the output has no GENERAL.STATE.
	StateUnknown = "unknown"
)

// Properties is the parsed key:value output of one connection. Keys keep
// the order of their first appearance; a repeated key keeps its last value.
// Absent values are nil.
type Properties struct {
	keys   []string
	values map[string]*string
}

// ParseProperties splits each trimmed line at its first colon. Key and
// value are trimmed and a blank value is stored as absent. Lines without
// a colon are ignored.
func ParseProperties(raw string) Properties {
	p := Properties{values: make(map[string]*string)}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)

		var v *string
		if value = strings.TrimSpace(nmcli.Unescape(value)); value != "" {
			v = &value
		}

		if _, seen := p.values[key]; !seen {
			p.keys = append(p.keys, key)
		}
		p.values[key] = v
	}
	return p
}

// Get returns the value of key, or nil when the key is missing or blank.
func (p Properties) Get(key string) *string {
	return p.values[key]
}

// Keys returns the keys in order of first appearance.
func (p Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Values collects the present values of all keys starting with prefix,
// in output order. It returns nil rather than an empty slice.
func (p Properties) Values(prefix string) []string {
	var out []string
	for _, key := range p.keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if v := p.values[key]; v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// ParseDetail shapes the verbose output of one connection into the
// resource record.
func ParseDetail(name, raw string) models.ConnectionDetail {
	p := ParseProperties(raw)

	state := StateUnknown
	if v := p.Get(KeyGeneralState); v != nil {
		state = *v
	}

	return models.ConnectionDetail{
		Ensure:        models.EnsurePresent,
		Name:          name,
		Type:          p.Get(KeyType),
		Device:        p.Get(KeyInterfaceName),
		IPv4Method:    p.Get(KeyIPv4Method),
		IPv4Addresses: p.Values(PrefixIPv4Address),
		IPv4DNS:       p.Values(PrefixIPv4DNS),
		IPv6Method:    p.Get(KeyIPv6Method),
		IPv6Addresses: p.Values(PrefixIPv6Address),
		IPv6DNS:       p.Values(PrefixIPv6DNS),
		GeneralState:  strings.ToLower(state),
		UUID:          p.Get(KeyUUID),
	}
}
