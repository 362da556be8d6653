package resource

import (
	"fmt"
	"regexp"

	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
)

// TypeName is the name of the connection resource type.
const TypeName = "networkmanager_connection"

// FeatureSimpleGetFilter marks a provider that can fetch a subset of
// instances by name.
const FeatureSimpleGetFilter = "simple_get_filter"

var (
	ipv4CIDR = regexp.MustCompile(`\A\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}/\d{1,2}\z`)
	ipv4Addr = regexp.MustCompile(`\A\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\z`)
)

// Attribute describes one property of a resource type.
type Attribute struct {
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"type" yaml:"type"`
	Desc     string `json:"desc" yaml:"desc"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
	Behavior string `json:"behaviour,omitempty" yaml:"behaviour,omitempty"`

	valid func(string) bool
}

// Valid reports whether a single value fits the attribute's type.
func (a Attribute) Valid(value string) bool {
	return a.valid == nil || a.valid(value)
}

// Type is a resource type declaration.
type Type struct {
	Name       string      `json:"name" yaml:"name"`
	Docs       string      `json:"docs" yaml:"docs"`
	Features   []string    `json:"features" yaml:"features"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// Attribute looks up an attribute by name.
func (t *Type) Attribute(name string) (Attribute, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasFeature reports whether the type declares feature.
func (t *Type) HasFeature(feature string) bool {
	for _, f := range t.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Check reports values in detail that fall outside the declared
// attribute types. Nothing is enforced; the caller decides what to do
// with the result.
func (t *Type) Check(detail models.ConnectionDetail) []error {
	var errs []error
	for _, v := range attributeValues(detail) {
		attr, ok := t.Attribute(v.name)
		if !ok {
			continue
		}
		for _, value := range v.values {
			if !attr.Valid(value) {
				errs = append(errs, fmt.Errorf("%s: %q does not match %s", v.name, value, attr.DataType))
			}
		}
	}
	return errs
}

type namedValues struct {
	name   string
	values []string
}

func attributeValues(d models.ConnectionDetail) []namedValues {
	return []namedValues{
		{"ensure", []string{d.Ensure}},
		{"name", []string{d.Name}},
		{"type", optional(d.Type)},
		{"device", optional(d.Device)},
		{"ipv4_method", optional(d.IPv4Method)},
		{"ipv4_addresses", d.IPv4Addresses},
		{"ipv4_dns", d.IPv4DNS},
		{"ipv6_method", optional(d.IPv6Method)},
		{"ipv6_addresses", d.IPv6Addresses},
		{"ipv6_dns", d.IPv6DNS},
		{"general_state", []string{d.GeneralState}},
		{"uuid", optional(d.UUID)},
	}
}

func optional(v *string) []string {
	if v == nil {
		return nil
	}
	return []string{*v}
}

func oneOf(values ...string) func(string) bool {
	return func(v string) bool {
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

func nonEmpty(v string) bool { return v != "" }

// NetworkManagerConnection returns the declaration of the
// networkmanager_connection type.
func NetworkManagerConnection() *Type {
	methods := oneOf("auto", "manual", "disabled")
	return &Type{
		Name:     TypeName,
		Docs:     "Manage NetworkManager connections using nmcli.",
		Features: []string{FeatureSimpleGetFilter},
		Attributes: []Attribute{
			{
				Name:     "ensure",
				DataType: "Enum[present, absent]",
				Desc:     "Whether this connection should be present or absent on the target system.",
				Default:  models.EnsurePresent,
				valid:    oneOf("present", "absent"),
			},
			{
				Name:     "name",
				DataType: "String",
				Desc:     "The name of the NetworkManager connection.",
				Behavior: "namevar",
			},
			{
				Name:     "type",
				DataType: `Enum[ethernet, "802-3-ethernet", loopback, wifi, vpn, bridge, bond, vlan]`,
				Desc:     "The type of the NetworkManager connection.",
				valid:    oneOf("ethernet", "802-3-ethernet", "loopback", "wifi", "vpn", "bridge", "bond", "vlan"),
			},
			{
				Name:     "device",
				DataType: "Optional[String]",
				Desc:     "The device (interface) name the connection is bound to.",
			},
			{
				Name:     "ipv4_method",
				DataType: "Enum[auto, manual, disabled]",
				Desc:     "The IPv4 configuration method.",
				valid:    methods,
			},
			{
				Name:     "ipv4_addresses",
				DataType: "Optional[Array[Pattern[/\\A\\d{1,3}\\.\\d{1,3}\\.\\d{1,3}\\.\\d{1,3}\\/\\d{1,2}\\z/]]]",
				Desc:     "IPv4 addresses in CIDR notation.",
				valid:    ipv4CIDR.MatchString,
			},
			{
				Name:     "ipv4_dns",
				DataType: "Optional[Array[Pattern[/\\A\\d{1,3}\\.\\d{1,3}\\.\\d{1,3}\\.\\d{1,3}\\z/]]]",
				Desc:     "IPv4 DNS servers.",
				valid:    ipv4Addr.MatchString,
			},
			{
				Name:     "ipv6_method",
				DataType: "Enum[auto, manual, disabled]",
				Desc:     "The IPv6 configuration method.",
				valid:    methods,
			},
			{
				Name:     "ipv6_addresses",
				DataType: "Optional[Array[String[1]]]",
				Desc:     "IPv6 addresses in CIDR notation.",
				valid:    nonEmpty,
			},
			{
				Name:     "ipv6_dns",
				DataType: "Optional[Array[String[1]]]",
				Desc:     "IPv6 DNS servers.",
				valid:    nonEmpty,
			},
			{
				Name:     "general_state",
				DataType: "Enum[activated, unknown, down, connecting, connected, disconnecting]",
				Desc:     "The general state of the connection as reported by nmcli.",
				Default:  "down",
				valid:    oneOf("activated", "unknown", "down", "connecting", "connected", "disconnecting"),
			},
			{
				Name:     "uuid",
				DataType: "Optional[String]",
				Desc:     "The UUID of the connection.",
				Behavior: "read_only",
			},
		},
	}
}
