package models

// ConnectionRecord is one NetworkManager connection profile from the
// connection list. Fields whose raw value was empty are left unset.
type ConnectionRecord struct {
	Name                string `json:"-" yaml:"-"`
	UUID                string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Type                string `json:"type,omitempty" yaml:"type,omitempty"`
	Autoconnect         *bool  `json:"autoconnect,omitempty" yaml:"autoconnect,omitempty"`
	AutoconnectPriority string `json:"autoconnect_priority,omitempty" yaml:"autoconnect_priority,omitempty"`
	Readonly            *bool  `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	DBusPath            string `json:"dbus_path,omitempty" yaml:"dbus_path,omitempty"`
	Active              *bool  `json:"active,omitempty" yaml:"active,omitempty"`
	Device              string `json:"device,omitempty" yaml:"device,omitempty"`
	State               string `json:"state,omitempty" yaml:"state,omitempty"`
	ActivePath          string `json:"active_path,omitempty" yaml:"active_path,omitempty"`
	Filename            string `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// IsActive reports whether the profile is in use on a device.
func (c ConnectionRecord) IsActive() bool {
	return c.Active != nil && *c.Active && c.State == StateActivated
}

// StateActivated is the state of a connection currently in use.
const StateActivated = "activated"

// DeviceRecord is one network device from the device list.
type DeviceRecord struct {
	Device          string `json:"-" yaml:"-"`
	Type            string `json:"type,omitempty" yaml:"type,omitempty"`
	State           string `json:"state,omitempty" yaml:"state,omitempty"`
	IP4Connectivity string `json:"ip4_connectivity,omitempty" yaml:"ip4_connectivity,omitempty"`
	IP6Connectivity string `json:"ip6_connectivity,omitempty" yaml:"ip6_connectivity,omitempty"`
	DBusPath        string `json:"dbus_path,omitempty" yaml:"dbus_path,omitempty"`
	Connection      string `json:"connection,omitempty" yaml:"connection,omitempty"`
	ConUUID         string `json:"con_uuid,omitempty" yaml:"con_uuid,omitempty"`
	ConPath         string `json:"con_path,omitempty" yaml:"con_path,omitempty"`
}

// EnsurePresent is the only ensure value the reader produces.
const EnsurePresent = "present"

// ConnectionDetail is the networkmanager_connection resource shape read
// from the verbose per-connection output. Absent scalars and empty lists
// serialize as null.
type ConnectionDetail struct {
	Ensure        string   `json:"ensure" yaml:"ensure"`
	Name          string   `json:"name" yaml:"name"`
	Type          *string  `json:"type" yaml:"type"`
	Device        *string  `json:"device" yaml:"device"`
	IPv4Method    *string  `json:"ipv4_method" yaml:"ipv4_method"`
	IPv4Addresses []string `json:"ipv4_addresses" yaml:"ipv4_addresses"`
	IPv4DNS       []string `json:"ipv4_dns" yaml:"ipv4_dns"`
	IPv6Method    *string  `json:"ipv6_method" yaml:"ipv6_method"`
	IPv6Addresses []string `json:"ipv6_addresses" yaml:"ipv6_addresses"`
	IPv6DNS       []string `json:"ipv6_dns" yaml:"ipv6_dns"`
	GeneralState  string   `json:"general_state" yaml:"general_state"`
	UUID          *string  `json:"uuid" yaml:"uuid"`
}
