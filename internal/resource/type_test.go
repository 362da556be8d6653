package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkManagerConnectionDeclaration(t *testing.T) {
	typ := NetworkManagerConnection()

	assert.Equal(t, TypeName, typ.Name)
	assert.True(t, typ.HasFeature(FeatureSimpleGetFilter))

	names := make([]string, 0, len(typ.Attributes))
	for _, a := range typ.Attributes {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"ensure", "name", "type", "device",
		"ipv4_method", "ipv4_addresses", "ipv4_dns",
		"ipv6_method", "ipv6_addresses", "ipv6_dns",
		"general_state", "uuid",
	}, names)

	name, ok := typ.Attribute("name")
	require.True(t, ok)
	assert.Equal(t, "namevar", name.Behavior)

	state, _ := typ.Attribute("general_state")
	assert.Equal(t, "down", state.Default)

	_, ok = typ.Attribute("mtu")
	assert.False(t, ok)
}

func TestAttributeValid(t *testing.T) {
	typ := NetworkManagerConnection()

	addrs, _ := typ.Attribute("ipv4_addresses")
	assert.True(t, addrs.Valid("192.168.1.100/24"))
	assert.False(t, addrs.Valid("192.168.1.100"))

	dns, _ := typ.Attribute("ipv4_dns")
	assert.True(t, dns.Valid("9.9.9.9"))
	assert.False(t, dns.Valid("9.9.9.9/32"))

	device, _ := typ.Attribute("device")
	assert.True(t, device.Valid("anything"))
}

func TestTypeCheck(t *testing.T) {
	typ := NetworkManagerConnection()

	assert.Empty(t, typ.Check(ParseDetail("Home WiFi", wifiDetail)))

	d := ParseDetail("odd", "GENERAL.STATE:activating\nipv4.method:link-local\nIP4.ADDRESS[1]:10.0.0.1/24\n")
	errs := typ.Check(d)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "ipv4_method")
	assert.Contains(t, errs[1].Error(), "general_state")
}
