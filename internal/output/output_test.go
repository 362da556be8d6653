package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

type record struct {
	Name  string   `json:"name" yaml:"name"`
	Addrs []string `json:"addrs" yaml:"addrs"`
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, []record{{Name: "Home WiFi", Addrs: []string{"10.0.0.1/24"}}}))
	assert.Equal(t, "[\n  {\n    \"name\": \"Home WiFi\",\n    \"addrs\": [\n      \"10.0.0.1/24\"\n    ]\n  }\n]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "YAML", record{Name: "Wired"}))
	assert.Equal(t, "name: Wired\naddrs: []\n", buf.String())
}

func TestWriteUnsupported(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "xml", 1))
	assert.Error(t, WriteRaw(&bytes.Buffer{}, "xml", []byte(`{}`)))
}

func TestWriteRawKeepsOrder(t *testing.T) {
	raw := []byte(`{"nm_network":"enabled","nm_all_devices":{"wlan0":{"type":"wifi"}}}`)

	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, FormatJSON, raw))
	assert.Equal(t, "{\n  \"nm_network\": \"enabled\",\n  \"nm_all_devices\": {\n    \"wlan0\": {\n      \"type\": \"wifi\"\n    }\n  }\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRaw(&buf, FormatYAML, raw))
	assert.Equal(t, "nm_network: enabled\nnm_all_devices:\n  wlan0:\n    type: wifi\n", buf.String())
}

func TestWriteRawYAMLQuotesAmbiguousStrings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, FormatYAML, []byte(`{"autoconnect_priority":"5","active":true}`)))

	var back map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "5", back["autoconnect_priority"])
	assert.Equal(t, true, back["active"])
}

func TestWriteResults(t *testing.T) {
	doc := `{"nm_network":"enabled","nm_version":"1.46.0"}`
	results := map[string]gjson.Result{
		"nm_version": gjson.Get(doc, "nm_version"),
		"nm_network": gjson.Get(doc, "nm_network"),
		"nm_missing": gjson.Get(doc, "nm_missing"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, FormatJSON, []string{"nm_version", "nm_network", "nm_missing"}, results))
	assert.Equal(t, "{\n  \"nm_version\": \"1.46.0\",\n  \"nm_network\": \"enabled\",\n  \"nm_missing\": null\n}\n", buf.String())
}
