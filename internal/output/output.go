// Package output renders fact documents and resource records for the
// command line.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders value to w in the given format. JSON is indented with
// two spaces; YAML uses yaml.v3 defaults.
func Write(w io.Writer, format string, value interface{}) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(value)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteRaw renders an already encoded JSON document, keeping its key
// order for JSON output.
func WriteRaw(w io.Writer, format string, raw []byte) error {
	if strings.ToLower(format) == FormatYAML {
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return fmt.Errorf("convert to yaml: %w", err)
		}
		clearStyle(&node)
		return Write(w, FormatYAML, &node)
	}
	if format != "" && strings.ToLower(format) != FormatJSON {
		return fmt.Errorf("unsupported output format %q", format)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteResults renders query results keyed by query, in the order given.
func WriteResults(w io.Writer, format string, queries []string, results map[string]gjson.Result) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, q := range queries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(q)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if res, ok := results[q]; ok && res.Exists() {
			buf.WriteString(res.Raw)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return WriteRaw(w, format, buf.Bytes())
}

// clearStyle drops the flow style yaml.v3 keeps from JSON input so the
// result prints as block YAML.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
