package collector

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Document is a JSON object of resolved facts, keyed by fact name.
type Document struct {
	raw []byte
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{raw: []byte("{}")}
}

// Set stores value under the fact name.
func (d *Document) Set(name string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal fact %s: %w", name, err)
	}
	raw, err := sjson.SetRawBytes(d.raw, EscapePath(name), b)
	if err != nil {
		return fmt.Errorf("store fact %s: %w", name, err)
	}
	d.raw = raw
	return nil
}

// Query evaluates a dotted path such as "nm_all_connections.Home WiFi.uuid".
// Literal dots inside a key are escaped with a backslash.
func (d *Document) Query(path string) (gjson.Result, bool) {
	res := gjson.GetBytes(d.raw, path)
	return res, res.Exists()
}

// Has reports whether the fact name is present.
func (d *Document) Has(name string) bool {
	return gjson.GetBytes(d.raw, EscapePath(name)).Exists()
}

// Names returns the fact names in insertion order.
func (d *Document) Names() []string {
	var names []string
	gjson.ParseBytes(d.raw).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	return names
}

// JSON returns the document bytes.
func (d *Document) JSON() []byte {
	return d.raw
}

// Value decodes the document into generic Go values.
func (d *Document) Value() (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(d.raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FactName returns the leading path component of a query, unescaped.
func FactName(query string) string {
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '\\' && i+1 < len(query) {
			b.WriteByte(query[i+1])
			i++
			continue
		}
		if c == '.' {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapePath escapes a single key for use in a gjson/sjson path.
func EscapePath(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', ':', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteByte(key[i])
	}
	return b.String()
}
