// Package nmcli knows the command lines and terse output layout of the
// NetworkManager command-line client.
package nmcli

import (
	"strings"
)

// ConnectionFields is the field order of the connection list.
var ConnectionFields = NewSchema(
	"name",
	"uuid",
	"type",
	"autoconnect",
	"autoconnect-priority",
	"readonly",
	"dbus-path",
	"active",
	"device",
	"state",
	"active-path",
	"filename",
)

// DeviceFields is the field order of the device list.
var DeviceFields = NewSchema(
	"device",
	"type",
	"state",
	"ip4-connectivity",
	"ip6-connectivity",
	"dbus-path",
	"connection",
	"con-uuid",
	"con-path",
)

// Schema is an ordered list of terse-mode field names.
type Schema struct {
	fields []string
	index  map[string]int
}

// NewSchema builds a Schema from field names in output order.
func NewSchema(fields ...string) Schema {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	return Schema{fields: fields, index: index}
}

// Fields returns a copy of the field names.
func (s Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Selector returns the value for nmcli's --fields option.
func (s Schema) Selector() string {
	return strings.Join(s.fields, ",")
}

// Split breaks one terse line into positional fields. Missing trailing
// fields read as empty; surplus fields are counted and dropped.
func (s Schema) Split(line string) Row {
	parts := SplitTerse(strings.TrimSpace(line))

	row := Row{schema: s, values: make([]string, len(s.fields))}
	for i, p := range parts {
		if i >= len(s.fields) {
			row.Extra = len(parts) - len(s.fields)
			break
		}
		row.values[i] = strings.TrimSpace(p)
	}
	if len(parts) < len(s.fields) {
		row.Missing = len(s.fields) - len(parts)
	}
	return row
}

// Row is one split line.
type Row struct {
	schema  Schema
	values  []string
	Missing int // trailing fields absent from the line
	Extra   int // fields beyond the schema
}

// Get returns the trimmed value of field, or "" when absent or unknown.
func (r Row) Get(field string) string {
	i, ok := r.schema.index[field]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Ragged reports whether the line did not match the schema's field count.
func (r Row) Ragged() bool {
	return r.Missing > 0 || r.Extra > 0
}

// SplitTerse splits a terse-mode line on unescaped colons and removes the
// "\:" and "\\" escapes nmcli applies to values.
func SplitTerse(line string) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && (line[i+1] == ':' || line[i+1] == '\\'):
			cur.WriteByte(line[i+1])
			i++
		case c == ':':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(parts, cur.String())
}

// Unescape removes terse-mode escapes from a single value.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == ':' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ParseNames returns one name per non-empty trimmed line.
func ParseNames(raw string) []string {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, Unescape(line))
	}
	return names
}
