package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/nextdata/internal/models"
)

// DefaultIndent is the per-level indentation used for extracted payloads
const DefaultIndent = "  "

// Formatter renders parsed JSON back into indented text.
// Member order is kept, non-ASCII characters and <, >, & are written literally.
type Formatter struct {
	Indent string
}

// NewFormatter creates a new Formatter instance with two-space indentation
func NewFormatter() *Formatter {
	return &Formatter{Indent: DefaultIndent}
}

// Format renders value as indented JSON without a trailing newline
func (f *Formatter) Format(value models.JSONValue) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.writeValue(&buf, value, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *Formatter) writeValue(buf *bytes.Buffer, value models.JSONValue, depth int) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		if v == "" {
			return fmt.Errorf("empty number literal")
		}
		buf.WriteString(string(v))
	case models.NonFinite:
		buf.WriteString(string(v))
	case string:
		return writeString(buf, v)
	case models.JSONObject:
		if len(v) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, m := range v {
			f.writeIndent(buf, depth+1)
			if err := writeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := f.writeValue(buf, m.Value, depth+1); err != nil {
				return err
			}
			if i < len(v)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		f.writeIndent(buf, depth)
		buf.WriteByte('}')
	case models.JSONArray:
		if len(v) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range v {
			f.writeIndent(buf, depth+1)
			if err := f.writeValue(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(v)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		f.writeIndent(buf, depth)
		buf.WriteByte(']')
	default:
		// Plain Go values (maps, slices, structs) go through encoding/json
		raw, err := marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %T: %w", v, err)
		}
		return json.Indent(buf, raw, strings.Repeat(f.Indent, depth), f.Indent)
	}
	return nil
}

func (f *Formatter) writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(f.Indent)
	}
}

func writeString(buf *bytes.Buffer, s string) error {
	raw, err := marshal(s)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

// marshal is json.Marshal without HTML escaping and with U+2028 and
// U+2029 left literal
func marshal(v interface{}) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return literalSeparators(bytes.TrimSuffix(b.Bytes(), []byte("\n"))), nil
}

var (
	escapedLineSep = []byte(`\u2028`)
	escapedParaSep = []byte(`\u2029`)
)

// literalSeparators undoes the escapes encoding/json always applies to the
// line and paragraph separators. An escaped backslash followed by u2028
// is copied unchanged.
func literalSeparators(raw []byte) []byte {
	if !bytes.Contains(raw, escapedLineSep) && !bytes.Contains(raw, escapedParaSep) {
		return raw
	}

	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] != '\\' || i+1 == len(raw):
			out = append(out, raw[i])
		case bytes.HasPrefix(raw[i:], escapedLineSep):
			out = append(out, "\u2028"...)
			i += len(escapedLineSep) - 1
		case bytes.HasPrefix(raw[i:], escapedParaSep):
			out = append(out, "\u2029"...)
			i += len(escapedParaSep) - 1
		default:
			out = append(out, raw[i], raw[i+1])
			i++
		}
	}
	return out
}
