package extract

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/work24-mcp/work24-mcp/internal/payload"
)

// Coercion turns the node found at a field's source path into an output value.
// A nil result means the field is absent.
type Coercion func(node payload.Value) any

// Field is one row of a Schema: output name, source path and coercion.
type Field struct {
	Name   string
	Path   []string
	Coerce Coercion
}

// Schema is an ordered extraction table.
type Schema []Field

// Extract runs every row against node. Rows never fail, so the result always
// carries every output name.
func (s Schema) Extract(node payload.Value) map[string]any {
	out := make(map[string]any, len(s))
	for _, f := range s {
		out[f.Name] = f.Coerce(node.Get(f.Path...))
	}
	return out
}

// Names returns the output names in table order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// Decode extracts node and decodes the row values into T using its json tags.
func Decode[T any](s Schema, node payload.Value) (T, error) {
	var out T

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &out,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return out, errors.Wrap(err, "creating a record decoder")
	}
	if err := decoder.Decode(s.Extract(node)); err != nil {
		return out, errors.Wrapf(err, "decoding %T", out)
	}

	return out, nil
}

// DecodeList runs Decode for every element of the one-or-many node.
func DecodeList[T any](s Schema, node payload.Value) ([]T, error) {
	list := node.AsList()
	items := make([]T, 0, len(list))
	for _, item := range list {
		rec, err := Decode[T](s, item)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, nil
}

// First applies list coercion and returns the first element, or Null.
func First(node payload.Value) payload.Value {
	list := node.AsList()
	if len(list) == 0 {
		return payload.Null()
	}
	return list[0]
}

// text returns non-empty scalar text. Empty XML elements count as absent.
func text(node payload.Value) (string, bool) {
	s, ok := node.Text()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Text is a required display field that falls back to def.
func Text(name, def string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		if s, ok := text(node); ok {
			return s
		}
		return def
	}}
}

// OptText is an optional string field.
func OptText(name string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		if s, ok := text(node); ok {
			return s
		}
		return nil
	}}
}

// OptInt is an optional integer field. Non-numeric text is absent.
func OptInt(name string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		s, ok := text(node)
		if !ok {
			return nil
		}
		if n, ok := ParseInt(s); ok {
			return n
		}
		return nil
	}}
}

// OptFloat is an optional decimal field. Non-numeric text is absent.
func OptFloat(name string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		s, ok := text(node)
		if !ok {
			return nil
		}
		if f, ok := ParseFloat(s); ok {
			return f
		}
		return nil
	}}
}

// OptDate is an optional date field with YYYYMMDD rewritten to YYYY-MM-DD.
func OptDate(name string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		if s, ok := text(node); ok {
			return FormatDate(s)
		}
		return nil
	}}
}

// Contains is a derived flag: true when the raw code field contains needle.
func Contains(name, needle string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		s, ok := text(node)
		return ok && strings.Contains(s, needle)
	}}
}

// Raw keeps the fragment at path as is.
func Raw(name string, path ...string) Field {
	return Field{Name: name, Path: path, Coerce: func(node payload.Value) any {
		return node
	}}
}
