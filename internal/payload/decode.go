package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/clbanning/mxj/v2"
	"github.com/cockroachdb/errors"
)

// DecodeXML parses an XML document into a tree. Element names become keys and
// repeated sibling elements collapse into a single key holding a Sequence.
// Leaf text is never cast, so numbers stay as upstream text. An empty element
// is Null, so an empty list item reads as an empty list.
func DecodeXML(body []byte) (Value, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return Null(), errors.Wrap(err, "decode xml")
	}
	return nullEmptyText(FromInterface(map[string]any(m))), nil
}

func nullEmptyText(v Value) Value {
	switch v.kind {
	case KindScalar:
		if v.scalar == "" {
			return Null()
		}
	case KindSequence:
		for i, item := range v.seq {
			v.seq[i] = nullEmptyText(item)
		}
	case KindMapping:
		for key, field := range v.fields {
			v.fields[key] = nullEmptyText(field)
		}
	}
	return v
}

// DecodeJSON parses a JSON document into a tree, keeping number literals as text.
func DecodeJSON(body []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Null(), errors.Wrap(err, "decode json")
	}
	return FromInterface(raw), nil
}

// FromInterface converts the output of a generic decoder into a Value.
func FromInterface(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Null()
	case Value:
		return typed
	case string:
		return Scalar(typed)
	case json.Number:
		return Scalar(typed.String())
	case bool:
		return Scalar(strconv.FormatBool(typed))
	case float64:
		return Scalar(strconv.FormatFloat(typed, 'f', -1, 64))
	case []any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, FromInterface(item))
		}
		return Sequence(items...)
	case map[string]any:
		fields := make(map[string]Value, len(typed))
		for key, field := range typed {
			fields[key] = FromInterface(field)
		}
		return Mapping(fields)
	case mxj.Map:
		return FromInterface(map[string]any(typed))
	default:
		return Scalar(fmt.Sprintf("%v", typed))
	}
}
