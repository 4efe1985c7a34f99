package work24

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// paramTag names the upstream query parameter of a search field.
const paramTag = "work24"

// Params is an upstream query before protocol parameters are merged in.
// A nil value (or a nil pointer) means the parameter is not sent at all.
type Params map[string]any

// buildParams maps a tagged search struct onto Params. Zero values ("", 0,
// empty lists) are left out and code lists are joined with "|".
func buildParams(params any) Params {
	q := Params{}

	v := reflect.Indirect(reflect.ValueOf(params))
	for _, field := range reflect.VisibleFields(v.Type()) {
		key := field.Tag.Get(paramTag)
		if key == "" || key == "-" {
			continue
		}

		value := v.FieldByIndex(field.Index)
		switch value.Kind() {
		case reflect.Slice:
			parts := make([]string, 0, value.Len())
			for i := 0; i < value.Len(); i++ {
				if s := fmt.Sprintf("%v", value.Index(i).Interface()); s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				q[key] = strings.Join(parts, "|")
			}

		case reflect.String:
			if s := value.String(); s != "" {
				q[key] = s
			}

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if n := value.Int(); n != 0 {
				q[key] = int(n)
			}

		default:
			s := fmt.Sprintf("%v", value.Interface())
			if s != "" && s != "0" {
				q[key] = s
			}
		}
	}

	return q
}

// formatParam renders a query value. ok is false for values that must be
// dropped from the outbound request.
func formatParam(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return "", false
		}
	}

	return fmt.Sprintf("%v", rv.Interface()), true
}
