package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"hbnb/internal/models"
	"hbnb/internal/types"
)

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// Encode renders the registry as one JSON object keyed by registry key,
// preserving insertion order at both levels.
func Encode(objects *Objects) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	i := 0
	objects.Each(func(key string, attrs *models.Attributes) bool {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		if err = writeString(&buf, key); err != nil {
			return false
		}
		buf.WriteByte(':')
		if err = encodeAttributes(&buf, key, attrs); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

func encodeAttributes(buf *bytes.Buffer, key string, attrs *models.Attributes) error {
	buf.WriteByte('{')
	var err error
	i := 0
	attrs.Each(func(name string, value any) bool {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		if err = writeString(buf, name); err != nil {
			return false
		}
		buf.WriteByte(':')
		var raw []byte
		if raw, err = encodeValue(value); err != nil {
			err = fmt.Errorf("%s.%s: %w", key, name, err)
			return false
		}
		buf.Write(raw)
		return true
	})
	if err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

// encodeValue is the serialization hook for attribute values. Plain scalars
// pass through, timestamps become TimeFormat strings, nested JSON read from
// an earlier document is copied verbatim. Everything else is rejected.
func encodeValue(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return marshal(x)
	case float32:
		return encodeFloat(float64(x))
	case float64:
		return encodeFloat(x)
	case json.Number:
		if _, err := x.Float64(); err != nil {
			return nil, fmt.Errorf("%w: malformed number %q", ErrUnsupportedType, x)
		}
		return []byte(x), nil
	case time.Time:
		return marshal(models.FormatTime(x))
	case json.RawMessage:
		if !gjson.ValidBytes(x) {
			return nil, fmt.Errorf("%w: malformed nested JSON", ErrUnsupportedType)
		}
		return x, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func encodeFloat(f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, f)
	}
	return marshal(f)
}

func writeString(buf *bytes.Buffer, s string) error {
	raw, err := marshal(s)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

// marshal encodes without HTML escaping so text survives unchanged.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a document produced by Encode (or by any writer of the same
// shape) into a registry, keeping document order.
func Decode(data []byte) (*Objects, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrCorrupt)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrCorrupt, root.Type)
	}

	objects := types.NewOrderedMap[*models.Attributes]()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("%w: entry %q is %s, want object", ErrCorrupt, key.String(), value.Type)
			return false
		}
		attrs := models.NewAttributes()
		value.ForEach(func(name, v gjson.Result) bool {
			var decoded any
			if decoded, err = decodeValue(v); err != nil {
				err = fmt.Errorf("%s.%s: %w", key.String(), name.String(), err)
				return false
			}
			attrs.Set(name.String(), decoded)
			return true
		})
		if err != nil {
			return false
		}
		objects.Set(key.String(), attrs)
		return true
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// decodeValue accepts only numbers encodeValue can write back, so a loaded
// document always persists again.
func decodeValue(v gjson.Result) (any, error) {
	switch v.Type {
	case gjson.String:
		return v.String(), nil
	case gjson.Number:
		n := json.Number(v.Raw)
		if _, err := n.Float64(); err != nil {
			return nil, fmt.Errorf("%w: number %s out of range", ErrCorrupt, v.Raw)
		}
		return n, nil
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	case gjson.Null:
		return nil, nil
	default:
		return json.RawMessage(v.Raw), nil
	}
}
