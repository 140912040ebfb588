package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Repr renders v the way the shell prints attribute bags: Python literal
// syntax, so `show` output reads {'id': '...', 'name': 'Bob'}.
func Repr(v any) string {
	var b strings.Builder
	writeRepr(&b, v)
	return b.String()
}

// ReprList renders a list of strings, as printed by `all`.
func ReprList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(s))
	}
	b.WriteByte(']')
	return b.String()
}

func writeRepr(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("None")
	case string:
		b.WriteString(quote(x))
	case bool:
		if x {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case json.Number:
		b.WriteString(x.String())
	case float64:
		b.WriteString(formatFloat(x))
	case float32:
		b.WriteString(formatFloat(float64(x)))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprintf(b, "%d", x)
	case time.Time:
		b.WriteString(quote(FormatTime(x)))
	case json.RawMessage:
		writeJSON(b, gjson.ParseBytes(x))
	case []string:
		b.WriteString(ReprList(x))
	case *Attributes:
		b.WriteByte('{')
		first := true
		x.Each(func(k string, val any) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(quote(k))
			b.WriteString(": ")
			writeRepr(b, val)
			return true
		})
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", x)
	}
}

func writeJSON(b *strings.Builder, r gjson.Result) {
	switch {
	case r.IsObject():
		b.WriteByte('{')
		first := true
		r.ForEach(func(k, val gjson.Result) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(quote(k.String()))
			b.WriteString(": ")
			writeJSON(b, val)
			return true
		})
		b.WriteByte('}')
	case r.IsArray():
		b.WriteByte('[')
		for i, val := range r.Array() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeJSON(b, val)
		}
		b.WriteByte(']')
	case r.Type == gjson.String:
		b.WriteString(quote(r.String()))
	case r.Type == gjson.True:
		b.WriteString("True")
	case r.Type == gjson.False:
		b.WriteString("False")
	case r.Type == gjson.Null:
		b.WriteString("None")
	default:
		b.WriteString(r.Raw)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// quote prefers single quotes and switches to double quotes only when the
// text holds a single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
