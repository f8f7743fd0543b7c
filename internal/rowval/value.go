package rowval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates every value shape the serializer can produce. The set is
// closed: anything a driver hands us is folded into one of these before it
// reaches the JSON encoder.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindText
	KindDate
	KindDateTime
)

// Value is a single column value normalized for JSON encoding.
// Decimals become float64, date-only columns marshal as "2006-01-02",
// timestamps marshal as RFC 3339.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	t    time.Time
}

func Null() Value                { return Value{kind: KindNull} }
func Int(i int64) Value          { return Value{kind: KindInt, i: i} }
func Float(f float64) Value      { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Text(s string) Value        { return Value{kind: KindText, s: s} }
func Date(t time.Time) Value     { return Value{kind: KindDate, t: t} }
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is a SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindText:
		return json.Marshal(v.s)
	case KindDate:
		return json.Marshal(v.t.Format("2006-01-02"))
	case KindDateTime:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		return nil, fmt.Errorf("rowval: invalid kind %d", v.kind)
	}
}

// FromSQL converts a raw driver value into a Value. typeName is the column's
// DatabaseTypeName and drives the cases Go's dynamic type cannot distinguish:
// NUMERIC (arrives as text) and DATE vs TIMESTAMP (both arrive as time.Time).
// An empty typeName falls back to dynamic-type classification, where a
// time.Time is treated as a full timestamp.
func FromSQL(typeName string, raw any) Value {
	if raw == nil {
		return Null()
	}

	switch strings.ToUpper(typeName) {
	case "NUMERIC", "DECIMAL":
		if f, ok := parseFloat(raw); ok {
			return Float(f)
		}
	case "DATE":
		if t, ok := parseTime(raw, "2006-01-02"); ok {
			return Date(t)
		}
	case "TIMESTAMP", "TIMESTAMPTZ", "DATETIME":
		if t, ok := parseTime(raw, time.RFC3339); ok {
			return DateTime(t)
		}
	}

	switch val := raw.(type) {
	case int64:
		return Int(val)
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case float64:
		return Float(val)
	case float32:
		return Float(float64(val))
	case bool:
		return Bool(val)
	case string:
		return Text(val)
	case []byte:
		return Text(string(val))
	case time.Time:
		return DateTime(val)
	default:
		// Closed variant: unknown driver types are folded to text rather
		// than passed through to the encoder.
		return Text(fmt.Sprint(val))
	}
}

func parseFloat(raw any) (float64, bool) {
	switch val := raw.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseTime(raw any, layout string) (time.Time, bool) {
	switch val := raw.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := time.Parse(layout, val)
		return t, err == nil
	case []byte:
		t, err := time.Parse(layout, string(val))
		return t, err == nil
	default:
		return time.Time{}, false
	}
}
