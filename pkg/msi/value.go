package msi

import (
	"strconv"
	"time"
)

// Kind identifies the underlying scalar type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindBytes
	KindTime
)

// Value is a variant scalar produced at the driver boundary. Result columns
// arrive as heterogeneously typed values; keeping them as a tagged union
// until normalization keeps the string-coercion policy in one place.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	raw  []byte
	t    time.Time
}

// Row is one result row: an ordered sequence of column values.
type Row []Value

// NullValue returns the NULL scalar.
func NullValue() Value { return Value{kind: KindNull} }

// IntValue wraps a signed integer scalar.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue wraps a floating-point scalar.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// BoolValue wraps a boolean scalar.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringValue wraps a text scalar.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BytesValue wraps a raw byte scalar (how the MySQL text protocol delivers
// most column values).
func BytesValue(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// TimeValue wraps a temporal scalar.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind reports the scalar type carried by the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the NULL scalar.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the value for normalized result rows. NULL renders as
// "None" to keep row output stable for existing consumers of this tool's
// predecessor; times use the MySQL literal format.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindBytes:
		return string(v.raw)
	case KindTime:
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// NormalizeRow coerces every column of a row to its string representation.
func NormalizeRow(r Row) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}

// NormalizeRows coerces a full result set to string rows. The result is
// never nil: zero input rows yield an empty slice.
func NormalizeRows(rows []Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, NormalizeRow(r))
	}
	return out
}
