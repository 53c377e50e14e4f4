package schema

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Kind discriminates the closed set of value shapes crossing the engine
// boundary. Consumers switch on Kind exhaustively.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindJSON
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindJSON:
		return "json"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is the tagged union for a single cell. Exactly one of the payload
// fields is meaningful, selected by Kind. KindJSON keeps the serialized
// document in Str so it round-trips without reinterpretation.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Bytes []byte
	Time  time.Time
}

func Null() Value                { return Value{Kind: KindNull} }
func BoolValue(v bool) Value     { return Value{Kind: KindBool, Bool: v} }
func IntValue(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }
func BytesValue(v []byte) Value  { return Value{Kind: KindBytes, Bytes: v} }
func JSONValue(v string) Value   { return Value{Kind: KindJSON, Str: v} }
func TimeValue(v time.Time) Value {
	return Value{Kind: KindTime, Time: v}
}

// IsNull reports whether the value carries no payload.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Driver converts the value into something database/sql drivers accept.
func (v Value) Driver() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString, KindJSON:
		return v.Str
	case KindBytes:
		return v.Bytes
	case KindTime:
		return v.Time
	default:
		return nil
	}
}

// FromDriver wraps a value scanned from database/sql into the tagged union.
// The field's semantic type disambiguates text payloads (json vs string).
func FromDriver(raw any, t SemanticType) Value {
	if raw == nil {
		return Null()
	}
	switch x := raw.(type) {
	case bool:
		return BoolValue(x)
	case int64:
		if t == TypeBoolean {
			return BoolValue(x != 0)
		}
		return IntValue(x)
	case int:
		return IntValue(int64(x))
	case float64:
		return FloatValue(x)
	case string:
		if t == TypeJSON {
			return JSONValue(x)
		}
		return StringValue(x)
	case []byte:
		// database/sql hands text columns back as []byte on several drivers.
		switch t {
		case TypeBinary:
			b := make([]byte, len(x))
			copy(b, x)
			return BytesValue(b)
		case TypeJSON:
			return JSONValue(string(x))
		default:
			return StringValue(string(x))
		}
	case time.Time:
		return TimeValue(x)
	case sql.RawBytes:
		b := make([]byte, len(x))
		copy(b, x)
		return BytesValue(b)
	case json.RawMessage:
		return JSONValue(string(x))
	default:
		return StringValue(fmt.Sprintf("%v", x))
	}
}
