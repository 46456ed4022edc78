package codec

import (
	"time"

	"github.com/shopspring/decimal"
)

// Value is the decoded form of a Corus field. Exactly one of the accessor
// groups is meaningful, selected by Kind; Absent means the field carried the
// Corus none-sentinel (all-ones bytes) or was a reserved Null2/Null4 field.
// A database field scaled by internal/parser keeps its integer Kind but
// carries its result in the decimal group (Decimal, AsDecimal).
type Value struct {
	Kind   Kind
	Absent bool

	u    uint64
	dec  decimal.Decimal
	text string
	t    time.Time
}

// Uint returns the decoded value of an integer kind (Byte/Word/EWord/
// ULong/EULong).
func (v Value) Uint() uint64 { return v.u }

// Decimal returns the decoded value of a decimal-bearing kind (Float,
// Float1, Float2, Float3, Index, Index9).
func (v Value) Decimal() decimal.Decimal { return v.dec }

// Text returns the decoded value of a String kind.
func (v Value) Text() string { return v.text }

// Time returns the decoded value of a Date kind.
func (v Value) Time() time.Time { return v.t }

// AsDecimal returns the value as a decimal.Decimal regardless of whether the
// underlying kind decoded to an integer or a decimal, so callers that apply
// pulse-weight scaling or a divisor don't need to special-case integer
// kinds (Word/EWord/ULong/EULong raw pulse counts). An integer-kind value
// that carries a decimal (a field scaled by internal/parser) returns that
// decimal.
func (v Value) AsDecimal() decimal.Decimal {
	if v.Kind.isInteger() && v.dec.IsZero() {
		return decimal.NewFromInt(int64(v.u))
	}
	return v.dec
}

func uintValue(kind Kind, u uint64) Value {
	return Value{Kind: kind, u: u}
}

func decimalValue(kind Kind, d decimal.Decimal) Value {
	return Value{Kind: kind, dec: d}
}

func textValue(kind Kind, s string) Value {
	return Value{Kind: kind, text: s}
}

func timeValue(kind Kind, t time.Time) Value {
	return Value{Kind: kind, t: t}
}

// AbsentValue returns the absent representation of kind.
func AbsentValue(kind Kind) Value {
	return Value{Kind: kind, Absent: true}
}
