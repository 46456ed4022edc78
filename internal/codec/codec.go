package codec

import (
	"encoding/binary"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pwitab/corus"
)

// Options configures the endianness knobs spec.md §9 flags as historically
// inconsistent across device firmware revisions.
type Options struct {
	// DateBigEndian selects big-endian packing for Date fields. Corus
	// firmware has shipped both; the default (false) matches the most
	// recent source revision.
	DateBigEndian bool
}

// DefaultOptions are the endianness defaults named in spec.md §9.
var DefaultOptions = Options{DateBigEndian: false}

var hundred = decimal.NewFromInt(100)
var hundredMillion = decimal.NewFromInt(100_000_000)

// allOnes reports whether raw is the width-wide none-sentinel (0xFF...).
func allOnes(raw []byte) bool {
	for _, b := range raw {
		if b != 0xFF {
			return false
		}
	}
	return true
}

func absentBytes(width int) []byte {
	buf := make([]byte, width)
	for i := range buf {
		buf[i] = 0xFF
	}
	return buf
}

func getUintLE(raw []byte) uint64 {
	var v uint64
	for i := len(raw) - 1; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v
}

func putUintLE(v uint64, width int) []byte {
	buf := make([]byte, width)
	for i := 0; i < width; i++ {
		buf[i] = byte(v)
		v >>= 8
	}
	return buf
}

// Decode converts an on-wire field of exactly kind.Width() bytes into a
// typed Value. A field that is entirely 0xFF decodes to the absent value for
// every kind except Null2/Null4, which are always-absent reserved padding.
func Decode(kind Kind, raw []byte, opts Options) (Value, error) {
	if len(raw) != kind.Width() {
		return Value{}, corus.NewProtocolErrorf(
			"%s field must be %d bytes, got %d", kind, kind.Width(), len(raw))
	}

	if kind == Null2 || kind == Null4 {
		return AbsentValue(kind), nil
	}
	if allOnes(raw) {
		return AbsentValue(kind), nil
	}

	if kind.isInteger() {
		return uintValue(kind, getUintLE(raw)), nil
	}

	switch kind {
	case Float:
		bits := binary.LittleEndian.Uint32(raw)
		f := math.Float32frombits(bits)
		return decimalValue(kind, decimal.NewFromFloat32(f)), nil

	case Float1:
		raw16 := int16(binary.LittleEndian.Uint16(raw))
		return decimalValue(kind, decimal.NewFromInt(int64(raw16)).Shift(-2)), nil

	case Float2:
		word := binary.LittleEndian.Uint16(raw)
		mantissa := int64(word & 0x7FFF)
		expBit := int32((word & 0x8000) >> 15)
		value := decimal.NewFromInt(mantissa).Shift(int32(expBit) - 3)
		return decimalValue(kind, value), nil

	case Float3:
		word := binary.LittleEndian.Uint16(raw)
		mantissa := int64(word & 0x3FFF)
		expField := int32((word & 0xC000) >> 14)
		value := decimal.NewFromInt(mantissa).Shift(expField - 2)
		return decimalValue(kind, value), nil

	case Date:
		return timeValue(kind, decodeDate(raw, opts.DateBigEndian)), nil

	case Index:
		intPart := decimal.NewFromInt(int64(binary.LittleEndian.Uint32(raw[0:4])))
		fracPart := decimal.NewFromInt(int64(binary.LittleEndian.Uint32(raw[4:8]))).Shift(-8)
		return decimalValue(kind, intPart.Add(fracPart)), nil

	case Index9:
		intPart := decimal.NewFromInt(int64(getUintLE(raw[0:5])))
		fracPart := decimal.NewFromInt(int64(binary.LittleEndian.Uint32(raw[5:9]))).Shift(-8)
		return decimalValue(kind, intPart.Add(fracPart)), nil

	case String:
		return textValue(kind, strings.TrimRight(string(raw), "\x00")), nil

	default:
		return Value{}, corus.NewDataErrorf("unsupported kind %s", kind)
	}
}

// Encode converts a typed Value into its on-wire bytes for kind. Absent
// values encode to the width-wide none-sentinel, except Null2/Null4 which
// always encode to zero bytes.
func Encode(kind Kind, v Value, opts Options) ([]byte, error) {
	if kind == Null2 || kind == Null4 {
		return make([]byte, kind.Width()), nil
	}
	if v.Absent {
		return absentBytes(kind.Width()), nil
	}

	if kind.isInteger() {
		width := kind.Width()
		max := uint64(1)<<(8*width) - 1
		if v.u > max {
			return nil, corus.NewDataErrorf("%s value %d exceeds %d-bit range", kind, v.u, 8*width)
		}
		return putUintLE(v.u, width), nil
	}

	switch kind {
	case Float:
		f, _ := v.dec.Float64()
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(f)))
		return buf, nil

	case Float1:
		scaled := v.dec.Mul(hundred)
		if !scaled.IsInteger() {
			return nil, corus.NewDataErrorf("Float1 value %s does not scale to an integer at x100", v.dec)
		}
		i := scaled.IntPart()
		if i < math.MinInt16 || i > math.MaxInt16 {
			return nil, corus.NewDataErrorf("Float1 value %s out of signed 16-bit range", v.dec)
		}
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(i)))
		return buf, nil

	case Float2:
		for expBit := int32(0); expBit <= 1; expBit++ {
			mantissaDec := v.dec.Shift(3 - expBit)
			if !mantissaDec.IsInteger() {
				continue
			}
			m := mantissaDec.IntPart()
			if m < 0 || m > 0x7FFF {
				continue
			}
			word := uint16(m) | uint16(expBit)<<15
			buf := make([]byte, 2)
			binary.LittleEndian.PutUint16(buf, word)
			return buf, nil
		}
		return nil, corus.NewDataErrorf("Float2 value %s has no representable exponent in {0,1}", v.dec)

	case Float3:
		for expField := int32(0); expField <= 3; expField++ {
			mantissaDec := v.dec.Shift(2 - expField)
			if !mantissaDec.IsInteger() {
				continue
			}
			m := mantissaDec.IntPart()
			if m < 0 || m > 0x3FFF {
				continue
			}
			word := uint16(m) | uint16(expField)<<14
			buf := make([]byte, 2)
			binary.LittleEndian.PutUint16(buf, word)
			return buf, nil
		}
		return nil, corus.NewDataErrorf("Float3 value %s has no representable exponent in {0,1,2,3}", v.dec)

	case Date:
		return encodeDate(v.t, opts.DateBigEndian), nil

	case Index:
		if v.dec.IsNegative() {
			return nil, corus.NewDataErrorf("Index value %s must be non-negative", v.dec)
		}
		intPart := v.dec.Truncate(0)
		frac := v.dec.Sub(intPart).Mul(hundredMillion).Round(0)
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint32(buf[0:4], uint32(intPart.IntPart()))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(frac.IntPart()))
		return buf, nil

	case Index9:
		if v.dec.IsNegative() {
			return nil, corus.NewDataErrorf("Index9 value %s must be non-negative", v.dec)
		}
		intPart := v.dec.Truncate(0)
		frac := v.dec.Sub(intPart).Mul(hundredMillion).Round(0)
		buf := make([]byte, 9)
		copy(buf[0:5], putUintLE(uint64(intPart.IntPart()), 5))
		binary.LittleEndian.PutUint32(buf[5:9], uint32(frac.IntPart()))
		return buf, nil

	case String:
		if len(v.text) > kind.Width() {
			return nil, corus.NewDataErrorf("String value %q exceeds %d bytes", v.text, kind.Width())
		}
		buf := make([]byte, kind.Width())
		copy(buf, v.text)
		return buf, nil

	default:
		return nil, corus.NewDataErrorf("unsupported kind %s", kind)
	}
}

// NewUint builds a Value for an integer kind.
func NewUint(kind Kind, u uint64) Value { return uintValue(kind, u) }

// NewDecimal builds a Value for a decimal-bearing kind.
func NewDecimal(kind Kind, d decimal.Decimal) Value { return decimalValue(kind, d) }

// NewText builds a Value for the String kind.
func NewText(s string) Value { return textValue(String, s) }

// NewTime builds a Value for the Date kind.
func NewTime(t time.Time) Value { return timeValue(Date, t) }
