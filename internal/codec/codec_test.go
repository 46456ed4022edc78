package codec

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerRoundTrip(t *testing.T) {
	cases := []struct {
		kind Kind
		val  uint64
	}{
		{Byte, 0x42},
		{Word, 0x1234},
		{EWord, 0x123456},
		{ULong, 0x12345678},
		{EULong, 0x123456789A},
	}
	for _, c := range cases {
		raw, err := Encode(c.kind, NewUint(c.kind, c.val), DefaultOptions)
		require.NoError(t, err)
		assert.Len(t, raw, c.kind.Width())
		decoded, err := Decode(c.kind, raw, DefaultOptions)
		require.NoError(t, err)
		assert.False(t, decoded.Absent)
		assert.Equal(t, c.val, decoded.Uint())
	}
}

func TestNoneSentinel(t *testing.T) {
	for _, kind := range []Kind{Byte, Word, EWord, ULong, EULong, Float, Float1, Float2, Float3, Date, Index, Index9, String} {
		raw := absentBytes(kind.Width())
		v, err := Decode(kind, raw, DefaultOptions)
		require.NoError(t, err)
		assert.True(t, v.Absent, "kind %s should decode 0xFF.. as absent", kind)

		encoded, err := Encode(kind, AbsentValue(kind), DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, raw, encoded)
	}
}

func TestNullKindsAlwaysAbsent(t *testing.T) {
	v, err := Decode(Null2, []byte{0x00, 0x00}, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, v.Absent)

	v4, err := Decode(Null4, []byte{0x01, 0x02, 0x03, 0x04}, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, v4.Absent)

	raw, err := Encode(Null2, Value{}, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, raw)
}

func TestIndexDecode(t *testing.T) {
	raw := []byte{0x14, 0x2e, 0x00, 0x00, 0x80, 0x1d, 0x2c, 0x04}
	v, err := Decode(Index, raw, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("11796.7").Equal(v.Decimal()))
}

func TestIndex9Decode(t *testing.T) {
	raw := []byte{0x14, 0x2e, 0x00, 0x00, 0x00, 0x80, 0x1d, 0x2c, 0x04}
	v, err := Decode(Index9, raw, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("11796.7").Equal(v.Decimal()))
}

func TestFloat2RoundTrip(t *testing.T) {
	v := decimal.RequireFromString("1.5")
	raw, err := Encode(Float2, NewDecimal(Float2, v), DefaultOptions)
	require.NoError(t, err)
	decoded, err := Decode(Float2, raw, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded.Decimal()))
}

func TestFloat3RoundTrip(t *testing.T) {
	v := decimal.RequireFromString("0.42")
	raw, err := Encode(Float3, NewDecimal(Float3, v), DefaultOptions)
	require.NoError(t, err)
	decoded, err := Decode(Float3, raw, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded.Decimal()))
}

func TestFloat2RejectsUnrepresentable(t *testing.T) {
	// Requires more than 15 bits of mantissa at every valid exponent.
	v := decimal.RequireFromString("123456789")
	_, err := Encode(Float2, NewDecimal(Float2, v), DefaultOptions)
	assert.Error(t, err)
}

func TestDateRoundTrip(t *testing.T) {
	in := time.Date(2024, time.March, 14, 13, 52, 9, 0, time.UTC)
	raw, err := Encode(Date, NewTime(in), DefaultOptions)
	require.NoError(t, err)
	decoded, err := Decode(Date, raw, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, decoded.Time().Equal(in))
}

func TestDateAbsentIsZeroBytes(t *testing.T) {
	raw, err := Encode(Date, NewTime(time.Time{}), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, raw)
	decoded, err := Decode(Date, raw, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, decoded.Time().IsZero())
}

func TestStringRoundTrip(t *testing.T) {
	raw, err := Encode(String, NewText("v1.2"), DefaultOptions)
	require.NoError(t, err)
	assert.Len(t, raw, 8)
	decoded, err := Decode(String, raw, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "v1.2", decoded.Text())
}

func TestWrongLengthIsProtocolError(t *testing.T) {
	_, err := Decode(Word, []byte{0x01}, DefaultOptions)
	assert.Error(t, err)
}

func TestIntegerOverflowIsDataError(t *testing.T) {
	_, err := Encode(Byte, NewUint(Byte, 256), DefaultOptions)
	assert.Error(t, err)
}
