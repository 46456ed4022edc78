package parser

import (
	"testing"

	"github.com/pwitab/corus/internal/codec"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParametersOmitsAbsent(t *testing.T) {
	payload := append([]byte{0x0F}, []byte{0xFF, 0xFF}...)
	out, err := ParseParameters(payload, []int{15, 107}, []codec.Kind{codec.Byte, codec.Word}, codec.DefaultOptions)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint64(15), out[15].Uint())
	_, ok := out[107]
	assert.False(t, ok)
}

func TestParseWrongLength(t *testing.T) {
	_, err := ParseParameters([]byte{0x01}, []int{1}, []codec.Kind{codec.Word}, codec.DefaultOptions)
	assert.Error(t, err)
}

func TestApplyScalingPulseWeight(t *testing.T) {
	descriptors := []FieldDescriptor{
		{Name: "consumption_unconverted", Kind: codec.Word, ScaledByPulseWeight: true},
		{Name: "status", Kind: codec.Byte},
	}
	payload := []byte{0x64, 0x00, 0x01} // 100 counts, status=1
	fields, err := Parse(payload, descriptors, codec.DefaultOptions)
	require.NoError(t, err)

	pulseWeight := decimal.NewFromFloat(0.01)
	out, err := ApplyScaling(fields, descriptors, &pulseWeight)
	require.NoError(t, err)
	assert.True(t, out["consumption_unconverted"].AsDecimal().Equal(decimal.NewFromFloat(1.0)))
	assert.Equal(t, uint64(1), out["status"].Uint())
}

func TestApplyScalingMissingPulseWeight(t *testing.T) {
	descriptors := []FieldDescriptor{
		{Name: "consumption_unconverted", Kind: codec.Word, ScaledByPulseWeight: true},
	}
	fields := []Field{{Name: "consumption_unconverted", Value: codec.NewUint(codec.Word, 100)}}
	_, err := ApplyScaling(fields, descriptors, nil)
	assert.Error(t, err)
}

func TestApplyScalingAbsentPassesThrough(t *testing.T) {
	descriptors := []FieldDescriptor{{Name: "reserved", Kind: codec.Null2}}
	fields := []Field{{Name: "reserved", Value: codec.AbsentValue(codec.Null2)}}
	out, err := ApplyScaling(fields, descriptors, nil)
	require.NoError(t, err)
	assert.True(t, out["reserved"].Absent)
}
