// Package parser turns a response payload into typed fields according to a
// supplied descriptor list, per spec.md §4.7.
package parser

import (
	"github.com/pwitab/corus"
	"github.com/pwitab/corus/internal/codec"
	"github.com/shopspring/decimal"
)

// FieldDescriptor is one entry in an ordered parse layout: either a
// parameter descriptor (ID used as the map key by the caller) or a database
// record field (Name used as the key, with optional pulse-weight/divisor
// scaling).
type FieldDescriptor struct {
	Name                string
	Kind                codec.Kind
	ScaledByPulseWeight bool
	Divisor             *int
}

// Field is one decoded, not-yet-scaled result.
type Field struct {
	Name  string
	Value codec.Value
}

// Parse slices payload according to descriptors, in order, and decodes each
// field via internal/codec. It fails with a ProtocolError if the descriptor
// widths don't sum to len(payload).
func Parse(payload []byte, descriptors []FieldDescriptor, opts codec.Options) ([]Field, error) {
	total := 0
	for _, d := range descriptors {
		total += d.Kind.Width()
	}
	if total != len(payload) {
		return nil, corus.NewProtocolErrorf(
			"payload length %d does not match descriptor widths %d", len(payload), total)
	}

	fields := make([]Field, 0, len(descriptors))
	offset := 0
	for _, d := range descriptors {
		width := d.Kind.Width()
		raw := payload[offset : offset+width]
		offset += width

		value, err := codec.Decode(d.Kind, raw, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: d.Name, Value: value})
	}
	return fields, nil
}

// ParseParameters parses a ReadRequest response payload against the given
// parameter descriptors (in request order) and returns a map keyed by
// parameter id, per spec.md §4.6: absent fields are omitted entirely.
func ParseParameters(payload []byte, ids []int, kinds []codec.Kind, opts codec.Options) (map[int]codec.Value, error) {
	if len(ids) != len(kinds) {
		return nil, corus.NewConfigError("ids and kinds must be the same length")
	}
	descriptors := make([]FieldDescriptor, len(ids))
	for i, k := range kinds {
		descriptors[i] = FieldDescriptor{Kind: k}
	}
	fields, err := Parse(payload, descriptors, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[int]codec.Value, len(fields))
	for i, f := range fields {
		if f.Value.Absent {
			continue
		}
		out[ids[i]] = f.Value
	}
	return out, nil
}

// ApplyScaling resolves each database field's final value: absent fields
// pass through unscaled, scaled_by_pulse_weight fields are multiplied by
// pulseWeight, and fields with a divisor are divided by it. All arithmetic
// is exact decimal (spec.md §4.7, §9) — never binary floating point.
func ApplyScaling(fields []Field, descriptors []FieldDescriptor, pulseWeight *decimal.Decimal) (map[string]codec.Value, error) {
	out := make(map[string]codec.Value, len(fields))
	for i, f := range fields {
		d := descriptors[i]
		if f.Value.Absent {
			out[d.Name] = f.Value
			continue
		}
		if !d.ScaledByPulseWeight && d.Divisor == nil {
			out[d.Name] = f.Value
			continue
		}

		result := f.Value.AsDecimal()
		if d.ScaledByPulseWeight {
			if pulseWeight == nil {
				return nil, corus.NewConfigErrorf("field %q requires a pulse weight but none was supplied", d.Name)
			}
			result = result.Mul(*pulseWeight)
		}
		if d.Divisor != nil {
			result = result.Div(decimal.NewFromInt(int64(*d.Divisor)))
		}
		out[d.Name] = codec.NewDecimal(f.Value.Kind, result)
	}
	return out, nil
}
