package main

import (
	"fmt"
	"strconv"

	"github.com/pwitab/corus/catalog"
	"github.com/pwitab/corus/internal/codec"
	"github.com/shopspring/decimal"
)

// parseValueForKind interprets a command-line string per the target
// parameter's kind: integers for integer kinds, decimals for the
// fixed-point kinds, and a literal string for String. Date, Null2 and Null4
// parameters are rejected with an error.
func parseValueForKind(p catalog.Parameter, raw string) (codec.Value, error) {
	switch p.Kind {
	case codec.Byte, codec.Word, codec.EWord, codec.ULong, codec.EULong:
		u, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return codec.Value{}, fmt.Errorf("parameter %q expects an integer: %w", p.Name, err)
		}
		return codec.NewUint(p.Kind, u), nil
	case codec.Float, codec.Float1, codec.Float2, codec.Float3, codec.Index, codec.Index9:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return codec.Value{}, fmt.Errorf("parameter %q expects a decimal: %w", p.Name, err)
		}
		return codec.NewDecimal(p.Kind, d), nil
	case codec.String:
		return codec.NewText(raw), nil
	default:
		return codec.Value{}, fmt.Errorf("parameter %q (kind %s) is not writable from the command line", p.Name, p.Kind)
	}
}
