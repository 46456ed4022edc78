// Package codec implements the Corus typed value codec: encoding and
// decoding between on-wire byte fields and typed Go values.
package codec

import "fmt"

// Kind identifies one of the Corus on-wire value encodings.
type Kind uint8

const (
	Byte Kind = iota
	Word
	EWord
	ULong
	EULong
	Float
	Float1
	Float2
	Float3
	Date
	Index
	Index9
	String
	Null2
	Null4
)

// Width returns the fixed on-wire byte width of kind.
func (k Kind) Width() int {
	switch k {
	case Byte:
		return 1
	case Word, Float1, Float2, Float3, Null2:
		return 2
	case EWord:
		return 3
	case ULong, Float, Date, Null4:
		return 4
	case EULong:
		return 5
	case Index:
		return 8
	case Index9:
		return 9
	case String:
		return 8
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case Word:
		return "Word"
	case EWord:
		return "EWord"
	case ULong:
		return "ULong"
	case EULong:
		return "EULong"
	case Float:
		return "Float"
	case Float1:
		return "Float1"
	case Float2:
		return "Float2"
	case Float3:
		return "Float3"
	case Date:
		return "Date"
	case Index:
		return "Index"
	case Index9:
		return "Index9"
	case String:
		return "String"
	case Null2:
		return "Null2"
	case Null4:
		return "Null4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// isInteger reports whether kind decodes into an unsigned integer.
func (k Kind) isInteger() bool {
	switch k {
	case Byte, Word, EWord, ULong, EULong:
		return true
	default:
		return false
	}
}
