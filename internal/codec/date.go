package codec

import (
	"encoding/binary"
	"time"
)

// dateBitfield mirrors the Corus packed-datetime layout (spec §4.2):
//
//	bits  0-5   second
//	bits  6-11  minute
//	bits 12-16  hour
//	bits 17-21  day
//	bits 22-25  month
//	bits 26-31  year-2000
const (
	secondShift = 0
	minuteShift = 6
	hourShift   = 12
	dayShift    = 17
	monthShift  = 22
	yearShift   = 26

	secondMask = 0x3F
	minuteMask = 0x3F
	hourMask   = 0x1F
	dayMask    = 0x1F
	monthMask  = 0x0F
	yearMask   = 0x3F
)

// decodeDate unpacks a 4-byte Corus date field. A field of all zero bytes
// decodes to the zero time.Time (absent date).
func decodeDate(raw []byte, bigEndian bool) time.Time {
	if allZero(raw) {
		return time.Time{}
	}
	var packed uint32
	if bigEndian {
		packed = binary.BigEndian.Uint32(raw)
	} else {
		packed = binary.LittleEndian.Uint32(raw)
	}
	second := int(packed >> secondShift & secondMask)
	minute := int(packed >> minuteShift & minuteMask)
	hour := int(packed >> hourShift & hourMask)
	day := int(packed >> dayShift & dayMask)
	month := int(packed >> monthShift & monthMask)
	year := int(packed>>yearShift&yearMask) + 2000
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

// encodeDate packs a time.Time into the 4-byte Corus date field. The zero
// time.Time encodes to four zero bytes (absent date).
func encodeDate(t time.Time, bigEndian bool) []byte {
	buf := make([]byte, 4)
	if t.IsZero() {
		return buf
	}
	packed := uint32(t.Second())<<secondShift |
		uint32(t.Minute())<<minuteShift |
		uint32(t.Hour())<<hourShift |
		uint32(t.Day())<<dayShift |
		uint32(t.Month())<<monthShift |
		uint32(t.Year()-2000)<<yearShift
	if bigEndian {
		binary.BigEndian.PutUint32(buf, packed)
	} else {
		binary.LittleEndian.PutUint32(buf, packed)
	}
	return buf
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
