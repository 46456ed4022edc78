package frame

import (
	"time"

	"github.com/pwitab/corus"
	"github.com/pwitab/corus/internal/codec"
	"github.com/pwitab/corus/internal/crc"
)

// Database identifies which periodic log store a ReadDatabaseRequest targets.
type Database uint8

const (
	Interval Database = 0
	Hourly   Database = 1
	Daily    Database = 2
	Monthly  Database = 3
	Event    Database = 4
	Parameter Database = 5
)

// Options configures the historically ambiguous encoding knobs spec.md §9
// flags. ReadSizeBigEndian only affects documentation intent: the size
// field is a single byte, so big- and little-endian encodings are
// byte-identical; the knob is kept so callers can record and assert which
// convention a given firmware revision is documented to use.
type Options struct {
	Codec             codec.Options
	ReadSizeBigEndian bool
}

// DefaultOptions match spec.md §9's stated defaults: little-endian Date,
// big-endian ReadRequest size byte.
var DefaultOptions = Options{Codec: codec.DefaultOptions, ReadSizeBigEndian: true}

// encodeParameterID encodes a parameter id per spec.md §3: ids below 239
// occupy one big-endian byte; ids at or above 239 occupy two big-endian
// bytes with the high nibble forced to 0xF.
func encodeParameterID(id int) ([]byte, error) {
	if id < 0 || id > 0xFFFF {
		return nil, corus.NewConfigErrorf("parameter id %d out of range 0..65535", id)
	}
	if id < 239 {
		return []byte{byte(id)}, nil
	}
	wide := uint16(id) | 0xF000
	return []byte{byte(wide >> 8), byte(wide)}, nil
}

func withCRC(body []byte) []byte {
	c := crc.Compute(body)
	return append(body, c.Bytes()...)
}

// BuildReadRequest builds the wire bytes for a Read request over the given
// parameter ids, in the order supplied.
func BuildReadRequest(ids []int) ([]byte, error) {
	var idBytes []byte
	for _, id := range ids {
		enc, err := encodeParameterID(id)
		if err != nil {
			return nil, err
		}
		idBytes = append(idBytes, enc...)
	}
	if len(idBytes) > 0xFF {
		return nil, corus.NewConfigErrorf("read request payload too large (%d bytes)", len(idBytes))
	}
	body := make([]byte, 0, 3+len(idBytes)+1)
	body = append(body, SOH, cmdRead, byte(len(idBytes)))
	body = append(body, idBytes...)
	body = append(body, ETX)
	return withCRC(body), nil
}

// WriteItem is one id/value pair to encode into a Write request.
type WriteItem struct {
	ID    int
	Kind  codec.Kind
	Value codec.Value
}

// BuildWriteRequest builds the wire bytes for a Write request. size_byte is
// little-endian per spec.md §4.3 (unconditionally; this field is not one of
// the ambiguous knobs).
func BuildWriteRequest(items []WriteItem, opts Options) ([]byte, error) {
	var itemBytes []byte
	for _, item := range items {
		idEnc, err := encodeParameterID(item.ID)
		if err != nil {
			return nil, err
		}
		valueEnc, err := codec.Encode(item.Kind, item.Value, opts.Codec)
		if err != nil {
			return nil, err
		}
		itemBytes = append(itemBytes, idEnc...)
		itemBytes = append(itemBytes, valueEnc...)
	}
	if len(itemBytes) > 0xFF {
		return nil, corus.NewConfigErrorf("write request payload too large (%d bytes)", len(itemBytes))
	}
	body := make([]byte, 0, 3+len(itemBytes)+1)
	body = append(body, SOH, cmdWrite, byte(len(itemBytes)))
	body = append(body, itemBytes...)
	body = append(body, ETX)
	return withCRC(body), nil
}

// optionsBitmask requests all database fields; session persistence and
// count-records are permanently disabled by design (spec.md §4.3, §9).
var optionsBitmask = []byte{0xF9, 0xFF, 0xFF, 0xFF}

// BuildReadDatabaseRequest builds the wire bytes for a ReadDatabase request
// covering [start, stop]. A zero time.Time encodes as the Corus absent-date
// sentinel (four zero bytes), requesting an open-ended bound.
func BuildReadDatabaseRequest(db Database, start, stop time.Time, opts Options) ([]byte, error) {
	dbByte := byte(db) // session persistence (bit 7) and count records (bit 4) always 0.
	startBytes, err := codec.Encode(codec.Date, codec.NewTime(start), opts.Codec)
	if err != nil {
		return nil, err
	}
	stopBytes, err := codec.Encode(codec.Date, codec.NewTime(stop), opts.Codec)
	if err != nil {
		return nil, err
	}
	body := make([]byte, 0, 3+1+4+4+4+1)
	body = append(body, SOH, cmdReadDatabase, 0x0D, dbByte)
	body = append(body, optionsBitmask...)
	body = append(body, startBytes...)
	body = append(body, stopBytes...)
	body = append(body, ETX)
	return withCRC(body), nil
}
