package frame

import (
	"encoding/binary"

	"github.com/pwitab/corus"
	"github.com/pwitab/corus/internal/crc"
)

// Frame is one decoded SOH..ETX..CRC frame (spec.md §4.4).
type Frame struct {
	// Payload is the bytes between the length byte and ETX, exclusive.
	Payload []byte
	// CRCValid reports whether the trailing CRC matched the frame.
	// Callers decide whether a mismatch is retryable (database transfer)
	// or fatal (single-frame request/response).
	CRCValid bool
}

// Read reads one frame from r: SOH, a one-byte big-endian length, that many
// payload bytes, ETX, and a two-byte little-endian CRC. A bad SOH or ETX is
// always fatal; a CRC mismatch is reported via Frame.CRCValid rather than as
// an error so the caller can apply its own retry policy.
func Read(r Receiver) (Frame, error) {
	soh, err := r.Recv(1)
	if err != nil {
		return Frame{}, corus.WrapCommunicationError("reading SOH", err)
	}
	if soh[0] != SOH {
		return Frame{}, corus.NewProtocolErrorf("bad SOH: got 0x%02x", soh[0])
	}

	lengthByte, err := r.Recv(1)
	if err != nil {
		return Frame{}, corus.WrapCommunicationError("reading frame length", err)
	}
	length := int(lengthByte[0])

	payload, err := r.Recv(length)
	if err != nil {
		return Frame{}, corus.WrapCommunicationError("reading frame payload", err)
	}

	etx, err := r.Recv(1)
	if err != nil {
		return Frame{}, corus.WrapCommunicationError("reading ETX", err)
	}
	if etx[0] != ETX {
		return Frame{}, corus.NewProtocolErrorf("bad ETX: got 0x%02x", etx[0])
	}

	tail, err := r.Recv(2)
	if err != nil {
		return Frame{}, corus.WrapCommunicationError("reading CRC", err)
	}

	frameBody := make([]byte, 0, 3+length+1)
	frameBody = append(frameBody, soh[0], lengthByte[0])
	frameBody = append(frameBody, payload...)
	frameBody = append(frameBody, etx[0])

	return Frame{Payload: payload, CRCValid: crc.Valid(frameBody, tail)}, nil
}

// DatabaseHeader is the two-byte little-endian header prefixing every
// database transfer frame's payload (spec.md §4.5, §6).
type DatabaseHeader struct {
	FrameNumber uint16
	IsLast      bool
}

// ParseDatabaseHeader extracts the frame header from the first two bytes of
// a database frame's payload.
func ParseDatabaseHeader(payload []byte) (DatabaseHeader, error) {
	if len(payload) < 2 {
		return DatabaseHeader{}, corus.NewProtocolErrorf("database frame payload too short for header: %d bytes", len(payload))
	}
	header := binary.LittleEndian.Uint16(payload[0:2])
	return DatabaseHeader{
		FrameNumber: header & 0x7FFF,
		IsLast:      header&0x8000 != 0,
	}, nil
}
