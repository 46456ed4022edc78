package database

import (
	"testing"

	"github.com/pwitab/corus/internal/crc"
	"github.com/pwitab/corus/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel feeds a queue of pre-built response frames and records the
// control bytes sent back by the engine.
type fakeChannel struct {
	frames [][]byte
	cursor []byte
	sent   [][]byte
}

func (f *fakeChannel) Recv(n int) ([]byte, error) {
	for len(f.cursor) < n {
		if len(f.frames) == 0 {
			return nil, assert.AnError
		}
		f.cursor = append(f.cursor, f.frames[0]...)
		f.frames = f.frames[1:]
	}
	out := f.cursor[:n]
	f.cursor = f.cursor[n:]
	return out, nil
}

func (f *fakeChannel) Send(data []byte) error {
	cp := append([]byte(nil), data...)
	f.sent = append(f.sent, cp)
	return nil
}

func buildFrame(header uint16, body []byte, corruptCRC bool) []byte {
	payload := []byte{byte(header), byte(header >> 8)}
	payload = append(payload, body...)
	wire := append([]byte{frame.SOH, byte(len(payload))}, payload...)
	wire = append(wire, frame.ETX)
	c := crc.Compute(wire)
	tail := c.Bytes()
	if corruptCRC {
		tail[0] ^= 0xFF
	}
	return append(wire, tail...)
}

func TestTransferTwoFrameHappyPath(t *testing.T) {
	recordSize := byte(4)
	first := buildFrame(0, []byte{recordSize, 0xAA, 0xBB, 0xCC, 0xDD}, false)
	last := buildFrame(1|0x8000, []byte{0x11, 0x22, 0x33, 0x44}, false)

	ch := &fakeChannel{frames: [][]byte{first, last}}
	records, err := Transfer(ch, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, records[0])
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, records[1])

	require.Len(t, ch.sent, 1)
	assert.Equal(t, []byte{frame.ACK}, ch.sent[0])
}

func TestTransferOutOfOrderFrame(t *testing.T) {
	first := buildFrame(0, []byte{4, 1, 2, 3, 4}, false)
	skipped := buildFrame(2|0x8000, []byte{5, 6, 7, 8}, false)

	ch := &fakeChannel{frames: [][]byte{first, skipped}}
	_, err := Transfer(ch, nil)
	assert.Error(t, err)
}

func TestTransferCRCRetryThenSucceeds(t *testing.T) {
	bad := buildFrame(0, []byte{4, 1, 2, 3, 4}, true)
	good := buildFrame(0|0x8000, []byte{4, 1, 2, 3, 4}, false)

	ch := &fakeChannel{frames: [][]byte{bad, good}}
	records, err := Transfer(ch, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []byte{frame.NACK}, ch.sent[0])
}

func TestTransferExceedsMaxRetries(t *testing.T) {
	bad := buildFrame(0, []byte{4, 1, 2, 3, 4}, true)
	ch := &fakeChannel{frames: [][]byte{bad, bad, bad, bad, bad}}
	_, err := Transfer(ch, nil)
	assert.Error(t, err)
}

func TestTransferEmptyRecordSize(t *testing.T) {
	first := buildFrame(0|0x8000, []byte{0}, false)
	ch := &fakeChannel{frames: [][]byte{first}}
	_, err := Transfer(ch, nil)
	assert.Error(t, err)
}
