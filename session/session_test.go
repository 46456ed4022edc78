package session

import (
	"testing"
	"time"

	"github.com/pwitab/corus/catalog"
	"github.com/pwitab/corus/internal/codec"
	"github.com/pwitab/corus/internal/crc"
	"github.com/pwitab/corus/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel is a scripted in-memory transport.Channel: Connect/Disconnect
// are no-ops, Recv/RecvUntil drain a pre-seeded buffer, and every Send is
// recorded for assertions.
type fakeChannel struct {
	buf  []byte
	sent [][]byte
}

func (f *fakeChannel) Connect() error    { return nil }
func (f *fakeChannel) Disconnect() error { return nil }

func (f *fakeChannel) Send(data []byte) error {
	cp := append([]byte(nil), data...)
	f.sent = append(f.sent, cp)
	return nil
}

func (f *fakeChannel) Recv(n int) ([]byte, error) {
	if len(f.buf) < n {
		return nil, assert.AnError
	}
	out := f.buf[:n]
	f.buf = f.buf[n:]
	return out, nil
}

func (f *fakeChannel) RecvUntil(start, end byte, timeout time.Duration) ([]byte, error) {
	idx := -1
	for i, b := range f.buf {
		if b == start {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, assert.AnError
	}
	for j := idx; j < len(f.buf); j++ {
		if f.buf[j] == end {
			out := f.buf[idx : j+1]
			f.buf = f.buf[j+1:]
			return out, nil
		}
	}
	return nil, assert.AnError
}

func withCRC(body []byte) []byte {
	c := crc.Compute(body)
	return append(body, c.Bytes()...)
}

func buildHandshakeBuffer() []byte {
	var buf []byte
	buf = append(buf, []byte{0, 0, 0}...)   // wakeup reply
	buf = append(buf, []byte("/IFL1\n")...) // identification line
	buf = append(buf, []byte("PASS12")...)  // 6-byte password challenge
	buf = append(buf, frame.ACK)            // ack after password echo
	return buf
}

func TestConnectRunsHandshake(t *testing.T) {
	ch := &fakeChannel{buf: buildHandshakeBuffer()}
	s := New(ch, Config{}, nil)

	require.NoError(t, s.Connect())
	assert.Equal(t, StateIdle, s.State())

	require.Len(t, ch.sent, 4)
	assert.Equal(t, 200, len(ch.sent[0]))
	assert.Equal(t, []byte("/?!\r\n"), ch.sent[1])
	assert.Equal(t, ackMessage, ch.sent[2])
}

func TestConnectBadWakeupReply(t *testing.T) {
	ch := &fakeChannel{buf: []byte{1, 2, 3}}
	s := New(ch, Config{}, nil)
	err := s.Connect()
	assert.Error(t, err)
}

func TestReadParametersOmitsAbsent(t *testing.T) {
	ch := &fakeChannel{}
	s := New(ch, Config{}, nil)
	s.state = StateIdle

	payload := []byte{15, 0xFF, 0xFF}
	frameBody := append([]byte{frame.SOH, byte(len(payload))}, payload...)
	frameBody = append(frameBody, frame.ETX)
	ch.buf = withCRC(frameBody)

	params := []catalog.Parameter{
		{Name: "compressibility_formula", ID: 15, Kind: codec.Byte},
		{Name: "battery_days", ID: 107, Kind: codec.Word},
	}
	out, err := s.ReadParameters(params)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint64(15), out[15].Uint())
}

func TestWriteParametersRejectsNonWritable(t *testing.T) {
	ch := &fakeChannel{}
	s := New(ch, Config{}, nil)
	s.state = StateIdle

	items := []WriteItem{
		{Parameter: catalog.Parameter{Name: "firmware_version", ID: 0, Kind: codec.String, Writable: false}, Value: codec.NewText("x")},
	}
	err := s.WriteParameters(items)
	assert.Error(t, err)
}

func TestWriteParametersNonAckFails(t *testing.T) {
	ch := &fakeChannel{buf: []byte{frame.NACK}}
	s := New(ch, Config{}, nil)
	s.state = StateIdle

	items := []WriteItem{
		{Parameter: catalog.Parameter{Name: "pulse_weight", ID: 1, Kind: codec.Float, Writable: true}, Value: codec.NewUint(codec.Byte, 0)},
	}
	err := s.WriteParameters(items)
	assert.Error(t, err)
}

func TestOperationsRequireReadyState(t *testing.T) {
	ch := &fakeChannel{}
	s := New(ch, Config{}, nil)
	_, err := s.ReadParameters(nil)
	assert.Error(t, err)
}
