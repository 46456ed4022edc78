// Package session implements the Corus session state machine — wakeup,
// sign-on, password exchange, break — and the public operations built on
// top of an authenticated session (spec.md §4.6).
package session

import (
	"bytes"
	"time"

	"github.com/pwitab/corus"
	"github.com/pwitab/corus/catalog"
	"github.com/pwitab/corus/internal/codec"
	"github.com/pwitab/corus/internal/database"
	"github.com/pwitab/corus/internal/frame"
	"github.com/pwitab/corus/internal/parser"
	"github.com/pwitab/corus/transport"
	log "github.com/sirupsen/logrus"
)

var signOnMessage = []byte("/?!\r\n")
var ackMessage = []byte{0x06, 0x30, 0x37, 0x36, 0x0D, 0x0A}
var breakMessage = []byte{0x01, 0x42, 0x30, 0x03, 0x21, 0x31}

// Session drives one Corus handshake and its subsequent operations over a
// single transport.Channel. A Session is not safe for concurrent use — it
// mirrors the teacher's non-thread-safe, one-exclusive-owner SDOClient
// contract (spec.md §5).
type Session struct {
	channel transport.Channel
	config  Config
	state   State
	logger  *log.Logger
}

// New builds a Session around an already-constructed transport.Channel. A
// nil logger falls back to logrus.StandardLogger().
func New(channel transport.Channel, config Config, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Session{channel: channel, config: config, state: StateDisconnected, logger: logger}
}

// NewTCP is a convenience constructor building a transport.TCPChannel from
// config.Address/config.Timeout.
func NewTCP(config Config, logger *log.Logger) *Session {
	ch := transport.NewTCPChannel(config.Address, config.timeout())
	return New(ch, config, logger)
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

func (s *Session) frameOptions() frame.Options {
	return frame.Options{
		Codec:             codec.Options{DateBigEndian: s.config.DateBigEndian},
		ReadSizeBigEndian: s.config.ReadSizeBigEndian,
	}
}

// Connect runs the full handshake: transport connect, wakeup, sign-on,
// password exchange. On return the session is Idle and ready for
// ReadParameters/WriteParameters/ReadDatabase.
func (s *Session) Connect() error {
	if err := s.channel.Connect(); err != nil {
		return err
	}
	if err := s.wakeup(); err != nil {
		return err
	}
	if err := s.signOn(); err != nil {
		return err
	}
	s.state = StateIdle
	return nil
}

// wakeup sends the 200 leading zero bytes the hardware requires to wake its
// interface and confirms the device replies with three zero bytes
// (spec.md §4.6).
func (s *Session) wakeup() error {
	s.logger.Debug("[SESSION] sending wakeup sequence")
	if err := s.channel.Send(make([]byte, 200)); err != nil {
		return err
	}
	reply, err := s.channel.Recv(3)
	if err != nil {
		return err
	}
	if !bytes.Equal(reply, []byte{0, 0, 0}) {
		return corus.NewProtocolErrorf("wakeup: expected 3 zero bytes, got % x", reply)
	}
	s.state = StateAwake
	s.logger.Debug("[SESSION] device awake")
	return nil
}

// signOn runs the sign-on/ACK/password-echo sequence (spec.md §4.6, §6).
func (s *Session) signOn() error {
	if err := s.channel.Send(signOnMessage); err != nil {
		return err
	}
	ident, err := s.channel.RecvUntil('/', '\n', s.config.timeout())
	if err != nil {
		return err
	}
	if len(ident) == 0 || ident[0] != '/' || ident[len(ident)-1] != '\n' {
		return corus.NewProtocolErrorf("sign-on: malformed identification line %q", ident)
	}
	s.logger.Debugf("[SESSION] identification: %q", ident)
	s.state = StateSignedOn

	if err := s.channel.Send(ackMessage); err != nil {
		return err
	}

	passMsg, err := s.channel.Recv(6)
	if err != nil {
		return err
	}
	if err := s.channel.Send(passMsg); err != nil {
		return err
	}
	ack, err := s.channel.Recv(1)
	if err != nil {
		return err
	}
	if ack[0] != frame.ACK {
		return corus.NewProtocolErrorf("sign-on: not ACKed, got 0x%02x", ack[0])
	}
	s.state = StateAuthenticated
	s.logger.Debug("[SESSION] authenticated")
	return nil
}

// Break sends the precomputed BREAK frame and disconnects the transport
// (spec.md §4.6). Any error from the transport is still reported, but the
// session is considered torn down regardless.
func (s *Session) Break() error {
	sendErr := s.channel.Send(breakMessage)
	discErr := s.channel.Disconnect()
	s.state = StateDisconnected
	if sendErr != nil {
		return sendErr
	}
	return discErr
}

func (s *Session) requireReady() error {
	if !s.state.ready() {
		return corus.NewProtocolErrorf("session not ready: state is %s", s.state)
	}
	return nil
}

// ReadParameters reads the given parameters in one request and returns a
// map keyed by parameter id. Parameters whose value is the none-sentinel
// are omitted (spec.md §4.6).
func (s *Session) ReadParameters(params []catalog.Parameter) (map[int]codec.Value, error) {
	if err := s.requireReady(); err != nil {
		return nil, err
	}
	ids := make([]int, len(params))
	kinds := make([]codec.Kind, len(params))
	for i, p := range params {
		ids[i] = p.ID
		kinds[i] = p.Kind
	}

	req, err := frame.BuildReadRequest(ids)
	if err != nil {
		return nil, err
	}
	if err := s.channel.Send(req); err != nil {
		return nil, err
	}

	f, err := frame.Read(s.channel)
	if err != nil {
		return nil, err
	}
	if !f.CRCValid {
		return nil, corus.NewProtocolError("CRC mismatch on parameter read response")
	}

	s.state = StateIdle
	return parser.ParseParameters(f.Payload, ids, kinds, s.frameOptions().Codec)
}

// WriteItem is one parameter/value pair for WriteParameters.
type WriteItem struct {
	Parameter catalog.Parameter
	Value     codec.Value
}

// WriteParameters builds and sends a WriteRequest for the given items,
// requiring every target parameter to be writable, and fails unless the
// device replies with a single ACK byte (spec.md §4.6, §7).
func (s *Session) WriteParameters(items []WriteItem) error {
	if err := s.requireReady(); err != nil {
		return err
	}

	frameItems := make([]frame.WriteItem, len(items))
	for i, it := range items {
		if !it.Parameter.Writable {
			return corus.NewConfigErrorf("parameter %q (id %d) is not writable", it.Parameter.Name, it.Parameter.ID)
		}
		frameItems[i] = frame.WriteItem{ID: it.Parameter.ID, Kind: it.Parameter.Kind, Value: it.Value}
	}

	req, err := frame.BuildWriteRequest(frameItems, s.frameOptions())
	if err != nil {
		return err
	}
	if err := s.channel.Send(req); err != nil {
		return err
	}

	ack, err := s.channel.Recv(1)
	if err != nil {
		return err
	}
	if ack[0] != frame.ACK {
		return corus.NewCommunicationError("write request was not ACKed by device")
	}
	s.state = StateIdle
	return nil
}

// ReadDatabase requests database's records in [start, stop], runs the
// multi-frame transfer, and parses each record against the catalog layout
// selected by the transfer's reported record size (spec.md §4.6, §4.7).
func (s *Session) ReadDatabase(name string, db frame.Database, start, stop time.Time) ([]map[string]codec.Value, error) {
	if err := s.requireReady(); err != nil {
		return nil, err
	}

	req, err := frame.BuildReadDatabaseRequest(db, start, stop, s.frameOptions())
	if err != nil {
		return nil, err
	}
	if err := s.channel.Send(req); err != nil {
		return nil, err
	}

	records, err := database.Transfer(s.channel, s.logger)
	if err != nil {
		return nil, err
	}
	s.state = StateIdle

	if len(records) == 0 {
		return nil, nil
	}

	layout, err := s.config.catalog().LayoutByRecordSize(name, len(records[0]))
	if err != nil {
		return nil, err
	}
	descriptors := layoutToDescriptors(layout)

	out := make([]map[string]codec.Value, len(records))
	for i, record := range records {
		fields, err := parser.Parse(record, descriptors, s.frameOptions().Codec)
		if err != nil {
			return nil, err
		}
		scaled, err := parser.ApplyScaling(fields, descriptors, s.config.InputPulseWeight)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}

func layoutToDescriptors(layout catalog.RecordLayout) []parser.FieldDescriptor {
	out := make([]parser.FieldDescriptor, len(layout))
	for i, f := range layout {
		out[i] = parser.FieldDescriptor{
			Name:                f.Name,
			Kind:                f.Kind,
			ScaledByPulseWeight: f.Scaled,
			Divisor:             f.Divisor,
		}
	}
	return out
}
