package transport

import (
	"io"
	"net"
	"time"

	"github.com/pwitab/corus"
	log "github.com/sirupsen/logrus"
)

// TCPChannel tunnels the Corus byte stream over a plain TCP connection,
// grounded on original_source/iflag/transport.py's TcpTransport.
type TCPChannel struct {
	Address string
	Timeout time.Duration
	Logger  *log.Logger

	conn net.Conn
}

var _ Channel = (*TCPChannel)(nil)

// NewTCPChannel builds a TCPChannel for address ("host:port"). A zero
// timeout defaults to 30s, matching the original transport's default.
func NewTCPChannel(address string, timeout time.Duration) *TCPChannel {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &TCPChannel{Address: address, Timeout: timeout}
}

func (c *TCPChannel) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.StandardLogger()
}

// Connect dials the device's TCP endpoint.
func (c *TCPChannel) Connect() error {
	c.logger().Infof("[TCP] connecting to %s", c.Address)
	conn, err := net.DialTimeout("tcp", c.Address, c.Timeout)
	if err != nil {
		return corus.WrapCommunicationError("dialing "+c.Address, err)
	}
	c.conn = conn
	return nil
}

// Disconnect closes the connection.
func (c *TCPChannel) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.logger().Infof("[TCP] closed connection to %s", c.Address)
	if err != nil {
		return corus.WrapCommunicationError("closing connection", err)
	}
	return nil
}

// Send writes data in full, bounded by the channel's timeout.
func (c *TCPChannel) Send(data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.Timeout)); err != nil {
		return corus.WrapCommunicationError("setting write deadline", err)
	}
	if _, err := c.conn.Write(data); err != nil {
		return corus.WrapCommunicationError("writing to "+c.Address, err)
	}
	c.logger().Debugf("[TCP] sent % x", data)
	return nil
}

// Recv reads exactly n bytes, bounded by the channel's timeout.
func (c *TCPChannel) Recv(n int) ([]byte, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.Timeout)); err != nil {
		return nil, corus.WrapCommunicationError("setting read deadline", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.conn, buf); err != nil {
		return nil, corus.WrapCommunicationError("reading from "+c.Address, err)
	}
	c.logger().Debugf("[TCP] received % x", buf)
	return buf, nil
}

// RecvUntil reads byte-by-byte until start has been seen, then accumulates
// through end, mirroring original_source/iflag/transport.py's simple_read.
// The overall call is bounded by timeout, not a per-byte deadline.
func (c *TCPChannel) RecvUntil(start, end byte, timeout time.Duration) ([]byte, error) {
	if timeout == 0 {
		timeout = c.Timeout
	}
	deadline := time.Now().Add(timeout)
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, corus.WrapCommunicationError("setting read deadline", err)
	}

	var out []byte
	started := false
	one := make([]byte, 1)
	for {
		if time.Now().After(deadline) {
			return nil, corus.NewCommunicationError("RecvUntil timed out before seeing terminator")
		}
		if _, err := io.ReadFull(c.conn, one); err != nil {
			return nil, corus.WrapCommunicationError("reading from "+c.Address, err)
		}
		if !started {
			if one[0] == start {
				started = true
				out = append(out, one[0])
			}
			continue
		}
		out = append(out, one[0])
		if one[0] == end {
			break
		}
	}
	c.logger().Debugf("[TCP] received % x", out)
	return out, nil
}
