package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPChannelSendRecv(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 3)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		_, _ = conn.Write([]byte{0xAA, 0xBB})
	}()

	ch := NewTCPChannel(ln.Addr().String(), time.Second)
	require.NoError(t, ch.Connect())
	defer ch.Disconnect()

	require.NoError(t, ch.Send([]byte{1, 2, 3}))
	out, err := ch.Recv(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, out)

	<-serverDone
}

func TestTCPChannelRecvUntil(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Write([]byte{0x00, 0x00, '/', 'I', 'F', '\n'})
	}()

	ch := NewTCPChannel(ln.Addr().String(), time.Second)
	require.NoError(t, ch.Connect())
	defer ch.Disconnect()

	out, err := ch.RecvUntil('/', '\n', time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("/IF\n"), out)
}

func TestTCPChannelRecvTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(200 * time.Millisecond)
	}()

	ch := NewTCPChannel(ln.Addr().String(), 20*time.Millisecond)
	require.NoError(t, ch.Connect())
	defer ch.Disconnect()

	_, err = ch.Recv(1)
	assert.Error(t, err)
}
