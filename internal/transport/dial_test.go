package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnSocketSendAndReceiveLine(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		buf := make([]byte, 128)
		n, _ := server.Read(buf)
		server.Write(buf[:n])
		server.Write([]byte("HTTP/1.1 200 OK\r\n"))
	}()

	sock := newConnSocket(client)
	ctx := context.Background()

	require.NoError(t, sock.Send(ctx, []byte("ping\r\n")))

	line, ok, err := sock.ReceiveLine(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ping\r\n", line)

	line, ok, err = sock.ReceiveLine(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", line)
}

func TestConnSocketReceiveLineAfterCloseIsAbsent(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	server.Close()

	sock := newConnSocket(client)
	_, ok, err := sock.ReceiveLine(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalizeHostPassesThroughASCII(t *testing.T) {
	host, err := normalizeHost("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)
}

func TestNormalizeHostConvertsIDNToPunycode(t *testing.T) {
	host, err := normalizeHost("münchen.example")
	require.NoError(t, err)
	assert.Equal(t, "xn--mnchen-3ya.example", host)
}

func TestDialAdapterConnectPlain(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write([]byte("HTTP/1.1 200 OK\r\n\r\n"))
	}()

	addr := ln.Addr().(*net.TCPAddr)
	adapter := NewDialAdapter(HostInfo{Hostname: "127.0.0.1", Port: addr.Port}, &ListCredentialSource{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sock, err := adapter.ConnectPlain(ctx, adapter.HostInfo())
	require.NoError(t, err)
	defer sock.Close()

	line, ok, err := sock.ReceiveLine(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", line)
}
