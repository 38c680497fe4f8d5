package transport

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
	"golang.org/x/net/proxy"

	"github.com/foofus-project/webform-core/internal/wflog"
)

// CredentialSource supplies the (user, password) stream DialAdapter
// hands through to NextCredential/RecordVerdict. A host framework
// implements this against its own credential store; ListCredentialSource
// below is a simple in-memory implementation for CLI/demo use.
type CredentialSource interface {
	Next(ctx context.Context) (Credential, error)
	Record(ctx context.Context, password string, verdict Verdict) error
}

// DialAdapter is a HostAdapter backed by real TCP/TLS sockets. Host
// names are normalized to ASCII (punycode) before dialing so an IDN
// target never reaches net.Dial with raw UTF-8.
type DialAdapter struct {
	Info CredentialSource
	host HostInfo
	Log  wflog.Logger

	// SOCKS5ProxyAddr, when non-empty, routes the connection through a
	// SOCKS5 proxy instead of dialing the target directly.
	SOCKS5ProxyAddr string
	SOCKS5Auth      *proxy.Auth

	dialTimeoutOverride net.Dialer
}

// NewDialAdapter builds a DialAdapter for the given host and credential
// source.
func NewDialAdapter(info HostInfo, creds CredentialSource, log wflog.Logger) *DialAdapter {
	if log == nil {
		log = wflog.Discard{}
	}
	return &DialAdapter{Info: creds, host: info, Log: log}
}

func (a *DialAdapter) HostInfo() HostInfo {
	return a.host
}

func (a *DialAdapter) dial(ctx context.Context, addr string) (net.Conn, error) {
	if a.SOCKS5ProxyAddr != "" {
		dialer, err := proxy.SOCKS5("tcp", a.SOCKS5ProxyAddr, a.SOCKS5Auth, &a.dialTimeoutOverride)
		if err != nil {
			return nil, errors.Wrap(err, "configure SOCKS5 dialer")
		}
		if d, ok := dialer.(proxy.ContextDialer); ok {
			return d.DialContext(ctx, "tcp", addr)
		}
		return dialer.Dial("tcp", addr)
	}
	return a.dialTimeoutOverride.DialContext(ctx, "tcp", addr)
}

func normalizeHost(host string) (string, error) {
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", errors.Wrap(err, "normalize host to ASCII")
	}
	return ascii, nil
}

// ConnectPlain opens a plain TCP connection to info.Hostname:info.Port.
func (a *DialAdapter) ConnectPlain(ctx context.Context, info HostInfo) (Socket, error) {
	host, err := normalizeHost(info.Hostname)
	if err != nil {
		return nil, err
	}
	addr := fmt.Sprintf("%s:%d", host, info.Port)
	a.Log.Debugf("connecting plain to %s", addr)

	conn, err := a.dial(ctx, addr)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	return newConnSocket(conn), nil
}

// ConnectTLS opens a TLS connection to info.Hostname:info.Port.
func (a *DialAdapter) ConnectTLS(ctx context.Context, info HostInfo) (Socket, error) {
	host, err := normalizeHost(info.Hostname)
	if err != nil {
		return nil, err
	}
	addr := fmt.Sprintf("%s:%d", host, info.Port)
	a.Log.Debugf("connecting TLS to %s", addr)

	conn, err := a.dial(ctx, addr)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}

	tlsConn := tls.Client(conn, &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "TLS handshake")
	}
	return newConnSocket(tlsConn), nil
}

func (a *DialAdapter) NextCredential(ctx context.Context) (Credential, error) {
	return a.Info.Next(ctx)
}

func (a *DialAdapter) RecordVerdict(ctx context.Context, password string, verdict Verdict) error {
	return a.Info.Record(ctx, password, verdict)
}

type connSocket struct {
	conn   net.Conn
	reader *bufio.Reader
}

func newConnSocket(conn net.Conn) *connSocket {
	return &connSocket{conn: conn, reader: bufio.NewReader(conn)}
}

func (s *connSocket) Send(ctx context.Context, data []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetWriteDeadline(deadline)
	}
	_, err := s.conn.Write(data)
	return err
}

func (s *connSocket) ReceiveLine(ctx context.Context) (string, bool, error) {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetReadDeadline(deadline)
	}
	line, err := s.reader.ReadString('\n')
	if line != "" {
		return line, true, nil
	}
	if err == nil {
		return "", true, nil
	}
	if err == io.EOF {
		return "", false, nil
	}
	return "", false, errors.Wrap(err, "receive line")
}

func (s *connSocket) Close() error {
	return s.conn.Close()
}
