package transport

import "context"

// Socket is an open connection to the target, scoped to a single
// request/response round-trip. It is closed and replaced on every
// transition back into the attempt machine's NEW state, including
// between the hops of a redirect chain.
type Socket interface {
	Send(ctx context.Context, data []byte) error

	// ReceiveLine reads up to and including the next CRLF. ok is false
	// when the peer closed the connection or nothing more is available
	// before EOF; err carries any lower-level transport failure.
	ReceiveLine(ctx context.Context) (line string, ok bool, err error)

	Close() error
}

// HostAdapter is everything the attempt state machine needs from its
// host: connection establishment plus the credential stream. Keeping it
// as an interface lets the machine run against a fake in tests without
// opening a real socket.
type HostAdapter interface {
	ConnectPlain(ctx context.Context, info HostInfo) (Socket, error)
	ConnectTLS(ctx context.Context, info HostInfo) (Socket, error)

	NextCredential(ctx context.Context) (Credential, error)
	RecordVerdict(ctx context.Context, password string, verdict Verdict) error

	HostInfo() HostInfo
}
