package attempt

import "github.com/pkg/errors"

// Kind classifies why an attempt terminated, mirroring the taxonomy
// every terminal branch of tryAttempt reports through.
type Kind int

const (
	KindConnect Kind = iota
	KindSend
	KindReceive
	KindStatusParse
	KindRedirect
	KindHardHTTP
	KindUnknownStatus
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "ConnectError"
	case KindSend:
		return "SendError"
	case KindReceive:
		return "ReceiveError"
	case KindStatusParse:
		return "StatusParseError"
	case KindRedirect:
		return "RedirectError"
	case KindHardHTTP:
		return "HardHttpError"
	case KindUnknownStatus:
		return "UnknownStatus"
	default:
		return "UnknownKind"
	}
}

// Error wraps a terminal condition with its Kind so callers (and tests)
// can branch on category without string matching.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newKindError(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

func wrapKindError(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}
