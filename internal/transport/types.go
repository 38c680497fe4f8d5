// Package transport defines the boundary between the attempt state
// machine and the host framework that actually owns sockets and the
// credential stream: connecting, sending, reading response lines, and
// reporting per-password verdicts back.
package transport

// Verdict is the closed set of outcomes reported for one credential.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictSuccess
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return "SUCCESS"
	case VerdictFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// IterStatus reports what the credential source did on the last
// advance: hand back a pair on the same user, move to a new user
// (forcing a fresh connection), or signal there is nothing left.
type IterStatus int

const (
	IterContinue IterStatus = iota
	IterNewUser
	IterDone
)

// Credential is one (user, password) candidate together with the
// status of the iterator that produced it.
type Credential struct {
	User     string
	Password string
	Status   IterStatus
}

// HostInfo describes the target the adapter should connect to.
type HostInfo struct {
	Hostname string
	IPText   string
	Port     int
	UseTLS   bool
}
