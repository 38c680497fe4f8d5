package attempt

import (
	"context"
	"fmt"

	"github.com/foofus-project/webform-core/internal/httpwire"
	"github.com/foofus-project/webform-core/internal/transport"
	"github.com/foofus-project/webform-core/internal/wflog"
)

// DefaultRedirectLimit bounds how many redirect hops a single credential
// attempt will follow before giving up. The source followed redirects
// eagerly with no cap; this adds one to stop a loop between two
// cooperating endpoints from pinning a worker thread forever.
const DefaultRedirectLimit = 10

type state int

const (
	stateInitialize state = iota
	stateNew
	stateRunning
	stateExiting
	stateComplete
)

// Machine drives ModuleConfig through INITIALIZE -> NEW -> RUNNING ->
// EXITING -> COMPLETE for one module invocation, testing every
// credential the adapter hands it until the adapter reports IterDone or
// a hard error stops the invocation outright.
type Machine struct {
	Config        ModuleConfig
	Adapter       transport.HostAdapter
	Log           wflog.Logger
	RedirectLimit int

	socket  transport.Socket
	counts  summaryCounters
	lastErr error
}

// LastError returns the Kind-tagged error that caused the most recent
// terminal branch (hard HTTP status, parse failure, missing Location,
// transport failure), or nil if the last attempt completed cleanly.
func (m *Machine) LastError() error {
	return m.lastErr
}

type summaryCounters struct {
	success int
	fail    int
	unknown int
}

// NewMachine builds a Machine ready to run. cfg should already have its
// defaults applied (see NewConfig).
func NewMachine(cfg ModuleConfig, adapter transport.HostAdapter, log wflog.Logger) *Machine {
	if log == nil {
		log = wflog.Discard{}
	}
	return &Machine{
		Config:        cfg,
		Adapter:       adapter,
		Log:           log,
		RedirectLimit: DefaultRedirectLimit,
	}
}

// Summary reports how many of each verdict this invocation has produced
// so far.
func (m *Machine) Summary() (success, fail, unknown int) {
	return m.counts.success, m.counts.fail, m.counts.unknown
}

// Run drives the state machine to completion. It returns a non-nil
// error only for a connect failure, which the source treats as fatal to
// the whole invocation, or for a failure to fetch the first credential;
// every other terminal condition is absorbed into an UNKNOWN verdict
// and a clean shutdown through EXITING.
func (m *Machine) Run(ctx context.Context) error {
	cred, err := m.Adapter.NextCredential(ctx)
	if err != nil {
		return wrapKindError(KindConnect, err)
	}
	if cred.Status == transport.IterDone {
		m.Log.Debugf("no credentials available to test")
		return nil
	}

	st := stateInitialize
	redirectHops := 0

	for st != stateComplete {
		switch st {
		case stateInitialize:
			st = stateNew

		case stateNew:
			if m.socket != nil {
				m.socket.Close()
				m.socket = nil
			}

			sock, connErr := m.connect(ctx)
			if connErr != nil {
				m.Log.Errorf("failed to connect: %v", connErr)
				m.recordVerdict(ctx, cred.Password, transport.VerdictUnknown)
				return wrapKindError(KindConnect, connErr)
			}
			m.socket = sock
			st = stateRunning

		case stateRunning:
			next, verdict, hops := m.tryAttempt(ctx, cred, redirectHops)
			redirectHops = hops
			st = next

			if verdict == nil {
				// Redirect in progress: same credential, fresh connection.
				continue
			}

			m.recordVerdict(ctx, cred.Password, *verdict)

			if *verdict == transport.VerdictUnknown {
				// Hard error: stop the whole invocation, nothing more to try.
				st = stateExiting
				continue
			}

			nextCred, credErr := m.Adapter.NextCredential(ctx)
			if credErr != nil {
				m.Log.Errorf("error retrieving next credential: %v", credErr)
				st = stateExiting
				continue
			}
			cred = nextCred
			redirectHops = 0
			switch cred.Status {
			case transport.IterDone:
				st = stateExiting
			case transport.IterNewUser:
				st = stateNew
			default:
				st = stateNew
			}

		case stateExiting:
			if m.socket != nil {
				m.socket.Close()
				m.socket = nil
			}
			st = stateComplete
		}
	}

	return nil
}

func (m *Machine) connect(ctx context.Context) (transport.Socket, error) {
	info := m.Adapter.HostInfo()
	if info.UseTLS {
		return m.Adapter.ConnectTLS(ctx, info)
	}
	return m.Adapter.ConnectPlain(ctx, info)
}

func (m *Machine) recordVerdict(ctx context.Context, password string, v transport.Verdict) {
	switch v {
	case transport.VerdictSuccess:
		m.counts.success++
	case transport.VerdictFail:
		m.counts.fail++
	default:
		m.counts.unknown++
	}
	if err := m.Adapter.RecordVerdict(ctx, password, v); err != nil {
		m.Log.Warnf("failed to record verdict: %v", err)
	}
}

// tryAttempt performs one send/receive round-trip and decides whether
// it produced a verdict, needs another hop to follow a redirect, or hit
// a terminal error. verdict is nil exactly when the next state is
// stateNew with the same credential pending a redirect retry.
func (m *Machine) tryAttempt(ctx context.Context, cred transport.Credential, hops int) (state, *transport.Verdict, int) {
	params := m.Config.requestParams()
	request := httpwire.BuildRequest(params, cred.User, cred.Password)

	if err := m.socket.Send(ctx, request); err != nil {
		m.lastErr = wrapKindError(KindSend, err)
		m.Log.Errorf("send failed: %v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}

	statusLine, ok, err := m.socket.ReceiveLine(ctx)
	if err != nil {
		m.lastErr = wrapKindError(KindReceive, err)
		m.Log.Errorf("receive failed: %v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}
	if !ok || statusLine == "" {
		m.lastErr = newKindError(KindReceive, "no data received")
		m.Log.Errorf("%v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}

	code, kind := httpwire.ParseStatusLine(statusLine)
	if kind == httpwire.StatusParseError {
		m.lastErr = newKindError(KindStatusParse, "error parsing HTTP status code")
		m.Log.Errorf("%v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}
	m.lastErr = nil
	m.Log.Debugf("HTTP response code was %d", code)

	switch {
	case kind == httpwire.StatusOK:
		m.Config.restoreAfterRedirect()
		return m.scanDenySignal(ctx)

	case kind.IsRedirect():
		return m.followRedirect(ctx, kind, hops)

	case kind == httpwire.StatusBadRequest, kind == httpwire.StatusUnauthorized,
		kind == httpwire.StatusForbidden, kind == httpwire.StatusNotFound:
		m.lastErr = newKindError(KindHardHTTP, fmt.Sprintf("received HTTP status code %d, cannot proceed", code))
		m.Log.Errorf("%v", m.lastErr)
		return stateExiting, unknownVerdict(), hops

	default:
		m.lastErr = newKindError(KindUnknownStatus, fmt.Sprintf("unrecognized HTTP status code %d", code))
		m.Log.Errorf("%v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}
}

func (m *Machine) followRedirect(ctx context.Context, kind httpwire.StatusKind, hops int) (state, *transport.Verdict, int) {
	if hops >= m.RedirectLimit {
		m.lastErr = newKindError(KindRedirect, fmt.Sprintf("stopped after %d redirects", m.RedirectLimit))
		m.Log.Errorf("%v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}

	block := m.readHeaderBlock(ctx)

	location, _, found := httpwire.FindHeader([]byte(block), "Location")
	if !found {
		m.lastErr = newKindError(KindRedirect, "redirect could not be followed: no Location header")
		m.Log.Errorf("%v", m.lastErr)
		return stateExiting, unknownVerdict(), hops
	}

	m.Log.Debugf("following redirect")

	// Snapshot the pre-redirect path before resolveLocation overwrites
	// it: resourcePathOld must hold the path in effect before the
	// method-changing redirect, not the freshly resolved target.
	if m.Config.FormType == httpwire.FormPOST && (kind == httpwire.StatusMovedPermanently || kind == httpwire.StatusFound) {
		m.Log.Debugf("changing request method to GET for redirect")
		m.Config.beginChangedRequestType()
	}

	m.Config.resolveLocation(location)
	m.Config.CookieJar = httpwire.AccumulateCookies([]byte(block), m.Config.CookieJar)

	return stateNew, nil, hops + 1
}

// readHeaderBlock accumulates response lines until a blank CRLF line
// (the usual end-of-headers marker) or the connection has nothing more
// buffered, so component C/F's multi-line needle search has a
// contiguous buffer to scan. It is seeded with the CRLF that terminated
// the already-consumed status line, since FindHeader's needle is
// "\r\n<Name>:" and a header appearing first in this block still needs
// that leading CRLF to be found.
func (m *Machine) readHeaderBlock(ctx context.Context) string {
	block := "\r\n"
	for {
		line, ok, err := m.socket.ReceiveLine(ctx)
		if err != nil || !ok {
			break
		}
		block += line
		if line == "\r\n" || line == "\n" {
			break
		}
	}
	return block
}

// scanDenySignal reads the remainder of the response line by line,
// checking each one against the configured deny signal. The scan
// covers header and body lines alike, since a login form's failure
// text can legitimately appear in either.
func (m *Machine) scanDenySignal(ctx context.Context) (state, *transport.Verdict, int) {
	for {
		line, ok, err := m.socket.ReceiveLine(ctx)
		if err != nil || !ok || line == "" {
			break
		}
		if httpwire.ContainsFold(line, m.Config.DenySignal) {
			v := transport.VerdictFail
			return stateNew, &v, 0
		}
	}
	v := transport.VerdictSuccess
	m.Log.Debugf("login successful")
	return stateNew, &v, 0
}

func unknownVerdict() *transport.Verdict {
	v := transport.VerdictUnknown
	return &v
}
