package transport

import "context"

// ListCredentialSource iterates a fixed slice of (user, password) pairs
// grouped by user, reporting IterNewUser on the first password of each
// user after the first and IterDone once the list is exhausted. It is
// meant for CLI/demo use and tests; a real deployment plugs in whatever
// credential store the host framework already maintains.
type ListCredentialSource struct {
	Users    []string
	Password []string

	userIdx int
	passIdx int
	started bool

	Verdicts []RecordedVerdict
}

// RecordedVerdict is one (password, verdict) pair captured by Record.
type RecordedVerdict struct {
	Password string
	Verdict  Verdict
}

func (l *ListCredentialSource) Next(ctx context.Context) (Credential, error) {
	if len(l.Users) == 0 || len(l.Password) == 0 {
		return Credential{Status: IterDone}, nil
	}

	if !l.started {
		l.started = true
		return Credential{User: l.Users[0], Password: l.Password[0], Status: IterContinue}, nil
	}

	l.passIdx++
	if l.passIdx >= len(l.Password) {
		l.passIdx = 0
		l.userIdx++
	}
	if l.userIdx >= len(l.Users) {
		return Credential{Status: IterDone}, nil
	}

	status := IterContinue
	if l.passIdx == 0 {
		status = IterNewUser
	}
	return Credential{User: l.Users[l.userIdx], Password: l.Password[l.passIdx], Status: status}, nil
}

func (l *ListCredentialSource) Record(ctx context.Context, password string, verdict Verdict) error {
	l.Verdicts = append(l.Verdicts, RecordedVerdict{Password: password, Verdict: verdict})
	return nil
}
