// Package wflog centralizes the module's diagnostic logging so every
// package logs through the same field logger instead of reaching for
// the standard library's log package directly.
package wflog

import "github.com/sirupsen/logrus"

// Logger is the minimal logging surface the core needs. It is satisfied
// by *logrus.Logger and *logrus.Entry alike.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Default returns a logrus-backed logger tagged with the module name.
// The core packages do not fall back to it: given a nil Logger they use
// Discard, so a caller that wants log output passes Default() in.
func Default() Logger {
	return logrus.StandardLogger().WithField("module", "web-form")
}

// Discard is a Logger that drops everything, handy for tests that don't
// want to assert on log output.
type Discard struct{}

func (Discard) Debugf(string, ...interface{}) {}
func (Discard) Warnf(string, ...interface{})  {}
func (Discard) Errorf(string, ...interface{}) {}
