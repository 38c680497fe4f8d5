package httpwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusLineKnownCodes(t *testing.T) {
	cases := []struct {
		line string
		code int
		kind StatusKind
	}{
		{"HTTP/1.1 200 OK\r\n", 200, StatusOK},
		{"HTTP/1.1 301 Moved Permanently\r\n", 301, StatusMovedPermanently},
		{"HTTP/1.1 302 Found\r\n", 302, StatusFound},
		{"HTTP/1.1 307 Temporary Redirect\r\n", 307, StatusTemporaryRedirect},
		{"HTTP/1.1 308 Permanent Redirect\r\n", 308, StatusPermanentRedirect},
		{"HTTP/1.1 400 Bad Request\r\n", 400, StatusBadRequest},
		{"HTTP/1.1 401 Unauthorized\r\n", 401, StatusUnauthorized},
		{"HTTP/1.1 403 Forbidden\r\n", 403, StatusForbidden},
		{"HTTP/1.1 404 Not Found\r\n", 404, StatusNotFound},
		{"HTTP/1.1 999 Fictional\r\n", 999, StatusNotImplemented},
		{"HTTP/1.1 418 I'm a teapot\r\n", 418, StatusNotImplemented},
	}
	for _, c := range cases {
		code, kind := ParseStatusLine(c.line)
		assert.Equal(t, c.code, code, c.line)
		assert.Equal(t, c.kind, kind, c.line)
	}
}

func TestParseStatusLineErrors(t *testing.T) {
	cases := []string{
		"",
		"no-space-at-all",
		"HTTP/1.1 \r\n",
		"HTTP/1.1 abc OK\r\n",
	}
	for _, line := range cases {
		_, kind := ParseStatusLine(line)
		assert.Equal(t, StatusParseError, kind, line)
	}
}

func TestPreservesMethodOnlyFor307And308(t *testing.T) {
	assert.True(t, StatusTemporaryRedirect.PreservesMethod())
	assert.True(t, StatusPermanentRedirect.PreservesMethod())
	assert.False(t, StatusMovedPermanently.PreservesMethod())
	assert.False(t, StatusFound.PreservesMethod())
}
