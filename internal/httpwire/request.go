package httpwire

import (
	"bytes"
	"strconv"
)

// FormType selects which HTTP method/body shape the request builder
// produces. FormUnknown only ever appears transiently while parsing
// module options; a finalized configuration always carries FormGET or
// FormPOST.
type FormType int

const (
	FormUnknown FormType = iota
	FormGET
	FormPOST
)

// RequestParams holds everything the request builder (component E)
// needs to compose one wire request. It is a narrow view onto
// attempt.ModuleConfig so this package stays independent of the state
// machine that owns the full configuration lifecycle.
type RequestParams struct {
	FormType      FormType
	ResourcePath  string
	HostHeader    string
	UserAgent     string
	CustomHeaders string
	CookieJar     string
	FormUserKey   string
	FormPassKey   string
	FormRest      string

	// SuppressCredentials is true while a POST is mid-redirect-downgrade
	// (the module's changedRequestType flag): the request becomes a
	// plain re-GET of the redirect target with no credential body.
	SuppressCredentials bool
}

// BuildParamString composes the literal body/query form:
// "<userKey><login>&<passKey><encodedPassword><rest>". The username is
// passed through unencoded and only the password is percent-encoded;
// this asymmetry is deliberate, kept for compatibility with login forms
// that already expect unencoded usernames.
func BuildParamString(p RequestParams, login, password string) string {
	var rest string
	if p.FormRest != "" {
		rest = "&" + p.FormRest
	}
	return p.FormUserKey + login + "&" + p.FormPassKey + URLEncode(password) + rest
}

// BuildRequest composes the full wire request for one credential
// attempt, in the shape selected by p.FormType. The returned bytes are
// ready to hand to the transport's Send.
func BuildRequest(p RequestParams, login, password string) []byte {
	var params string
	if !p.SuppressCredentials {
		params = BuildParamString(p, login, password)
	}

	var buf bytes.Buffer
	switch p.FormType {
	case FormGET:
		buf.WriteString("GET ")
		buf.WriteString(p.ResourcePath)
		buf.WriteByte('?')
		buf.WriteString(params)
		buf.WriteString(" HTTP/1.1\r\n")
		writeCommonHeaders(&buf, p)
		buf.WriteString("\r\n")
	case FormPOST:
		buf.WriteString("POST ")
		buf.WriteString(p.ResourcePath)
		buf.WriteString(" HTTP/1.1\r\n")
		writeCommonHeaders(&buf, p)
		buf.WriteString("Content-Type: application/x-www-form-urlencoded\r\n")
		buf.WriteString("Content-Length: ")
		buf.WriteString(strconv.Itoa(len(params)))
		buf.WriteString("\r\n\r\n")
		buf.WriteString(params)
	}
	return buf.Bytes()
}

func writeCommonHeaders(buf *bytes.Buffer, p RequestParams) {
	buf.WriteString("Host: ")
	buf.WriteString(p.HostHeader)
	buf.WriteString("\r\n")
	buf.WriteString("User-Agent: ")
	buf.WriteString(p.UserAgent)
	buf.WriteString("\r\n")
	buf.WriteString(p.CustomHeaders)
	buf.WriteString(p.CookieJar)
}
