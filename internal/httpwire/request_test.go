package httpwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseParams() RequestParams {
	return RequestParams{
		FormType:     FormPOST,
		ResourcePath: "/login",
		HostHeader:   "example.com:80",
		UserAgent:    "test-agent",
		FormUserKey:  "username=",
		FormPassKey:  "password=",
	}
}

func TestBuildParamStringEncodesOnlyPassword(t *testing.T) {
	params := baseParams()
	got := BuildParamString(params, "ali ce", "p@ss w0rd!")
	assert.Equal(t, "username=ali ce&password=p%40ss%20w0rd%21", got)
}

func TestBuildParamStringEmptyRestHasNoTrailingAmpersand(t *testing.T) {
	params := baseParams()
	got := BuildParamString(params, "alice", "secret")
	assert.Equal(t, "username=alice&password=secret", got)
}

func TestBuildParamStringAppendsRestJoinedByAmpersand(t *testing.T) {
	params := baseParams()
	params.FormRest = "submit=True"
	got := BuildParamString(params, "alice", "secret")
	assert.Equal(t, "username=alice&password=secret&submit=True", got)
}

func TestBuildRequestPOSTIncludesContentLengthAndBody(t *testing.T) {
	params := baseParams()
	req := string(BuildRequest(params, "alice", "secret"))

	assert.Contains(t, req, "POST /login HTTP/1.1\r\n")
	assert.Contains(t, req, "Host: example.com:80\r\n")
	assert.Contains(t, req, "User-Agent: test-agent\r\n")
	assert.Contains(t, req, "Content-Type: application/x-www-form-urlencoded\r\n")
	assert.Contains(t, req, "Content-Length: 30\r\n")
	assert.Contains(t, req, "username=alice&password=secret")
}

func TestBuildRequestGETPutsParamsInQueryString(t *testing.T) {
	params := baseParams()
	params.FormType = FormGET
	req := string(BuildRequest(params, "alice", "secret"))

	assert.Contains(t, req, "GET /login?username=alice&password=secret HTTP/1.1\r\n")
	assert.NotContains(t, req, "Content-Length")
}

func TestBuildRequestIncludesCustomHeadersAndCookieJar(t *testing.T) {
	params := baseParams()
	params.CustomHeaders = "X-Forwarded-For: 127.0.0.1\r\n"
	params.CookieJar = "Cookie: a=1\r\n"
	req := string(BuildRequest(params, "alice", "secret"))

	assert.Contains(t, req, "X-Forwarded-For: 127.0.0.1\r\n")
	assert.Contains(t, req, "Cookie: a=1\r\n")
}

func TestBuildRequestSuppressCredentialsSendsEmptyBody(t *testing.T) {
	params := baseParams()
	params.SuppressCredentials = true
	req := string(BuildRequest(params, "alice", "secret"))

	assert.Contains(t, req, "Content-Length: 0\r\n")
	assert.NotContains(t, req, "username=alice")
}
