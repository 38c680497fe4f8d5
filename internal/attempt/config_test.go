package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foofus-project/webform-core/internal/httpwire"
	"github.com/foofus-project/webform-core/internal/option"
)

func TestNewConfigCopiesParsedOptions(t *testing.T) {
	opt := option.Parse([]string{"FORM:/login", "DENY-SIGNAL:nope"}, nil)
	cfg := NewConfig(opt, "example.com:80")

	assert.Equal(t, "/login", cfg.ResourcePath)
	assert.Equal(t, "nope", cfg.DenySignal)
	assert.Equal(t, "example.com:80", cfg.HostHeader)
	assert.Equal(t, httpwire.FormPOST, cfg.FormType)
	assert.False(t, cfg.changedRequestType())
}

func TestBeginAndRestoreChangedRequestTypeRoundTrips(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/login", FormType: httpwire.FormPOST, CookieJar: "Cookie: a=1\r\n"}

	cfg.beginChangedRequestType()
	assert.True(t, cfg.changedRequestType())
	assert.Equal(t, httpwire.FormGET, cfg.FormType)

	cfg.ResourcePath = "/redirected"
	cfg.restoreAfterRedirect()

	assert.False(t, cfg.changedRequestType())
	assert.Equal(t, "/login", cfg.ResourcePath)
	assert.Equal(t, httpwire.FormPOST, cfg.FormType)
	assert.Equal(t, "", cfg.CookieJar)
}

func TestBeginChangedRequestTypeIsIdempotent(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/a", FormType: httpwire.FormPOST}
	cfg.beginChangedRequestType()
	cfg.ResourcePath = "/b"
	cfg.beginChangedRequestType() // must not overwrite the snapshot with "/b"

	cfg.restoreAfterRedirect()
	assert.Equal(t, "/a", cfg.ResourcePath)
}

func TestRestoreAfterRedirectNoOpWithoutPendingSnapshot(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/a", FormType: httpwire.FormPOST, CookieJar: "Cookie: a=1\r\n"}
	cfg.restoreAfterRedirect()
	assert.Equal(t, "/a", cfg.ResourcePath)
	assert.Equal(t, "Cookie: a=1\r\n", cfg.CookieJar)
}

func TestResolveLocationAbsoluteUpdatesResourcePath(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/login", HostHeader: "example.com:80"}
	loc, ok := cfg.resolveLocation("/home?sid=1")
	require.True(t, ok)
	assert.Equal(t, httpwire.PathAbsolute, loc.Type)
	assert.Equal(t, "/home", cfg.ResourcePath)
	assert.Equal(t, "example.com:80", cfg.HostHeader)
}

func TestResolveLocationURIWithoutRepairSetsBothToWholeTarget(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/login", HostHeader: "example.com:80"}
	_, ok := cfg.resolveLocation("http://evil.example/x")
	require.True(t, ok)
	assert.Equal(t, "http://evil.example/x", cfg.ResourcePath)
	assert.Equal(t, "http://evil.example/x", cfg.HostHeader)
}

func TestResolveLocationURIWithRepairSplitsAuthorityAndPath(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/login", HostHeader: "example.com:80", RepairURIRedirects: true}
	_, ok := cfg.resolveLocation("http://evil.example/x")
	require.True(t, ok)
	assert.Equal(t, "/x", cfg.ResourcePath)
	assert.Equal(t, "evil.example", cfg.HostHeader)
}

func TestRequestParamsReflectsSuppressCredentialsDuringRedirectDemotion(t *testing.T) {
	cfg := ModuleConfig{ResourcePath: "/login", FormType: httpwire.FormPOST, FormUserKey: "u=", FormPassKey: "p="}
	cfg.beginChangedRequestType()

	params := cfg.requestParams()
	assert.True(t, params.SuppressCredentials)
	assert.Equal(t, httpwire.FormGET, params.FormType)
}
