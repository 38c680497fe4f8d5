// Package attempt implements the per-credential attempt state machine:
// it drives one or more request/response round-trips per (user,
// password) pair against a configured HTTP(S) login form and reports a
// verdict back through a transport.HostAdapter.
package attempt

import (
	"github.com/foofus-project/webform-core/internal/httpwire"
	"github.com/foofus-project/webform-core/internal/option"
)

// preRedirectSnapshot captures what changedRequestType needs to restore
// once a method-changed redirect chain completes at 200 OK. Folding the
// old bool-plus-string pair into a single optional value makes the
// invariant "resourcePathOld set iff changedRequestType" structural
// instead of something callers have to maintain by hand.
type preRedirectSnapshot struct {
	resourcePath string
}

// ModuleConfig holds everything needed to build a request, evolving as
// redirects are followed. It is created once per invocation and mutated
// only by option parsing and the redirect handler.
type ModuleConfig struct {
	ResourcePath  string
	HostHeader    string
	UserAgent     string
	DenySignal    string
	FormType      httpwire.FormType
	FormUserKey   string
	FormPassKey   string
	FormRest      string
	CustomHeaders string
	CookieJar     string

	// RepairURIRedirects opts into splitting a PathURI Location target
	// into authority and path instead of assigning the whole target to
	// both the Host header and the resource path.
	RepairURIRedirects bool

	preRedirect *preRedirectSnapshot
}

// NewConfig builds a ModuleConfig from parsed options plus a
// precomputed default Host header (the option parser never sees the
// target host/port, so it cannot default this field itself).
func NewConfig(opt option.Config, defaultHostHeader string) ModuleConfig {
	return ModuleConfig{
		ResourcePath:  opt.ResourcePath,
		HostHeader:    defaultHostHeader,
		UserAgent:     opt.UserAgent,
		DenySignal:    opt.DenySignal,
		FormType:      opt.FormType,
		FormUserKey:   opt.FormUserKey,
		FormPassKey:   opt.FormPassKey,
		FormRest:      opt.FormRest,
		CustomHeaders: opt.CustomHeaders,
	}
}

// changedRequestType reports whether a POST has been demoted to GET to
// follow a 301/302 and is awaiting restoration at the next 200 OK.
func (c *ModuleConfig) changedRequestType() bool {
	return c.preRedirect != nil
}

// beginChangedRequestType snapshots the current resource path and
// switches the form type to GET. It is a no-op if a snapshot is already
// pending, since a chain only demotes once.
func (c *ModuleConfig) beginChangedRequestType() {
	if c.preRedirect != nil {
		return
	}
	c.preRedirect = &preRedirectSnapshot{resourcePath: c.ResourcePath}
	c.FormType = httpwire.FormGET
}

// restoreAfterRedirect reverses beginChangedRequestType on 200 OK:
// restore the original path, switch back to POST, and clear the cookie
// jar accumulated over the redirect sub-chain. A no-op when no
// redirect-driven demotion is pending.
func (c *ModuleConfig) restoreAfterRedirect() {
	if c.preRedirect == nil {
		return
	}
	c.ResourcePath = c.preRedirect.resourcePath
	c.preRedirect = nil
	c.FormType = httpwire.FormPOST
	c.CookieJar = ""
}

// resolveLocation resolves target against the config's current
// resource path and mutates ResourcePath/HostHeader accordingly. It
// reports false when target is empty/unparseable, matching
// httpwire.ResolveLocation.
func (c *ModuleConfig) resolveLocation(target string) (httpwire.ResolvedLocation, bool) {
	loc, ok := httpwire.ResolveLocation(c.ResourcePath, target)
	if !ok {
		return loc, false
	}

	switch loc.Type {
	case httpwire.PathAbsolute, httpwire.PathRelative:
		c.ResourcePath = loc.Path
	case httpwire.PathURI:
		if c.RepairURIRedirects {
			host, path := httpwire.SplitURIScheme(loc.Path)
			c.HostHeader = host
			c.ResourcePath = path
		} else {
			c.HostHeader = loc.HostHeader
			c.ResourcePath = loc.Path
		}
	}
	return loc, true
}

func (c ModuleConfig) requestParams() httpwire.RequestParams {
	return httpwire.RequestParams{
		FormType:            c.FormType,
		ResourcePath:        c.ResourcePath,
		HostHeader:          c.HostHeader,
		UserAgent:           c.UserAgent,
		CustomHeaders:       c.CustomHeaders,
		CookieJar:           c.CookieJar,
		FormUserKey:         c.FormUserKey,
		FormPassKey:         c.FormPassKey,
		FormRest:            c.FormRest,
		SuppressCredentials: c.changedRequestType(),
	}
}
