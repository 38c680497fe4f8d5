package httpwire

import (
	"path"
	"strings"
)

// PathType classifies a Location header target: a leading '/' is
// absolute, a leading "http" (case insensitive) is a full URI, anything
// else is relative to the current resource path, and empty/absent input
// is unknown.
type PathType int

const (
	PathUnknown PathType = iota
	PathAbsolute
	PathURI
	PathRelative
)

// ClassifyPath inspects target (with any query string already stripped)
// and reports which of the four RFC 2616 §5.1.2 cases it falls into.
func ClassifyPath(target string) PathType {
	if target == "" {
		return PathUnknown
	}
	if target[0] == '/' {
		return PathAbsolute
	}
	if len(target) >= 4 && strings.EqualFold(target[:4], "http") {
		return PathURI
	}
	return PathRelative
}

// StripQuery truncates target at its first '?': request parameters on
// a redirect target are never forwarded.
func StripQuery(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}
	return target
}

// ResolveRelative merges target against the directory portion of
// basePath and collapses "." / ".." segments, per RFC 2616 §5.1.2's
// reference to the relative-URL resolution algorithm. A merge is used
// rather than a straight substitution so "FORM:/app/login" plus
// "Location: ../home" resolves to "/home", not "/app/login/../home".
func ResolveRelative(basePath, target string) string {
	dir := "/"
	if i := strings.LastIndexByte(basePath, '/'); i >= 0 {
		dir = basePath[:i+1]
	}

	merged := dir + target
	cleaned := path.Clean(merged)
	if cleaned != "/" && strings.HasSuffix(merged, "/") {
		cleaned += "/"
	}
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned
}

// ResolvedLocation is the outcome of resolving a Location header value
// against the module's current path type. HostHeader is only set for
// PathURI targets.
type ResolvedLocation struct {
	Type       PathType
	Path       string
	HostHeader string
}

// ResolveLocation resolves a Location header value against basePath:
// strip the query string, classify what remains, and resolve it.
//
// The PathURI case assigns the entire target (scheme, authority, and
// path together) to both the new resource path and the new Host header,
// rather than splitting it into its authority and path components. This
// is almost certainly not what a well-formed redirect chain wants, but
// it is the literal behavior; SplitURIScheme below is an opt-in,
// documented repair for callers that want the corrected split instead.
func ResolveLocation(basePath, target string) (ResolvedLocation, bool) {
	stripped := StripQuery(target)
	switch ClassifyPath(stripped) {
	case PathAbsolute:
		return ResolvedLocation{Type: PathAbsolute, Path: stripped}, true
	case PathURI:
		return ResolvedLocation{Type: PathURI, Path: stripped, HostHeader: stripped}, true
	case PathRelative:
		return ResolvedLocation{Type: PathRelative, Path: ResolveRelative(basePath, stripped)}, true
	default:
		return ResolvedLocation{}, false
	}
}

// SplitURIScheme splits a "http://host[:port]/path" target into its
// authority (suitable for a Host header) and path components. Callers
// that opt into the repair via attempt.ModuleConfig.RepairURIRedirects
// use this instead of ResolveLocation's literal PathURI handling.
func SplitURIScheme(target string) (hostHeader, resourcePath string) {
	rest := target
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i], rest[i:]
	}
	return rest, "/"
}
