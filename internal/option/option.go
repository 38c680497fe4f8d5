// Package option parses the "-m KEY:VALUE" arguments a brute-forcing
// host passes into the module and produces a populated Config, filling
// in defaults for anything the caller left unset.
package option

import (
	"strings"

	"github.com/foofus-project/webform-core/internal/httpwire"
	"github.com/foofus-project/webform-core/internal/wflog"
)

// Config holds every value the module needs to build requests, before
// a host or port is known. hostHeader is deliberately absent here: its
// default depends on the target host and port, which option parsing
// never sees, so callers compute it after Parse returns.
type Config struct {
	ResourcePath  string
	UserAgent     string
	DenySignal    string
	CustomHeaders string
	FormType      httpwire.FormType
	FormUserKey   string
	FormPassKey   string
	FormRest      string

	formDataSet bool
}

// Parse walks args (each a "KEY:VALUE" string as the host framework
// hands them down) and returns a Config with recognized keys applied
// and every omitted field defaulted. Unknown keys are logged and
// ignored; a key given without a value is logged and ignored too.
func Parse(args []string, log wflog.Logger) Config {
	if log == nil {
		log = wflog.Discard{}
	}

	var cfg Config
	var customHeaderCount int

	for _, arg := range args {
		key, value, hasColon := strings.Cut(arg, ":")
		if !hasColon {
			log.Warnf("invalid module option %q, expected KEY:VALUE", arg)
			continue
		}

		switch strings.ToUpper(key) {
		case "FORM":
			if value == "" {
				log.Warnf("option FORM requires an argument")
				continue
			}
			cfg.ResourcePath = value

		case "DENY-SIGNAL":
			if value == "" {
				log.Warnf("option DENY-SIGNAL requires an argument")
				continue
			}
			cfg.DenySignal = value

		case "USER-AGENT":
			if value == "" {
				log.Warnf("option USER-AGENT requires an argument")
				continue
			}
			cfg.UserAgent = value

		case "CUSTOM-HEADER":
			if value == "" {
				log.Warnf("option CUSTOM-HEADER requires value to be set")
				continue
			}
			cfg.CustomHeaders += value + "\r\n"
			customHeaderCount++

		case "FORM-DATA":
			if value == "" {
				log.Warnf("option FORM-DATA requires an argument")
				continue
			}
			parseFormData(&cfg, value, log)
			cfg.formDataSet = true

		default:
			log.Warnf("invalid module option: %s", key)
		}
	}

	applyDefaults(&cfg, log)
	return cfg
}

// parseFormData splits "<method>?<userKey>&<passKey>[&<rest>]" into
// cfg's form fields. An unrecognized method or a missing key is left
// as a zero value / FormUnknown here; applyDefaults repairs the whole
// group to the default POST configuration rather than patching fields
// individually, since a half-specified form is not safely usable.
func parseFormData(cfg *Config, value string, log wflog.Logger) {
	method, fields, _ := strings.Cut(value, "?")
	log.Debugf("user-supplied form action method: %s", method)

	switch strings.ToLower(method) {
	case "post":
		cfg.FormType = httpwire.FormPOST
	case "get":
		cfg.FormType = httpwire.FormGET
	default:
		cfg.FormType = httpwire.FormUnknown
	}

	userKey, fields, _ := strings.Cut(fields, "&")
	cfg.FormUserKey = userKey

	passKey, rest, _ := strings.Cut(fields, "&")
	cfg.FormPassKey = passKey
	cfg.FormRest = rest

	log.Debugf("user-supplied form user field: %s", cfg.FormUserKey)
	log.Debugf("user-supplied form pass field: %s", cfg.FormPassKey)
	log.Debugf("user-supplied form rest field: %s", cfg.FormRest)
}

// applyDefaults fills every field Parse left unset. FORM-DATA is
// all-or-nothing: if the user supplied it but the result is unusable
// (unknown method, or no username/password key), the whole group falls
// back to the default POST configuration rather than keeping a partial
// user value alongside defaulted siblings.
func applyDefaults(cfg *Config, log wflog.Logger) {
	if cfg.ResourcePath == "" {
		cfg.ResourcePath = DefaultResourcePath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.DenySignal == "" {
		cfg.DenySignal = DefaultDenySignal
	}

	if !cfg.formDataSet {
		cfg.FormType = httpwire.FormPOST
		cfg.FormUserKey = DefaultUsernameKey
		cfg.FormPassKey = DefaultPasswordKey
		cfg.FormRest = ""
		return
	}

	if cfg.FormType == httpwire.FormUnknown || cfg.FormUserKey == "" || cfg.FormPassKey == "" {
		log.Warnf("invalid FORM-DATA format, using default format: %q?%s&%s",
			DefaultFormType, DefaultUsernameKey, DefaultPasswordKey)
		cfg.FormType = httpwire.FormPOST
		cfg.FormUserKey = DefaultUsernameKey
		cfg.FormPassKey = DefaultPasswordKey
		cfg.FormRest = ""
	}
}
