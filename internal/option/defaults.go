package option

// Default values applied to any option not supplied on the command
// line. These mirror the module's historical defaults so existing
// invocations that omit -m flags keep working unchanged.
const (
	DefaultUserAgent   = "Mozilla/4.0 (compatible; MSIE 6.0)"
	DefaultDenySignal  = "Login incorrect"
	DefaultUsernameKey = "username="
	DefaultPasswordKey = "password="
	DefaultFormType    = "post"
	DefaultResourcePath = "/"

	ModuleName    = "web-form"
	ModuleVersion = "2.0"
	ModuleAuthor  = "foofus-project"
	ModuleSummary = "Brute force HTTP login forms (GET/POST)"
)

// ParamCount reports how many positional module parameters this module
// accepts on top of its -m KEY:VALUE options. web-form takes none: all
// configuration arrives through named options.
func ParamCount() int {
	return 0
}

// Usage returns the module's help text, formatted the way the host
// framework prints a "-M web-form -q" listing.
func Usage() string {
	return ModuleName + " (" + ModuleVersion + ") " + ModuleAuthor + " :: " + ModuleSummary + "\n" +
		"Available module options:\n" +
		"  USER-AGENT:?       User-agent value. Default: \"" + DefaultUserAgent + "\".\n" +
		"  FORM:?             Target form to request. Default: \"/\"\n" +
		"  DENY-SIGNAL:?      Authentication failure message. Attempt flagged as successful if text is not present in\n" +
		"                     server response. Default: \"" + DefaultDenySignal + "\"\n" +
		"  CUSTOM-HEADER:?    Custom HTTP header.\n" +
		"                     More headers can be defined by using this option several times.\n" +
		"  FORM-DATA:<METHOD>?<FIELDS>\n" +
		"                     Method and fields to send to the web service. Valid methods are GET and POST. The actual\n" +
		"                     form data to submit should also be defined here, specifically the username field (first)\n" +
		"                     and the password field (second).\n" +
		"                     Default: \"" + DefaultFormType + "?" + DefaultUsernameKey + "&" + DefaultPasswordKey + "\"\n" +
		"\n" +
		"Usage example: \"-M web-form -m USER-AGENT:\\\"g3rg3 gerg\\\" -m FORM:\\\"webmail/index.php\\\" -m DENY-SIGNAL:\\\"deny!\\\"\n" +
		"                 -m FORM-DATA:\\\"post?user=&pass=&submit=True\\\" -m CUSTOM-HEADER:\\\"Cookie: name=value\\\"\n"
}
