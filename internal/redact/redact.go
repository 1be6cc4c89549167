// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Target database URIs carry
// credentials, and driver or API errors can echo them back, so every URI and error
// string crosses this package before reaching a log line or an HTTP body.
package redact

import (
	"net/url"
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	InvalidURLPlaceholder         = "[INVALID_URL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Precompiled rules, applied in order.
var rules = []rule{
	// userinfo of postgres://, postgresql:// and redis:// style URLs
	{
		pattern:     regexp.MustCompile(`(?i)\b((?:postgres|postgresql|redis|rediss|mysql)://)[^@/\s]+@`),
		replacement: "${1}" + RedactedCredentialPlaceholder + "@",
	},
	// password=... in keyword/value connection strings
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*=\s*)('[^']*'|[^\s&]+)`),
		replacement: "${1}${2}" + RedactedCredentialPlaceholder,
	},
	// three-part base64url JWT
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	// api keys and tokens passed as key=value or key: value
	{
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret)(["'\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// URL returns uri with its credentials replaced, keeping scheme, host and
// path readable for diagnostics. Unparseable input is not echoed back.
func URL(uri string) string {
	if uri == "" {
		return ""
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" {
		return InvalidURLPlaceholder
	}

	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return String(u.String())
}
