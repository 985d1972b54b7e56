// Package redact removes sensitive information from strings before they
// are logged. Error values originating in the store or auth layers can
// carry connection strings, SQL fragments, or credentials; those details
// must never reach the log stream verbatim, let alone a client.
package redact

import "regexp"

// Placeholder is substituted for every redacted fragment.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Database connection strings with inline credentials.
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@[^\s]+`),

	// password=..., passwd: ... and similar key/value credentials.
	regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token|api[_-]?key)[=:\s]+[^\s'"&]{3,}`),

	// Bcrypt hashes.
	regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`),

	// JWT tokens (three base64url segments starting with eyJ).
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),

	// SQL fragments that could reveal schema or data.
	regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s+[\s\w,*()='"$]+\s(FROM|INTO|SET)\s+\w+`),
}

// String returns s with all sensitive fragments replaced.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
