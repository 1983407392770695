package logging

import (
	"regexp"
	"unicode/utf8"
)

const (
	// MaxBodyLogLength is the maximum length of a response body to log
	MaxBodyLogLength = 200
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Matches: password=xxx, pwd=xxx, pass=xxx (until next delimiter)
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Bearer tokens, JWT or opaque
	bearerPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-_.~+/]+=*`)

	// Bare JWTs (three base64url segments separated by dots)
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]*`)

	// Token and password values inside JSON bodies
	jsonSecretPattern = regexp.MustCompile(`(?i)"(access|refresh|token|password|access_token|refresh_token)"\s*:\s*"[^"]*"`)

	// Token-like query parameters
	queryTokenPattern = regexp.MustCompile(`(?i)([?&](?:token|access_token|api_key|key)=)[^&\s]+`)

	// Credentials in URLs (user:pass@host format)
	urlCredentialsPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@`)
)

// SanitizeURL removes credentials and token query parameters from a URL
// Use this before logging any request URL
func SanitizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	sanitized := urlCredentialsPattern.ReplaceAllString(rawURL, "://"+RedactedText+"@")
	sanitized = queryTokenPattern.ReplaceAllString(sanitized, "${1}"+RedactedText)

	return sanitized
}

// SanitizeError sanitizes error messages that might contain tokens or credentials
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return sanitize(err.Error())
}

// SanitizeBody truncates and sanitizes an HTTP response body for logging
func SanitizeBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	return TruncateString(sanitize(string(body)), MaxBodyLogLength)
}

func sanitize(s string) string {
	sanitized := bearerPattern.ReplaceAllString(s, "Bearer "+RedactedText)
	sanitized = jwtPattern.ReplaceAllString(sanitized, RedactedText)
	sanitized = jsonSecretPattern.ReplaceAllString(sanitized, `"${1}":"`+RedactedText+`"`)
	sanitized = passwordPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = urlCredentialsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
	sanitized = queryTokenPattern.ReplaceAllString(sanitized, "${1}"+RedactedText)
	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
