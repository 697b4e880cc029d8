package utils

import "strings"

// MaskEmail redacts the local part of an email for log lines.
// "alice@example.com" -> "a***@example.com".
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// MaskToken keeps a short prefix and suffix of a token so log lines can be
// correlated without ever containing a usable credential.
func MaskToken(token string) string {
	if len(token) < 10 {
		return "********"
	}
	return token[:5] + "..." + token[len(token)-5:]
}
