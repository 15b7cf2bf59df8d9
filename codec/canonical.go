package codec

import "strings"

// Canonicalize returns the registry key for an encoding name: lower case,
// without a trailing ":YYYY" year suffix, and with every character outside
// [0-9a-z] removed. It is idempotent.
//
//	Canonicalize("UTF-8")       // "utf8"
//	Canonicalize("ISO_8859-1")  // "iso88591"
//	Canonicalize("utf-8:2005")  // "utf8"
func Canonicalize(name string) string {
	s := strings.ToLower(name)
	if n := len(s); n >= 5 && s[n-5] == ':' && isDigits(s[n-4:]) {
		s = s[:n-5]
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') {
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
