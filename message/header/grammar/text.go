package grammar

import (
	"strings"
	"unicode/utf8"
)

// IsASCII returns true if s holds only US-ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// All returns true if s is non-empty and every rune of s satisfies pred.
// Invalid UTF-8 never satisfies a predicate.
func All(s string, pred Predicate, mt MailType) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == utf8.RuneError || !pred(r, mt) {
			return false
		}
	}
	return true
}

// IsAtom returns true if s is a non-empty run of atext.
func IsAtom(s string, mt MailType) bool {
	return All(s, IsAText, mt)
}

// IsDotAtom returns true if s is one or more atoms joined by single dots.
func IsDotAtom(s string, mt MailType) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !IsAtom(part, mt) {
			return false
		}
	}
	return true
}

// IsTokenString returns true if s is a non-empty RFC 2045 token.
func IsTokenString(s string) bool {
	return All(s, IsToken, Ascii)
}

// IsDomainLiteral returns true if s has the form "[" *dtext "]".
func IsDomainLiteral(s string, mt MailType) bool {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return false
	}
	inner := s[1 : len(s)-1]
	return inner == "" || All(inner, IsDText, mt)
}

// IsFieldName returns true if s is a valid header field name.
func IsFieldName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsFText(r) {
			return false
		}
	}
	return true
}
