// Package grammar provides the character classes of RFC 5322, RFC 2045 and
// RFC 6532 as plain predicates. Every predicate takes the MailType being
// produced, because an internationalized message (RFC 6532) may carry any
// non-ASCII character wherever the ASCII grammar allows visible text.
//
// These predicates are the single source of truth consulted by the rest of
// the encoder.
package grammar

import "unicode/utf8"

// MailType is the capability level negotiated with the transport.
type MailType int

const (
	Ascii             MailType = iota // 7-bit clean headers and bodies
	Mime8BitEnabled                   // 7-bit clean headers, 8BITMIME bodies
	Internationalized                 // SMTPUTF8, UTF-8 headers per RFC 6532
)

// String returns the name of the mail type.
func (mt MailType) String() string {
	switch mt {
	case Ascii:
		return "ascii"
	case Mime8BitEnabled:
		return "mime8bit"
	case Internationalized:
		return "internationalized"
	}
	return "unknown"
}

// IsInternationalized returns true if UTF-8 may appear unencoded in headers.
func (mt MailType) IsInternationalized() bool {
	return mt == Internationalized
}

// Supports8BitBodies returns true if body parts may use the 8bit transfer
// encoding.
func (mt MailType) Supports8BitBodies() bool {
	return mt == Mime8BitEnabled || mt == Internationalized
}

// ParseMailType returns the MailType with the given name. It accepts the
// names returned by String. The second return value is false if the name is
// unknown.
func ParseMailType(name string) (MailType, bool) {
	switch name {
	case "ascii", "7bit":
		return Ascii, true
	case "mime8bit", "8bit":
		return Mime8BitEnabled, true
	case "internationalized", "utf8":
		return Internationalized, true
	}
	return Ascii, false
}

// Predicate is the shape shared by all the rune classifiers in this package.
type Predicate func(r rune, mt MailType) bool

func intl(r rune, mt MailType) bool {
	return r >= utf8.RuneSelf && mt == Internationalized
}

// IsWS returns true for space and horizontal tab.
func IsWS(r rune, _ MailType) bool {
	return r == ' ' || r == '\t'
}

// IsCTL returns true for the US-ASCII control characters, including DEL.
func IsCTL(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// IsVChar returns true for visible characters.
func IsVChar(r rune, mt MailType) bool {
	return (r >= 0x21 && r <= 0x7e) || intl(r, mt)
}

// IsSpecial returns true for the RFC 5322 specials.
func IsSpecial(r rune) bool {
	switch r {
	case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', '"':
		return true
	}
	return false
}

// IsAText returns true for characters that may appear in an atom.
func IsAText(r rune, mt MailType) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return intl(r, mt)
}

// IsQText returns true for characters that may appear unescaped in a quoted
// string.
func IsQText(r rune, mt MailType) bool {
	return r == 33 || (r >= 35 && r <= 91) || (r >= 93 && r <= 126) || intl(r, mt)
}

// IsDText returns true for characters that may appear in a domain literal.
func IsDText(r rune, mt MailType) bool {
	return (r >= 33 && r <= 90) || (r >= 94 && r <= 126) || intl(r, mt)
}

// IsCText returns true for characters that may appear unescaped in a comment.
func IsCText(r rune, mt MailType) bool {
	return (r >= 33 && r <= 39) || (r >= 42 && r <= 91) || (r >= 93 && r <= 126) || intl(r, mt)
}

// IsTSpecial returns true for the RFC 2045 tspecials.
func IsTSpecial(r rune) bool {
	switch r {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=':
		return true
	}
	return false
}

// IsToken returns true for characters allowed in an RFC 2045 token. MIME
// tokens are always ASCII, so the MailType is not consulted.
func IsToken(r rune, _ MailType) bool {
	return r > 0x20 && r < 0x7f && !IsTSpecial(r)
}

// IsFText returns true for characters allowed in a header field name.
func IsFText(r rune) bool {
	return r >= 33 && r <= 126 && r != ':'
}
