package encoder

import (
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Quote turns text into an RFC 5322 quoted-string. Characters in qtext pass
// through, any other visible or whitespace character is escaped with a
// backslash. Control characters cannot be escaped and make Quote fail.
//
// The MailType returned is the narrowest one able to carry the result:
// Internationalized if text holds non-ASCII characters, Ascii otherwise.
func Quote(text string) (grammar.MailType, string, error) {
	if !utf8.ValidString(text) {
		return grammar.Ascii, "", charsetError(text, grammar.Ascii, "invalid UTF-8")
	}

	var sb strings.Builder
	sb.Grow(len(text) + 2)
	sb.WriteByte('"')
	mt, err := quoteTo(&sb, text)
	if err != nil {
		return mt, "", err
	}
	sb.WriteByte('"')

	return mt, sb.String(), nil
}

func quoteTo(sb *strings.Builder, text string) (grammar.MailType, error) {
	mt := grammar.Ascii
	for _, r := range text {
		switch {
		case grammar.IsQText(r, grammar.Internationalized):
			if r >= utf8.RuneSelf {
				mt = grammar.Internationalized
			}
			sb.WriteRune(r)
		case grammar.IsVChar(r, grammar.Ascii), grammar.IsWS(r, grammar.Ascii):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			return mt, charsetError(text, mt, "unescapable control character")
		}
	}
	return mt, nil
}

// QuoteIfNeeded returns text as-is when every character satisfies isToken,
// and the quoted form otherwise. The second return value reports whether the
// text was quoted. When no quoting is needed the returned string is text
// itself, no copy is made.
//
// The token characters must be a subset of qtext. The longest prefix of token
// characters is copied into the quoted-string unchanged and only the rest is
// escaped.
//
// It fails if text holds non-ASCII characters and allowed is not
// Internationalized.
func QuoteIfNeeded(text string, isToken grammar.Predicate, allowed grammar.MailType) (string, bool, error) {
	if !utf8.ValidString(text) {
		return "", false, charsetError(text, allowed, "invalid UTF-8")
	}
	if !allowed.IsInternationalized() && !grammar.IsASCII(text) {
		return "", false, charsetError(text, allowed, "non-ASCII text")
	}

	prefix := len(text)
	for i, r := range text {
		if !isToken(r, allowed) {
			prefix = i
			break
		}
	}

	if text != "" && prefix == len(text) {
		return text, false, nil
	}

	var sb strings.Builder
	sb.Grow(len(text) + 2)
	sb.WriteByte('"')
	sb.WriteString(text[:prefix])
	if _, err := quoteTo(&sb, text[prefix:]); err != nil {
		return "", false, err
	}
	sb.WriteByte('"')

	return sb.String(), true, nil
}

// WriteQuoted writes text to b as a quoted-string, using raw UTF-8 only if
// the Buffer's MailType allows it.
func WriteQuoted(b *Buffer, text string) error {
	mt, quoted, err := Quote(text)
	if err != nil {
		return err
	}
	if mt == grammar.Internationalized && !b.MailType().IsInternationalized() {
		return charsetError(text, b.MailType(), "non-ASCII text")
	}
	return b.WriteUTF8(quoted)
}
