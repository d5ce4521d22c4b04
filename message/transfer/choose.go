package transfer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Choose picks a transfer encoding for a body of the given media type:
// 7bit if the data is plain US-ASCII text, quoted-printable if the media type
// is textual, base64 otherwise.
func Choose(data []byte, mediaType string) Encoding {
	if isSevenBitClean(data) {
		return Bit7
	}
	if isTextual(mediaType) && !bytes.Contains(data, []byte{0}) {
		return QuotedPrintable
	}
	return Base64
}

// ChooseFor is Choose that prefers 8bit over quoted-printable when the
// MailType allows 8-bit bodies and the data is UTF-8 text with short lines.
func ChooseFor(mt grammar.MailType, data []byte, mediaType string) Encoding {
	e := Choose(data, mediaType)
	if e == QuotedPrintable && mt.Supports8BitBodies() && utf8.Valid(data) && shortLines(data) {
		return Bit8
	}
	return e
}

// isSevenBitClean returns true for data without NUL, bytes above 127 or bare
// CRs whose lines all fit the hard line limit.
func isSevenBitClean(data []byte) bool {
	for i, c := range data {
		switch {
		case c == 0, c >= utf8.RuneSelf:
			return false
		case c == '\r' && (i+1 == len(data) || data[i+1] != '\n'):
			return false
		}
	}
	return shortLines(data)
}

func shortLines(data []byte) bool {
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) > encoder.DefaultHardLimit {
			return false
		}
	}
	return true
}

func isTextual(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mt, _, found := strings.Cut(mediaType, ";"); found {
		mediaType = strings.TrimSpace(mt)
	}

	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case strings.HasSuffix(mediaType, "+xml"), strings.HasSuffix(mediaType, "+json"):
		return true
	}

	switch mediaType {
	case "application/json", "application/xml", "application/javascript":
		return true
	}

	return false
}
