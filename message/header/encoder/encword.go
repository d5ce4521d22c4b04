package encoder

import (
	"encoding/base64"
	"unicode/utf8"

	"github.com/zostay/go-mailheader/message/header/grammar"
)

// EncodedWordEncoding selects the payload codec of an RFC 2047 encoded word.
type EncodedWordEncoding int

const (
	QuotedPrintable EncodedWordEncoding = iota // "Q" encoding
	Base64                                     // "B" encoding
)

const (
	// Charset is the charset name written into every encoded word.
	Charset = "utf8"

	// MaxEncodedWordLen is the maximum length of a single encoded word,
	// including the "=?" and "?=" wrapper.
	MaxEncodedWordLen = 75

	// encoded word overhead: "=?" + "?X?" + "?="
	encodedWordOverhead = 7

	// MaxPayloadLen is the payload budget of a single encoded word.
	MaxPayloadLen = MaxEncodedWordLen - encodedWordOverhead - len(Charset)
)

// String returns the name of the encoding.
func (e EncodedWordEncoding) String() string {
	if e == Base64 {
		return "base64"
	}
	return "quoted-printable"
}

// Tag returns the letter identifying the encoding inside an encoded word.
func (e EncodedWordEncoding) Tag() byte {
	if e == Base64 {
		return 'B'
	}
	return 'Q'
}

// EncodedWordWriter receives the output of EncodeWord. The writer owns the
// "=?utf8?X?" and "?=" wrappers of each token and whatever separates two
// tokens; EncodeWord only writes payload characters and asks for a new token
// when the open one is full.
type EncodedWordWriter interface {
	// WriteChar writes a payload character to the open token.
	WriteChar(c byte)

	// WriteCharset writes the charset name.
	WriteCharset()

	// MaxPayloadLen returns how many payload characters still fit into the
	// open token.
	MaxPayloadLen() int

	// StartNextEncodedWord closes the open token, writes a separator and
	// opens a new token.
	StartNextEncodedWord()
}

// EncodeWord writes text as the payload of one or more encoded words to w. A
// token boundary never falls inside a multi-byte character. Invalid UTF-8
// fails with a CharsetError naming Internationalized, as no MailType can
// carry it.
func EncodeWord(text string, enc EncodedWordEncoding, w EncodedWordWriter) error {
	if !utf8.ValidString(text) {
		return charsetError(text, grammar.Internationalized, "invalid UTF-8")
	}

	if enc == Base64 {
		return encodeBase64(text, w)
	}
	return encodeQ(text, w)
}

func encodeBase64(text string, w EncodedWordWriter) error {
	rest := text
	for len(rest) > 0 {
		budget := w.MaxPayloadLen()
		n := budget / 4 * 3
		if n >= len(rest) {
			n = len(rest)
		} else {
			for n > 0 && !utf8.RuneStart(rest[n]) {
				n--
			}
		}

		if n == 0 {
			_, size := utf8.DecodeRuneInString(rest)
			return &EncodedWordOverflowError{
				Text:       rest[:size],
				Budget:     budget,
				Encoding:   Base64,
				NeededSize: base64.StdEncoding.EncodedLen(size),
			}
		}

		payload := base64.StdEncoding.EncodeToString([]byte(rest[:n]))
		for i := 0; i < len(payload); i++ {
			w.WriteChar(payload[i])
		}

		rest = rest[n:]
		if len(rest) > 0 {
			w.StartNextEncodedWord()
		}
	}

	return nil
}

const upperhex = "0123456789ABCDEF"

// isQSafe reports the characters that may appear literally in a "Q" encoded
// word anywhere in a header, including phrases (RFC 2047 section 5).
func isQSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '*', '+', '-', '/':
		return true
	}
	return false
}

func qLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isQSafe(s[i]) {
			n++
		} else {
			n += 3
		}
	}
	return n
}

func encodeQ(text string, w EncodedWordWriter) error {
	written := 0
	rest := text
	for len(rest) > 0 {
		_, size := utf8.DecodeRuneInString(rest)
		ch := rest[:size]
		need := qLen(ch)

		if need > w.MaxPayloadLen() {
			if written == 0 {
				return &EncodedWordOverflowError{
					Text:       ch,
					Budget:     w.MaxPayloadLen(),
					Encoding:   QuotedPrintable,
					NeededSize: need,
				}
			}
			w.StartNextEncodedWord()
			written = 0
			continue
		}

		for i := 0; i < len(ch); i++ {
			c := ch[i]
			if isQSafe(c) {
				w.WriteChar(c)
				continue
			}
			w.WriteChar('=')
			w.WriteChar(upperhex[c>>4])
			w.WriteChar(upperhex[c&0x0f])
		}

		written += need
		rest = rest[size:]
	}

	return nil
}

// bufferWordWriter adapts a Buffer to EncodedWordWriter. Tokens are separated
// by WriteFWS, so the Buffer may fold between any two tokens but never inside
// one.
type bufferWordWriter struct {
	b       *Buffer
	enc     EncodedWordEncoding
	written int
	err     error
}

func (w *bufferWordWriter) check(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *bufferWordWriter) WriteChar(c byte) {
	w.check(w.b.writeByte(c))
	w.written++
}

func (w *bufferWordWriter) WriteCharset() {
	w.check(w.b.writeString(Charset))
}

func (w *bufferWordWriter) MaxPayloadLen() int {
	return MaxPayloadLen - w.written
}

func (w *bufferWordWriter) open() {
	w.check(w.b.writeString("=?"))
	w.WriteCharset()
	w.check(w.b.writeString("?" + string(w.enc.Tag()) + "?"))
	w.written = 0
}

func (w *bufferWordWriter) close() {
	w.check(w.b.writeString("?="))
}

func (w *bufferWordWriter) StartNextEncodedWord() {
	w.close()
	w.check(w.b.WriteFWS())
	w.open()
}

// WriteEncodedWord writes text to b as one or more encoded words separated by
// folding whitespace. Empty text writes nothing.
func WriteEncodedWord(b *Buffer, text string, enc EncodedWordEncoding) error {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return charsetError(text, b.MailType(), "invalid UTF-8")
	}

	w := &bufferWordWriter{b: b, enc: enc}
	w.open()
	if err := EncodeWord(text, enc, w); err != nil {
		return err
	}
	w.close()

	return w.err
}
