package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailheader/message/header/grammar"
)

func TestIsAText(t *testing.T) {
	t.Parallel()

	for _, r := range "abcXYZ019!#$%&'*+-/=?^_`{|}~" {
		assert.True(t, grammar.IsAText(r, grammar.Ascii), "atext %q", r)
	}

	for _, r := range " \t()<>[]:;@\\,.\"\x00\x7f" {
		assert.False(t, grammar.IsAText(r, grammar.Internationalized), "not atext %q", r)
	}

	assert.False(t, grammar.IsAText('↑', grammar.Ascii))
	assert.False(t, grammar.IsAText('↑', grammar.Mime8BitEnabled))
	assert.True(t, grammar.IsAText('↑', grammar.Internationalized))
}

func TestIsQText(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsQText('@', grammar.Ascii))
	assert.True(t, grammar.IsQText('(', grammar.Ascii))
	assert.False(t, grammar.IsQText('"', grammar.Ascii))
	assert.False(t, grammar.IsQText('\\', grammar.Ascii))
	assert.False(t, grammar.IsQText(' ', grammar.Ascii))
	assert.False(t, grammar.IsQText('ü', grammar.Ascii))
	assert.True(t, grammar.IsQText('ü', grammar.Internationalized))
}

func TestIsVChar(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsVChar('!', grammar.Ascii))
	assert.True(t, grammar.IsVChar('~', grammar.Ascii))
	assert.False(t, grammar.IsVChar(' ', grammar.Ascii))
	assert.False(t, grammar.IsVChar('\x7f', grammar.Internationalized))
	assert.False(t, grammar.IsVChar('→', grammar.Ascii))
	assert.True(t, grammar.IsVChar('→', grammar.Internationalized))
}

func TestIsDText(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsDText('1', grammar.Ascii))
	assert.False(t, grammar.IsDText('[', grammar.Ascii))
	assert.False(t, grammar.IsDText(']', grammar.Ascii))
	assert.False(t, grammar.IsDText('\\', grammar.Ascii))
}

func TestIsWS(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsWS(' ', grammar.Ascii))
	assert.True(t, grammar.IsWS('\t', grammar.Ascii))
	assert.False(t, grammar.IsWS('\r', grammar.Ascii))
	assert.False(t, grammar.IsWS('\n', grammar.Ascii))
}

func TestIsToken(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsTokenString("attachment"))
	assert.True(t, grammar.IsTokenString("7bit"))
	assert.False(t, grammar.IsTokenString("foo bar"))
	assert.False(t, grammar.IsTokenString("a=b"))
	assert.False(t, grammar.IsTokenString(""))
	assert.False(t, grammar.IsTokenString("ümlaut"))
}

func TestIsDotAtom(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsDotAtom("affen", grammar.Ascii))
	assert.True(t, grammar.IsDotAtom("a.b.c", grammar.Ascii))
	assert.False(t, grammar.IsDotAtom("a..b", grammar.Ascii))
	assert.False(t, grammar.IsDotAtom(".a", grammar.Ascii))
	assert.False(t, grammar.IsDotAtom("a b", grammar.Ascii))
	assert.False(t, grammar.IsDotAtom("jürgen", grammar.Ascii))
	assert.True(t, grammar.IsDotAtom("jürgen", grammar.Internationalized))
}

func TestIsDomainLiteral(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsDomainLiteral("[127.0.0.1]", grammar.Ascii))
	assert.True(t, grammar.IsDomainLiteral("[]", grammar.Ascii))
	assert.False(t, grammar.IsDomainLiteral("127.0.0.1", grammar.Ascii))
	assert.False(t, grammar.IsDomainLiteral("[a[b]", grammar.Ascii))
}

func TestMailType(t *testing.T) {
	t.Parallel()

	for _, mt := range []grammar.MailType{grammar.Ascii, grammar.Mime8BitEnabled, grammar.Internationalized} {
		parsed, ok := grammar.ParseMailType(mt.String())
		assert.True(t, ok)
		assert.Equal(t, mt, parsed)
	}

	_, ok := grammar.ParseMailType("ebcdic")
	assert.False(t, ok)

	assert.False(t, grammar.Ascii.Supports8BitBodies())
	assert.True(t, grammar.Mime8BitEnabled.Supports8BitBodies())
	assert.False(t, grammar.Mime8BitEnabled.IsInternationalized())
	assert.True(t, grammar.Internationalized.IsInternationalized())
}

func TestIsASCII(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsASCII(""))
	assert.True(t, grammar.IsASCII("hello world"))
	assert.False(t, grammar.IsASCII("héllo"))
}

func TestIsFieldName(t *testing.T) {
	t.Parallel()

	assert.True(t, grammar.IsFieldName("X-Custom-Header"))
	assert.False(t, grammar.IsFieldName("Bad:Name"))
	assert.False(t, grammar.IsFieldName("Bad Name"))
	assert.False(t, grammar.IsFieldName(""))
}
