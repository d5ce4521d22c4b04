package message_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailheader/message"
	"github.com/zostay/go-mailheader/message/header"
	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/grammar"
	"github.com/zostay/go-mailheader/message/header/param"
	"github.com/zostay/go-mailheader/message/transfer"
)

func TestOpaque(t *testing.T) {
	t.Parallel()

	buf, expect, err := makeSimple()
	require.NoError(t, err)

	m, err := buf.Opaque()
	require.NoError(t, err)

	assert.Equal(t, &m.Header, m.GetHeader())
	assert.NotNil(t, m.GetReader())
	assert.False(t, m.IsEncoded())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(expect)), n)
	assert.Equal(t, expect, out.String())
}

func makeSimpleWithEncoding() (*message.Buffer, string, string, error) {
	buf := &message.Buffer{}

	_ = buf.SetSubject("test simple")
	_ = buf.SetTransferEncoding(transfer.QuotedPrintable)
	_ = buf.SetContentType(param.New("text/plain"))

	const (
		expect = "Subject: test simple\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"Content-Type: text/plain\r\n" +
			"\r\n"
		encoded = "I =E2=9D=A4 email!\r\n"
		decoded = "I ❤ email!\n"
	)

	_, err := fmt.Fprint(buf, decoded)

	return buf, expect + encoded, expect + decoded, err
}

func TestOpaque_TransferEncodingEncoded(t *testing.T) {
	t.Parallel()

	buf, expectEnc, _, err := makeSimpleWithEncoding()
	require.NoError(t, err)

	m, err := buf.Opaque()
	require.NoError(t, err)
	assert.False(t, m.IsEncoded())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(expectEnc)), n)
	assert.Equal(t, expectEnc, out.String())
}

func TestOpaque_TransferEncodingDecoded(t *testing.T) {
	t.Parallel()

	buf, _, expectDec, err := makeSimpleWithEncoding()
	require.NoError(t, err)

	// The body is not really encoded, which shows no encoding is applied.
	m := buf.OpaqueAlreadyEncoded()
	assert.True(t, m.IsEncoded())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(expectDec)), n)
	assert.Equal(t, expectDec, out.String())
}

func TestOpaque_NoBody(t *testing.T) {
	t.Parallel()

	m := &message.Opaque{}
	require.NoError(t, m.SetSubject("empty"))

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, "Subject: empty\r\n\r\n", out.String())
	assert.Equal(t, int64(out.Len()), n)
}

func TestOpaque_EncodeInternationalized(t *testing.T) {
	t.Parallel()

	m := &message.Opaque{Reader: strings.NewReader("Grüße\n")}
	require.NoError(t, m.SetSubject("Grüße"))
	require.NoError(t, m.SetTransferEncoding(transfer.Bit8))

	out := &bytes.Buffer{}
	_, err := m.Encode(out, grammar.Internationalized)
	assert.NoError(t, err)
	assert.Equal(t,
		"Subject: Grüße\r\n"+
			"Content-Transfer-Encoding: 8bit\r\n"+
			"\r\n"+
			"Grüße\r\n",
		out.String())
}

func TestOpaque_EncodeUnsupported(t *testing.T) {
	t.Parallel()

	m := &message.Opaque{Reader: strings.NewReader("Grüße\n")}
	require.NoError(t, m.SetTransferEncoding(transfer.Bit8))

	out := &bytes.Buffer{}
	n, err := m.Encode(out, grammar.Ascii)
	assert.ErrorIs(t, err, transfer.ErrNotSupported)
	assert.Equal(t, int64(0), n)
	assert.Empty(t, out.String())
}

func TestOpaque_EncodeHeaderError(t *testing.T) {
	t.Parallel()

	m := &message.Opaque{Reader: strings.NewReader("body\n")}
	require.NoError(t, m.SetValue("X-Empty", component.Unstructured{Text: " "}))

	out := &bytes.Buffer{}
	_, err := m.WriteTo(out)
	assert.Error(t, err)
	assert.Empty(t, out.String())

	m = &message.Opaque{Reader: strings.NewReader("body\n")}
	require.NoError(t, m.SetValue("X-Empty", component.Unstructured{Text: " "}))
	require.NoError(t, m.SetSubject("kept"))

	out.Reset()
	_, err = m.Encode(out, grammar.Ascii, header.WithSkipInvalid())
	assert.NoError(t, err)
	assert.Equal(t, "Subject: kept\r\n\r\nbody\r\n", out.String())
}

func TestAttachmentFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fn := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(fn, []byte{0, 1, 2, 0xff}, 0o600))

	m, err := message.AttachmentFile(fn, "application/octet-stream", "example.com")
	require.NoError(t, err)

	ct, err := m.GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", ct.MediaType())
	assert.Equal(t, "data.bin", ct.Parameter(param.Name))

	cd, err := m.GetContentDisposition()
	require.NoError(t, err)
	assert.Equal(t, "attachment", cd.Disposition())
	assert.Equal(t, "data.bin", cd.Filename())

	cte, err := m.GetTransferEncoding()
	require.NoError(t, err)
	assert.Equal(t, transfer.Base64, cte)

	cid, err := m.Get(header.ContentID)
	require.NoError(t, err)
	assert.IsType(t, component.ContentID{}, cid)
	assert.Equal(t, "example.com", cid.(component.ContentID).Right)

	out := &bytes.Buffer{}
	_, err = m.WriteTo(out)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "\r\n\r\nAAEC/w=="))
}

func TestAttachmentFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := message.AttachmentFile(filepath.Join(t.TempDir(), "missing"), "text/plain", "example.com")
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	fn := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(fn, []byte("a\n"), 0o600))

	_, err = message.AttachmentFile(fn, "not a media type", "example.com")
	assert.Error(t, err)
}
