package transfer_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
	"github.com/zostay/go-mailheader/message/transfer"
)

const dec = `1 Timothy 6:10 - For the love of money is a root of all kinds of evils. It is through this craving that some have wandered away from the faith and pierced themselves with many pangs.`
const enc = "MSBUaW1vdGh5IDY6MTAgLSBGb3IgdGhlIGxvdmUgb2YgbW9uZXkgaXMgYSByb290IG9mIGFsbCBr\r\n" +
	"aW5kcyBvZiBldmlscy4gSXQgaXMgdGhyb3VnaCB0aGlzIGNyYXZpbmcgdGhhdCBzb21lIGhhdmUg\r\n" +
	"d2FuZGVyZWQgYXdheSBmcm9tIHRoZSBmYWl0aCBhbmQgcGllcmNlZCB0aGVtc2VsdmVzIHdpdGgg\r\n" +
	"bWFueSBwYW5ncy4="

func TestEncoding_NewDecoder(t *testing.T) {
	t.Parallel()

	r := strings.NewReader(enc)
	tdr := transfer.Base64.NewDecoder(r)
	tdb, err := io.ReadAll(tdr)
	assert.NoError(t, err)
	assert.Equal(t, []byte(dec), tdb)
}

func TestEncoding_NewEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	tdwc := transfer.Base64.NewEncoder(w)
	n, err := tdwc.Write([]byte(dec))
	assert.Equal(t, len(dec), n)
	assert.NoError(t, err)

	err = tdwc.Close()
	assert.NoError(t, err)

	assert.Equal(t, []byte(enc), w.Bytes())
}

func TestParse(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]transfer.Encoding{
		"":                 transfer.Bit7,
		"7bit":             transfer.Bit7,
		"8BIT":             transfer.Bit8,
		" binary ":         transfer.Binary,
		"Quoted-Printable": transfer.QuotedPrintable,
		"base64":           transfer.Base64,
	} {
		got, err := transfer.Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := transfer.Parse("uuencode")
	assert.ErrorIs(t, err, transfer.ErrUnknownEncoding)

	assert.Equal(t, "quoted-printable", transfer.QuotedPrintable.String())
	assert.Equal(t, "Encoding(42)", transfer.Encoding(42).String())
}

func TestEncoding_Encode(t *testing.T) {
	t.Parallel()

	b := encoder.New(grammar.Ascii)
	require.NoError(t, transfer.Base64.Encode(b))
	assert.Equal(t, "base64", b.String())

	assert.ErrorIs(t, transfer.Bit8.Encode(encoder.New(grammar.Ascii)), transfer.ErrNotSupported)
	assert.ErrorIs(t, transfer.Binary.Encode(encoder.New(grammar.Ascii)), transfer.ErrNotSupported)

	b = encoder.New(grammar.Mime8BitEnabled)
	require.NoError(t, transfer.Bit8.Encode(b))
	assert.Equal(t, "8bit", b.String())
}

func TestChoose(t *testing.T) {
	t.Parallel()

	assert.Equal(t, transfer.Bit7, transfer.Choose([]byte("plain\r\ntext\n"), "text/plain"))
	assert.Equal(t, transfer.Bit7, transfer.Choose([]byte("{}"), "application/octet-stream"))
	assert.Equal(t, transfer.QuotedPrintable, transfer.Choose([]byte("Grüße"), "text/plain; charset=utf-8"))
	assert.Equal(t, transfer.QuotedPrintable, transfer.Choose([]byte("bare\rcr"), "text/plain"))
	assert.Equal(t, transfer.QuotedPrintable, transfer.Choose([]byte(`{"a":"ü"}`), "application/json"))
	assert.Equal(t, transfer.QuotedPrintable, transfer.Choose([]byte("<ü/>"), "image/svg+xml"))
	assert.Equal(t, transfer.Base64, transfer.Choose([]byte{0x89, 'P', 'N', 'G'}, "image/png"))
	assert.Equal(t, transfer.Base64, transfer.Choose([]byte("nul\x00ü"), "text/plain"))

	long := []byte(strings.Repeat("x", encoder.DefaultHardLimit+1))
	assert.Equal(t, transfer.QuotedPrintable, transfer.Choose(long, "text/plain"))
	assert.Equal(t, transfer.Base64, transfer.Choose(long, "application/octet-stream"))
}

func TestChooseFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, transfer.QuotedPrintable, transfer.ChooseFor(grammar.Ascii, []byte("Grüße"), "text/plain"))
	assert.Equal(t, transfer.Bit8, transfer.ChooseFor(grammar.Mime8BitEnabled, []byte("Grüße"), "text/plain"))
	assert.Equal(t, transfer.Bit8, transfer.ChooseFor(grammar.Internationalized, []byte("Grüße"), "text/plain"))
	assert.Equal(t, transfer.QuotedPrintable, transfer.ChooseFor(grammar.Mime8BitEnabled, []byte("\xff\xfe"), "text/plain"))
	assert.Equal(t, transfer.Bit7, transfer.ChooseFor(grammar.Mime8BitEnabled, []byte("ascii"), "text/plain"))
}
