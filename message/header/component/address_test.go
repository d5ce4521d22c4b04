package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

func TestMailbox_Trace(t *testing.T) {
	t.Parallel()

	b := tracing(t, grammar.Ascii)
	require.NoError(t, component.MustMailbox("", "affen@haus").Encode(b))
	assert.Equal(t, "<affen@haus>", b.String())
	assert.Equal(t, []encoder.TraceToken{
		encoder.Text("<"),
		encoder.MarkFWS,
		encoder.Text("affen"),
		encoder.MarkFWS,
		encoder.Text("@"),
		encoder.MarkFWS,
		encoder.Text("haus"),
		encoder.MarkFWS,
		encoder.Text(">"),
	}, b.Trace())
}

func TestMailbox_TraceWithName(t *testing.T) {
	t.Parallel()

	b := tracing(t, grammar.Ascii)
	require.NoError(t, component.MustMailbox("ay ya", "affen@haus").Encode(b))
	assert.Equal(t, "ay ya <affen@haus>", b.String())
	assert.Equal(t, []encoder.TraceToken{
		encoder.Text("ay"),
		encoder.MarkFWS,
		encoder.Text(" ya"),
		encoder.MarkFWS,
		encoder.Text(" <"),
		encoder.MarkFWS,
		encoder.Text("affen"),
		encoder.MarkFWS,
		encoder.Text("@"),
		encoder.MarkFWS,
		encoder.Text("haus"),
		encoder.MarkFWS,
		encoder.Text(">"),
	}, b.Trace())
}

func TestMailbox_Folds(t *testing.T) {
	t.Parallel()

	b, err := encoder.NewBuffer(encoder.Config{SoftLimit: 6})
	require.NoError(t, err)
	b.StartHeader()
	require.NoError(t, component.MustMailbox("", "affen@haus").Encode(b))
	b.FinishHeader()
	assert.Equal(t, "<affen\r\n @haus\r\n >\r\n", b.String())
}

func TestMailbox_International(t *testing.T) {
	t.Parallel()

	mb := component.MustMailbox("Jürgen", "info@bücher.example")
	assert.Equal(t, "=?utf8?Q?J=C3=BCrgen?= <info@xn--bcher-kva.example>", encode(t, mb, grammar.Ascii))
	assert.Equal(t, "Jürgen <info@bücher.example>", encode(t, mb, grammar.Internationalized))

	mb = component.MustMailbox("", "jü@example.com")
	_, err := component.EncodeString(mb, grammar.Ascii)
	assert.ErrorIs(t, err, encoder.ErrCharset)
	assert.Equal(t, "<jü@example.com>", encode(t, mb, grammar.Internationalized))
}

func TestEmail(t *testing.T) {
	t.Parallel()

	e, err := component.NewEmail("john doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "john doe", e.LocalPart)
	assert.Equal(t, component.Domain("example.com"), e.Domain)
	assert.Equal(t, "john doe@example.com", e.String())
	assert.Equal(t, `"john\ doe"@example.com`, encode(t, e, grammar.Ascii))

	e, err = component.NewEmail("first.last@[192.0.2.1]")
	require.NoError(t, err)
	assert.True(t, e.Domain.IsLiteral())
	assert.Equal(t, "first.last@[192.0.2.1]", encode(t, e, grammar.Ascii))

	for _, bad := range []string{"", "nope", "@example.com", "local@", "a@exa mple.com", "bell\x07@example.com"} {
		_, err = component.NewEmail(bad)
		assert.ErrorIs(t, err, component.ErrInvalidEmail, bad)
	}
}

func TestDomain(t *testing.T) {
	t.Parallel()

	d, err := component.NewDomain("bücher.example")
	require.NoError(t, err)
	a, err := d.ASCII()
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva.example", a)

	_, err = component.NewDomain("a..b")
	assert.ErrorIs(t, err, component.ErrInvalidDomain)

	_, err = component.EncodeString(component.Domain(""), grammar.Ascii)
	assert.ErrorIs(t, err, encoder.ErrEmptyRequiredValue)
}

func TestMailboxList(t *testing.T) {
	t.Parallel()

	ml := component.MailboxList{
		component.MustMailbox("Alice", "alice@example.com"),
		component.MustMailbox("", "bob@example.com"),
	}
	assert.Equal(t, "Alice <alice@example.com>, <bob@example.com>", encode(t, ml, grammar.Ascii))

	_, err := component.EncodeString(component.MailboxList{}, grammar.Ascii)
	assert.ErrorIs(t, err, encoder.ErrEmptyRequiredValue)
}

func TestGroup(t *testing.T) {
	t.Parallel()

	g := component.Group{
		DisplayName: component.MustPhrase("friends"),
		Members: []component.Mailbox{
			component.MustMailbox("", "a@example.com"),
			component.MustMailbox("Bob", "bob@example.com"),
		},
	}
	assert.Equal(t, "friends: <a@example.com>, Bob <bob@example.com>;", encode(t, g, grammar.Ascii))

	empty := component.Group{DisplayName: component.MustPhrase("undisclosed recipients")}
	assert.Equal(t, "undisclosed recipients:;", encode(t, empty, grammar.Ascii))

	al := component.AddressList{component.MustMailbox("", "c@example.com"), g}
	assert.Equal(t, "<c@example.com>, friends: <a@example.com>, Bob <bob@example.com>;",
		encode(t, al, grammar.Ascii))
	assert.Len(t, al.Mailboxes(), 3)
}

func TestParseAddressList(t *testing.T) {
	t.Parallel()

	al, err := component.ParseAddressList("Sterling <sterling@example.com>, bob@example.com")
	require.NoError(t, err)
	require.Len(t, al, 2)
	assert.Equal(t, "Sterling <sterling@example.com>, <bob@example.com>", encode(t, al, grammar.Ascii))

	ml, err := component.ParseMailboxList("sterling@example.com")
	require.NoError(t, err)
	require.Len(t, ml, 1)
	assert.Equal(t, "sterling@example.com", ml[0].Email.String())
}

func TestParseAddressList_International(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"Jürgen <juergen@example.com>",
		`"Jürgen" <juergen@example.com>`,
	} {
		al, err := component.ParseAddressList(s)
		require.NoError(t, err, s)
		require.Len(t, al, 1, s)
		assert.Equal(t, "=?utf8?Q?J=C3=BCrgen?= <juergen@example.com>", encode(t, al, grammar.Ascii), s)
		assert.Equal(t, "Jürgen <juergen@example.com>", encode(t, al, grammar.Internationalized), s)
	}

	al, err := component.ParseAddressList("jürgen@example.com, Bob <bob@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "<jürgen@example.com>, Bob <bob@example.com>", encode(t, al, grammar.Internationalized))

	ml, err := component.ParseMailboxList("Jürgen <juergen@example.com>")
	require.NoError(t, err)
	require.Len(t, ml, 1)
	assert.Equal(t, "juergen@example.com", ml[0].Email.String())

	_, err = component.ParseAddressList("Jürgen <<juergen")
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<>", encode(t, component.Path{}, grammar.Ascii))

	e := component.MustEmail("bounce@example.com")
	assert.Equal(t, "<bounce@example.com>", encode(t, component.Path{Email: &e}, grammar.Ascii))
}
