package component

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
	"golang.org/x/net/idna"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Domain is the right hand side of an address: a dot-atom such as
// "example.com" or a domain literal such as "[192.0.2.1]". International
// domain names are kept in their Unicode form and converted to punycode when
// written to a Buffer that is not Internationalized.
type Domain string

// NewDomain validates s as a domain.
func NewDomain(s string) (Domain, error) {
	if grammar.IsDomainLiteral(s, grammar.Ascii) || grammar.IsDotAtom(s, grammar.Internationalized) {
		return Domain(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDomain, s)
}

// IsLiteral returns true for a domain literal.
func (d Domain) IsLiteral() bool {
	return strings.HasPrefix(string(d), "[")
}

// ASCII returns the punycode form of the domain.
func (d Domain) ASCII() (string, error) {
	s := string(d)
	if d.IsLiteral() || grammar.IsASCII(s) {
		return s, nil
	}
	a, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidDomain, s, err)
	}
	return a, nil
}

// Encode writes the domain.
func (d Domain) Encode(b *encoder.Buffer) error {
	if d == "" {
		return encoder.ErrEmptyRequiredValue
	}

	if b.MailType().IsInternationalized() {
		return b.WriteUTF8(string(d))
	}

	a, err := d.ASCII()
	if err != nil {
		return err
	}
	return b.WriteStr(a)
}

// Email is a bare addr-spec, local-part@domain.
type Email struct {
	LocalPart string
	Domain    Domain
}

// NewEmail splits s at its last "@" and validates both halves. The local part
// may be anything that can be written as a dot-atom or a quoted-string.
func NewEmail(s string) (Email, error) {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return Email{}, fmt.Errorf("%w: %q", ErrInvalidEmail, s)
	}

	local := s[:at]
	if _, _, err := encoder.Quote(local); err != nil {
		return Email{}, fmt.Errorf("%w: %q: %w", ErrInvalidEmail, s, err)
	}

	d, err := NewDomain(s[at+1:])
	if err != nil {
		return Email{}, fmt.Errorf("%w: %q: %w", ErrInvalidEmail, s, err)
	}

	return Email{LocalPart: local, Domain: d}, nil
}

// MustEmail is NewEmail that panics on error.
func MustEmail(s string) Email {
	e, err := NewEmail(s)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns local-part@domain without any quoting.
func (e Email) String() string {
	return e.LocalPart + "@" + string(e.Domain)
}

// Encode writes the address with fold points around the "@".
func (e Email) Encode(b *encoder.Buffer) error {
	if e.LocalPart == "" {
		return encoder.ErrEmptyRequiredValue
	}

	mt := b.MailType()
	var err error
	if grammar.IsDotAtom(e.LocalPart, mt) {
		err = b.WriteUTF8(e.LocalPart)
	} else {
		err = encoder.WriteQuoted(b, e.LocalPart)
	}
	if err != nil {
		return err
	}

	b.MarkFWSPos()
	if err := b.WriteChar('@'); err != nil {
		return err
	}
	b.MarkFWSPos()

	return e.Domain.Encode(b)
}

// writeAngle writes "<" email ">" with fold points inside the brackets.
func writeAngle(b *encoder.Buffer, e *Email) error {
	if err := b.WriteChar('<'); err != nil {
		return err
	}
	if e != nil {
		b.MarkFWSPos()
		if err := e.Encode(b); err != nil {
			return err
		}
		b.MarkFWSPos()
	}
	return b.WriteChar('>')
}

// Address is either a Mailbox or a Group.
type Address interface {
	Component
	isAddress()
}

// Mailbox is an address with an optional display name.
type Mailbox struct {
	// DisplayName is nil when the mailbox has no name.
	DisplayName Phrase
	Email       Email
}

// NewMailbox builds a Mailbox. An empty or blank displayName leaves the
// mailbox unnamed.
func NewMailbox(displayName, email string) (Mailbox, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Mailbox{}, err
	}

	var name Phrase
	if strings.TrimSpace(displayName) != "" {
		name, err = NewPhrase(displayName)
		if err != nil {
			return Mailbox{}, err
		}
	}

	return Mailbox{DisplayName: name, Email: e}, nil
}

// MustMailbox is NewMailbox that panics on error.
func MustMailbox(displayName, email string) Mailbox {
	mb, err := NewMailbox(displayName, email)
	if err != nil {
		panic(err)
	}
	return mb
}

func (Mailbox) isAddress() {}

// Encode writes `name <email>`, or `<email>` without a name.
func (mb Mailbox) Encode(b *encoder.Buffer) error {
	if len(mb.DisplayName) > 0 {
		if err := mb.DisplayName.Encode(b); err != nil {
			return err
		}
		if err := b.WriteFWS(); err != nil {
			return err
		}
	}
	return writeAngle(b, &mb.Email)
}

// MailboxList is a non-empty comma separated list of mailboxes.
type MailboxList []Mailbox

// Encode writes the mailboxes.
func (ml MailboxList) Encode(b *encoder.Buffer) error {
	if len(ml) == 0 {
		return encoder.ErrEmptyRequiredValue
	}
	for i, mb := range ml {
		if err := writeListItem(b, i, mb); err != nil {
			return err
		}
	}
	return nil
}

func writeListItem(b *encoder.Buffer, i int, c Component) error {
	if i > 0 {
		if err := b.WriteChar(','); err != nil {
			return err
		}
		if err := b.WriteFWS(); err != nil {
			return err
		}
	}
	return c.Encode(b)
}

// Group is a named, possibly empty, list of mailboxes.
type Group struct {
	DisplayName Phrase
	Members     []Mailbox
}

func (Group) isAddress() {}

// Encode writes `name: member, member;`.
func (g Group) Encode(b *encoder.Buffer) error {
	if err := g.DisplayName.Encode(b); err != nil {
		return err
	}
	if err := b.WriteChar(':'); err != nil {
		return err
	}
	for i, mb := range g.Members {
		if i > 0 {
			if err := b.WriteChar(','); err != nil {
				return err
			}
		}
		if err := b.WriteFWS(); err != nil {
			return err
		}
		if err := mb.Encode(b); err != nil {
			return err
		}
	}
	return b.WriteChar(';')
}

// AddressList is a non-empty comma separated list of mailboxes and groups.
type AddressList []Address

// Encode writes the addresses.
func (al AddressList) Encode(b *encoder.Buffer) error {
	if len(al) == 0 {
		return encoder.ErrEmptyRequiredValue
	}
	for i, a := range al {
		if err := writeListItem(b, i, a); err != nil {
			return err
		}
	}
	return nil
}

// Mailboxes flattens the list, expanding groups into their members.
func (al AddressList) Mailboxes() MailboxList {
	var ml MailboxList
	for _, a := range al {
		switch v := a.(type) {
		case Mailbox:
			ml = append(ml, v)
		case Group:
			ml = append(ml, v.Members...)
		}
	}
	return ml
}

// ParseAddressList parses an address list in the usual header syntax, e.g.
// `"Sterling" <s@example.com>, friends: a@example.com;`. Lists holding UTF-8
// display names or addresses (RFC 6532) are parsed too, but the members of a
// group in such a list are returned as plain mailboxes.
func ParseAddressList(s string) (AddressList, error) {
	parsed, err := addr.ParseEmailAddressList(s)
	if err == nil {
		return FromAddressList(parsed)
	}

	if grammar.IsASCII(s) {
		return nil, err
	}

	intl, ierr := mail.ParseAddressList(s)
	if ierr != nil {
		return nil, fmt.Errorf("%w: %w", err, ierr)
	}

	out := make(AddressList, 0, len(intl))
	for _, a := range intl {
		mb, err := NewMailbox(a.Name, a.Address)
		if err != nil {
			return nil, err
		}
		out = append(out, mb)
	}
	return out, nil
}

// ParseMailboxList parses a list of mailboxes. Groups are rejected.
func ParseMailboxList(s string) (MailboxList, error) {
	al, err := ParseAddressList(s)
	if err != nil {
		return nil, err
	}

	ml := make(MailboxList, 0, len(al))
	for _, a := range al {
		mb, ok := a.(Mailbox)
		if !ok {
			return nil, fmt.Errorf("%w: group not allowed in mailbox list", ErrInvalidEmail)
		}
		ml = append(ml, mb)
	}
	return ml, nil
}

// addrGroup is implemented by the group type of the address parser.
type addrGroup interface {
	MailboxList() addr.MailboxList
}

// FromAddressList converts the output of the address parser to components.
func FromAddressList(al addr.AddressList) (AddressList, error) {
	out := make(AddressList, 0, len(al))
	for _, a := range al {
		if g, ok := a.(addrGroup); ok {
			name, err := NewPhrase(a.DisplayName())
			if err != nil {
				return nil, err
			}

			grp := Group{DisplayName: name}
			for _, m := range g.MailboxList() {
				mb, err := NewMailbox(m.DisplayName(), m.Address())
				if err != nil {
					return nil, err
				}
				grp.Members = append(grp.Members, mb)
			}

			out = append(out, grp)
			continue
		}

		mb, err := NewMailbox(a.DisplayName(), a.Address())
		if err != nil {
			return nil, err
		}
		out = append(out, mb)
	}
	return out, nil
}

// Path is the value of a Return-Path field: an angle address or "<>".
type Path struct {
	// Email is nil for the null reverse path.
	Email *Email
}

// Encode writes the path.
func (p Path) Encode(b *encoder.Buffer) error {
	return writeAngle(b, p.Email)
}
