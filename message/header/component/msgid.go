package component

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// MessageID is a msg-id, <left@right>. It is always written in one piece
// since no folding is allowed inside the angle brackets.
type MessageID struct {
	Left  string
	Right string
}

// NewMessageID parses a message id with or without its angle brackets.
func NewMessageID(s string) (MessageID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")

	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return MessageID{}, fmt.Errorf("%w: %q", ErrInvalidMessageID, s)
	}

	id := MessageID{Left: s[:at], Right: s[at+1:]}
	if !grammar.IsDotAtom(id.Left, grammar.Internationalized) {
		return MessageID{}, fmt.Errorf("%w: bad left part %q", ErrInvalidMessageID, id.Left)
	}
	if !grammar.IsDotAtom(id.Right, grammar.Internationalized) &&
		!grammar.IsDomainLiteral(id.Right, grammar.Ascii) {
		return MessageID{}, fmt.Errorf("%w: bad right part %q", ErrInvalidMessageID, id.Right)
	}

	return id, nil
}

// GenerateMessageID returns a fresh random message id for the given domain.
func GenerateMessageID(domain string) MessageID {
	return MessageID{Left: uuid.NewString(), Right: domain}
}

// String returns the id in angle brackets.
func (id MessageID) String() string {
	return "<" + id.Left + "@" + id.Right + ">"
}

// Encode writes the id.
func (id MessageID) Encode(b *encoder.Buffer) error {
	if id.Left == "" || id.Right == "" {
		return encoder.ErrEmptyRequiredValue
	}
	return b.WriteUTF8(id.String())
}

// ContentID is the msg-id of a MIME part.
type ContentID struct {
	MessageID
}

// NewContentID parses a content id.
func NewContentID(s string) (ContentID, error) {
	id, err := NewMessageID(s)
	return ContentID{id}, err
}

// GenerateContentID returns a fresh random content id for the given domain.
func GenerateContentID(domain string) ContentID {
	return ContentID{GenerateMessageID(domain)}
}

// MessageIDList is a whitespace separated list of ids, as used by References
// and In-Reply-To.
type MessageIDList []MessageID

// ParseMessageIDList parses whitespace separated ids.
func ParseMessageIDList(s string) (MessageIDList, error) {
	fields := strings.Fields(s)
	ids := make(MessageIDList, 0, len(fields))
	for _, f := range fields {
		id, err := NewMessageID(f)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Encode writes the ids.
func (l MessageIDList) Encode(b *encoder.Buffer) error {
	if len(l) == 0 {
		return encoder.ErrEmptyRequiredValue
	}
	for i, id := range l {
		if i > 0 {
			if err := b.WriteFWS(); err != nil {
				return err
			}
		}
		if err := id.Encode(b); err != nil {
			return err
		}
	}
	return nil
}
