package header

import (
	"strings"

	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/param"
	"github.com/zostay/go-mailheader/message/transfer"
)

// These are standard headers defined in RFC 5322, RFC 2045 and RFC 2183.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	Comments                = "Comments"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-ID"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-Reply-To"
	Keywords                = "Keywords"
	MessageID               = "Message-ID"
	MIMEVersion             = "MIME-Version"
	Received                = "Received"
	References              = "References"
	ReplyTo                 = "Reply-To"
	ReturnPath              = "Return-Path"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// Kind identifies a header field the library knows how to build. Fields with
// any other name are KindOther and hold a component.Raw value.
type Kind int

const (
	KindOther Kind = iota
	KindBcc
	KindCc
	KindComments
	KindContentDisposition
	KindContentID
	KindContentTransferEncoding
	KindContentType
	KindDate
	KindFrom
	KindInReplyTo
	KindKeywords
	KindMessageID
	KindMIMEVersion
	KindReceived
	KindReferences
	KindReplyTo
	KindReturnPath
	KindSender
	KindSubject
	KindTo
)

type kindInfo struct {
	name   string
	single bool
}

var kinds = [...]kindInfo{
	KindOther:                   {"", false},
	KindBcc:                     {Bcc, true},
	KindCc:                      {Cc, true},
	KindComments:                {Comments, false},
	KindContentDisposition:      {ContentDisposition, true},
	KindContentID:               {ContentID, true},
	KindContentTransferEncoding: {ContentTransferEncoding, true},
	KindContentType:             {ContentType, true},
	KindDate:                    {Date, true},
	KindFrom:                    {From, true},
	KindInReplyTo:               {InReplyTo, true},
	KindKeywords:                {Keywords, false},
	KindMessageID:               {MessageID, true},
	KindMIMEVersion:             {MIMEVersion, true},
	KindReceived:                {Received, false},
	KindReferences:              {References, true},
	KindReplyTo:                 {ReplyTo, true},
	KindReturnPath:              {ReturnPath, false},
	KindSender:                  {Sender, true},
	KindSubject:                 {Subject, true},
	KindTo:                      {To, true},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, info := range kinds {
		if info.name != "" {
			m[strings.ToLower(info.name)] = Kind(k)
		}
	}
	return m
}()

// KindOf returns the Kind of the field with the given name. Names are matched
// without regard to case.
func KindOf(name string) Kind {
	return kindsByName[strings.ToLower(name)]
}

// Name returns the canonical spelling of the field name, or an empty string
// for KindOther.
func (k Kind) Name() string {
	if k < 0 || int(k) >= len(kinds) {
		return ""
	}
	return kinds[k].name
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k == KindOther {
		return "other"
	}
	return k.Name()
}

// Single returns true if the field may appear at most once in a header.
func (k Kind) Single() bool {
	if k < 0 || int(k) >= len(kinds) {
		return false
	}
	return kinds[k].single
}

// Parse turns a field body written by hand into the value type of the kind.
func (k Kind) Parse(body string) (component.Component, error) {
	switch k {
	case KindBcc, KindCc, KindFrom, KindReplyTo, KindTo:
		return component.ParseAddressList(body)

	case KindSender:
		ml, err := component.ParseMailboxList(body)
		if err != nil {
			return nil, err
		}
		if len(ml) != 1 {
			return nil, ErrManyMailboxes
		}
		return ml[0], nil

	case KindComments, KindSubject:
		return component.NewUnstructured(body), nil

	case KindKeywords:
		return component.NewPhraseList(splitList(body)...)

	case KindDate:
		return component.ParseDateTime(body)

	case KindMessageID:
		return component.NewMessageID(body)

	case KindContentID:
		return component.NewContentID(body)

	case KindInReplyTo, KindReferences:
		return component.ParseMessageIDList(body)

	case KindReturnPath:
		return parsePath(body)

	case KindContentType, KindContentDisposition:
		return param.Parse(body)

	case KindContentTransferEncoding:
		return transfer.Parse(body)
	}

	return component.Raw(body), nil
}

func splitList(body string) []string {
	parts := strings.Split(body, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parsePath(body string) (component.Path, error) {
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "<")
	body = strings.TrimSuffix(body, ">")
	if strings.TrimSpace(body) == "" {
		return component.Path{}, nil
	}

	e, err := component.NewEmail(body)
	if err != nil {
		return component.Path{}, err
	}
	return component.Path{Email: &e}, nil
}
