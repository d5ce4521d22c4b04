package header_test

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mailheader/message/header"
	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

func ExampleHeader_Encode() {
	h := &header.Header{}
	_ = h.SetFrom(component.MustMailbox("Jürgen", "juergen@example.com"))
	_ = h.SetSubject("Grüße")

	for _, mt := range []grammar.MailType{grammar.Ascii, grammar.Internationalized} {
		b := encoder.New(mt)
		if err := h.Encode(b); err != nil {
			panic(err)
		}
		fmt.Print(strings.ReplaceAll(b.String(), "\r\n", "\n"))
	}

	// Output:
	// From: =?utf8?Q?J=C3=BCrgen?= <juergen@example.com>
	// Subject: =?utf8?Q?Gr=C3=BC=C3=9Fe?=
	//
	// From: Jürgen <juergen@example.com>
	// Subject: Grüße
}
