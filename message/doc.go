// Package message writes single part email messages. An Opaque is a header
// plus a body; writing it encodes the header for the negotiated MailType and
// applies the Content-Transfer-Encoding to the body.
//
// Build a message with a Buffer:
//
//	buf := &message.Buffer{}
//	_ = buf.SetSubject("Grüße")
//	_, _ = fmt.Fprintln(buf, "Hello World!")
//
//	msg, err := buf.Opaque()
//	if err != nil {
//	  panic(err)
//	}
//
//	_, _ = msg.Encode(os.Stdout, grammar.Ascii)
//
// Multipart assembly is left to the caller.
package message
