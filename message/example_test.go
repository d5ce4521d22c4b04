package message_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/zostay/go-mailheader/message"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

func ExampleOpaque_Encode() {
	msg := &message.Opaque{Reader: strings.NewReader("Hello World\n")}
	_ = msg.SetSubject("A message to nowhere")

	out := &strings.Builder{}
	_, _ = msg.Encode(out, grammar.Ascii)
	fmt.Print(strings.ReplaceAll(out.String(), "\r\n", "\n"))

	// Output:
	// Subject: A message to nowhere
	//
	// Hello World
}

func ExampleBuffer_Opaque() {
	buf := &message.Buffer{}
	_ = buf.SetSubject("Some spam for you inbox")
	_, _ = fmt.Fprintln(buf, "Hello World!")
	msg, err := buf.Opaque()
	if err != nil {
		panic(err)
	}
	_, _ = msg.WriteTo(os.Stdout)
}
