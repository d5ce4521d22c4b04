package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mjl-/sconf"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Config describes a message to render.
type Config struct {
	MailType    string        `sconf:"optional" sconf-doc:"Capabilities of the transport: ascii, mime8bit or internationalized. Default ascii."`
	SoftLimit   int           `sconf:"optional" sconf-doc:"Line length past which header lines are folded. Default 78."`
	HardLimit   int           `sconf:"optional" sconf-doc:"Line length past which a header field cannot be written. Default 998."`
	SkipInvalid bool          `sconf:"optional" sconf-doc:"Leave out header fields that cannot be encoded instead of failing."`
	Headers     []HeaderField `sconf-doc:"Header fields in the order they are written."`
	Body        string        `sconf:"optional" sconf-doc:"Single line message body. A transfer encoding is picked for it unless a Content-Transfer-Encoding header is given."`
}

// HeaderField is a single header field of the message.
type HeaderField struct {
	Name string `sconf-doc:"Field name, e.g. Subject."`
	Body string `sconf-doc:"Unencoded field body, e.g. Grüße."`
}

// ParseConfig reads a Config from the sconf file at path.
func ParseConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadConfig(f)
}

// ReadConfig reads a Config in sconf format from r.
func ReadConfig(r io.Reader) (*Config, error) {
	var c Config
	if err := sconf.Parse(r, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &c, nil
}

// EncoderConfig returns the encoder settings named by c.
func (c *Config) EncoderConfig() (encoder.Config, error) {
	mt := grammar.Ascii
	if c.MailType != "" {
		var ok bool
		mt, ok = grammar.ParseMailType(c.MailType)
		if !ok {
			return encoder.Config{}, fmt.Errorf("unknown mail type %q", c.MailType)
		}
	}

	ec := encoder.DefaultConfig(mt)
	if c.SoftLimit != 0 {
		ec.SoftLimit = c.SoftLimit
	}
	if c.HardLimit != 0 {
		ec.HardLimit = c.HardLimit
	}

	return ec, nil
}
