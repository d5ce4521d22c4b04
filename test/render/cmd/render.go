package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailheader/message"
	"github.com/zostay/go-mailheader/message/header"
	"github.com/zostay/go-mailheader/message/header/encoder"
)

var (
	renderCmd = &cobra.Command{
		Use:   "message config",
		Short: "Writes the message described by an sconf file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRender,
	}

	trace bool
)

func init() {
	renderCmd.Flags().BoolVar(&trace, "trace", false, "print the encoder operations for the header to stderr")
	rootCmd.AddCommand(renderCmd)
}

func RunRender(cmd *cobra.Command, args []string) error {
	c, err := ParseConfig(args[0])
	if err != nil {
		return err
	}

	if trace {
		toks, err := Trace(c, logger)
		if err != nil {
			return err
		}
		for _, tok := range toks {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), tok)
		}
	}

	_, err = Render(cmd.OutOrStdout(), c, logger)
	return err
}

func (c *Config) header() (*header.Header, error) {
	h := &header.Header{}
	for _, f := range c.Headers {
		if err := h.Add(f.Name, f.Body); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (c *Config) encodeOptions(logger *slog.Logger) []header.EncodeOption {
	opts := []header.EncodeOption{header.WithLogger(logger)}
	if c.SkipInvalid {
		opts = append(opts, header.WithSkipInvalid())
	}
	return opts
}

// Render writes the message described by c to w and returns the number of
// bytes written.
func Render(w io.Writer, c *Config, logger *slog.Logger) (int64, error) {
	ec, err := c.EncoderConfig()
	if err != nil {
		return 0, err
	}

	h, err := c.header()
	if err != nil {
		return 0, err
	}

	buf := &message.Buffer{Header: *h}
	if c.Body != "" {
		_, _ = io.WriteString(buf, c.Body)
		if !strings.HasSuffix(c.Body, "\n") {
			_, _ = io.WriteString(buf, "\n")
		}
	}

	m, err := buf.OpaqueFor(ec.MailType)
	if err != nil {
		return 0, err
	}

	return m.EncodeWith(w, ec, c.encodeOptions(logger)...)
}

// Trace encodes only the header described by c and returns the encoder
// operations.
func Trace(c *Config, logger *slog.Logger) ([]encoder.TraceToken, error) {
	ec, err := c.EncoderConfig()
	if err != nil {
		return nil, err
	}
	ec.Trace = true

	h, err := c.header()
	if err != nil {
		return nil, err
	}

	b, err := encoder.NewBuffer(ec)
	if err != nil {
		return nil, err
	}

	err = h.Encode(b, c.encodeOptions(logger)...)
	return b.Trace(), err
}
