package cmd

import (
	"io"

	"github.com/mjl-/sconf"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Prints an annotated example config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Describe(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

// ExampleConfig returns the config printed by the describe command.
func ExampleConfig() *Config {
	return &Config{
		MailType: "ascii",
		Headers: []HeaderField{
			{Name: "From", Body: "Jürgen <juergen@example.com>"},
			{Name: "Subject", Body: "Grüße"},
		},
		Body: "Hello World!",
	}
}

// Describe writes ExampleConfig in sconf format with the field docs as
// comments.
func Describe(w io.Writer) error {
	return sconf.Describe(w, ExampleConfig())
}
