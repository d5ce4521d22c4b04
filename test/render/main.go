package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailheader/test/render/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
