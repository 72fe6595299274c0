// cmd/enigma/main.go
//
// Command enigma runs the three-rotor cipher machine from the terminal.

package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

func main() {
	cli := CLI{}
	ctx := kong.Parse(
		&cli,
		kong.Name("enigma"),
		kong.Description("Three-rotor Enigma simulator"),
		kong.UsageOnError(),
		kong.BindTo(os.Stdin, (*io.Reader)(nil)),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
		kong.ConfigureHelp(kong.HelpOptions{
			Summary: true,
			Tree:    true,
		}),
	)
	if err := ctx.Run(&cli.Globals); err != nil {
		ctx.FatalIfErrorf(err)
	}
}
