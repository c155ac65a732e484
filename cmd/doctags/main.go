package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doctags/cmd/doctags/commands"
	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("doctags"),
		kong.Description("Generate tag listing pages from markdown front matter."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
