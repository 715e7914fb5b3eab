// Command dashctl queries the market-data provider and renders amounts from the
// command line, using the same services as the server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&seriesCmd{}, "market")
	commander.Register(&marketCmd{}, "market")
	commander.Register(&formatCmd{}, "display")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
