package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gifrender/gifcore/internal/model"
)

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name(model.AppName),
		kong.Description(model.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": model.Version},
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", model.AppName, err)
		os.Exit(1)
	}
}
