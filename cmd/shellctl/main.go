package main

import (
	"context"

	"github.com/alecthomas/kong"
)

type cli struct {
	Serve serveCmd `cmd:"" help:"Serve the admin shell over HTTP."`
	Nav   navCmd   `cmd:"" help:"Inspect, validate and export navigation manifests."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Admin shell server and navigation tooling."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}
