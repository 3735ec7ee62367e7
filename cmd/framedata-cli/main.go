package main

import (
	"framedata/cmd/framedata-cli/commands"
	"framedata/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
