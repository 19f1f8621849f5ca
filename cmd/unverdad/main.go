// Command unverdad manages game mods: it imports them into a local
// registry, enables or disables them and installs them into the game.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/John-Tuesday/unverdad/cmd/unverdad/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := commands.NewApp(os.Stdout, os.Stderr)
	err := commands.NewRootCommand(app).ExecuteContext(ctx)
	_ = app.Close()
	if err != nil {
		app.PrintError(err)
		stop()
		os.Exit(1)
	}
}
