package main

import (
	"context"
	"os"

	"github.com/samw425-glitch/gist-ghost-sync/cmd/gist-ghost-sync/cmd"
)

func main() {
	command := cmd.RootCmd
	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
