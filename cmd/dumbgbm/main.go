package main

import (
	"os"

	"github.com/NeowayLabs/gbm/cmd/dumbgbm/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
