// Command keeper is the terminal client for the Keeper of Tales book assistant.
package main

import (
	"os"

	"github.com/talekeeper/keeper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
