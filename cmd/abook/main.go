// Command abook is a personal address book for the terminal.
package main

import (
	"os"

	"github.com/kilupskalvis/abook/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
