package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/kanboard/cmd"
	"github.com/thenoetrevino/kanboard/internal/cli"
)

func main() {
	err := cmd.Execute()

	// commands report through their output formatter and return an
	// *cli.ExitCodeError; anything else still needs printing
	var exitErr *cli.ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCodeFor(err))
}
