package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pojntfx/corsfs/cmd/corsfs/cmd"
	"github.com/pojntfx/corsfs/pkg/config"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)

		var argErr *config.ArgumentError
		if errors.As(err, &argErr) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
