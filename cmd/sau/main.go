// Command sau merges files into a single container and splits containers
// back into files.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set via -ldflags.
var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
