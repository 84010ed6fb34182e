// Package main provides the entry point for msgbusd, a standalone process
// that builds a MessageBus from its configuration file, starts it, and runs
// until a termination signal arrives. The bus is in-process only; msgbusd
// exposes no transport for other processes to publish or subscribe through.
package main

import (
	"os"

	"github.com/kodflow/msgbus/internal/bootstrap"
)

func main() {
	os.Exit(bootstrap.Run(os.Args[1:]))
}
