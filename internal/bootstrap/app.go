// Package bootstrap provides dependency injection wiring using Google Wire.
// It isolates all dependency construction from the main entry point,
// allowing for a minimal main.go and better testability.
package bootstrap

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kodflow/msgbus/internal/bus"
	domainconfig "github.com/kodflow/msgbus/internal/domain/config"
	"github.com/kodflow/msgbus/internal/infrastructure/eventbus"
)

// version is the application version, set at build time via ldflags.
var version string = "dev"

// App holds all application dependencies injected by Wire. It is the root
// object of the dependency graph.
type App struct {
	// Bus is the message bus every channel, subscription, and log record in
	// the process flows through.
	Bus *bus.MessageBus
	// Events carries lifecycle events (channels, subscriptions, the
	// dispatcher) that callers Publish onto the bus's "events" channel
	// subtree; the bus itself does not publish any.
	Events *eventbus.Publisher
	// Config is the configuration the bus was built from.
	Config *domainconfig.BusConfig
}

// Run is the main entry point called from cmd/msgbusd/main.go. It parses
// flags, initializes the application via Wire, starts the bus, and blocks
// until a termination signal arrives.
//
// Returns:
//   - int: exit code (0 for success, 1 for error).
func Run(args []string) int {
	fs := newFlagSet()
	configPath, showVersion, err := fs.parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if showVersion {
		fmt.Printf("msgbus %s\n", version)
		return 0
	}

	if err := RunWithConfig(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// RunWithConfig initializes the application from cfgPath, starts the bus,
// and blocks until SIGTERM, SIGINT, or SIGHUP is received, then stops the
// bus cleanly. It is exported for testing and for embedders that already
// know their configuration path.
func RunWithConfig(cfgPath string) error {
	app, err := InitializeApp(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		_ = app.Bus.Close()
	}()

	if err := app.Bus.Start(); err != nil {
		return fmt.Errorf("failed to start bus: %w", err)
	}

	app.Bus.InternalLogger().Info("bus started", map[string]any{"version": version})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	<-sigCh

	app.Bus.InternalLogger().Info("bus stopping", nil)
	return app.Bus.Stop()
}
