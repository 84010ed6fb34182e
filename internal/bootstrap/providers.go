// Package bootstrap provides dependency injection wiring using Google Wire.
package bootstrap

import (
	"github.com/kodflow/msgbus/internal/bus"
	domainconfig "github.com/kodflow/msgbus/internal/domain/config"
	yamlconfig "github.com/kodflow/msgbus/internal/infrastructure/config/yaml"
	"github.com/kodflow/msgbus/internal/infrastructure/eventbus"
)

// LoadConfig loads configuration from the given path using the provided
// loader.
//
// Params:
//   - loader: the YAML configuration loader.
//   - configPath: the path to the configuration file.
//
// Returns:
//   - *domainconfig.BusConfig: the loaded, defaulted, and validated config.
//   - error: any error during loading.
func LoadConfig(loader *yamlconfig.Loader, configPath string) (*domainconfig.BusConfig, error) {
	return loader.Load(configPath)
}

// NewBus constructs the MessageBus from its loaded configuration.
//
// Params:
//   - cfg: the bus configuration.
//
// Returns:
//   - *bus.MessageBus: the constructed bus.
//   - error: any error during construction.
func NewBus(cfg *domainconfig.BusConfig) (*bus.MessageBus, error) {
	return bus.New(*cfg)
}

// NewApp assembles the final App from its wired dependencies.
//
// Params:
//   - b: the constructed message bus.
//   - events: the event publisher bound to b.
//   - cfg: the configuration b was built from.
//
// Returns:
//   - *App: the application container with all dependencies wired.
func NewApp(b *bus.MessageBus, events *eventbus.Publisher, cfg *domainconfig.BusConfig) *App {
	return &App{
		Bus:    b,
		Events: events,
		Config: cfg,
	}
}
