//go:build wireinject

package bootstrap

import (
	"github.com/google/wire"

	yamlconfig "github.com/kodflow/msgbus/internal/infrastructure/config/yaml"
	"github.com/kodflow/msgbus/internal/infrastructure/eventbus"
)

// InitializeApp creates the application with all dependencies wired. This
// function is the injector that Wire will generate code for.
//
// Params:
//   - configPath: the path to the YAML configuration file.
//
// Returns:
//   - *App: the fully wired application.
//   - error: any error during dependency construction.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		// Infrastructure: configuration loader.
		yamlconfig.New,

		// Providers: configuration loading.
		LoadConfig,

		// Application: the message bus.
		NewBus,

		// Infrastructure: event publisher bound to the bus.
		eventbus.NewPublisher,

		// Bootstrap: final App struct.
		NewApp,
	)
	return nil, nil
}
