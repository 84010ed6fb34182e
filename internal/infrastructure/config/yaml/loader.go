// Package yaml provides YAML configuration loading infrastructure for
// BusConfig.
package yaml

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domainconfig "github.com/kodflow/msgbus/internal/domain/config"
)

// ErrNoConfigurationLoaded is returned by Reload when called before any Load.
var ErrNoConfigurationLoaded = errors.New("no configuration loaded")

// Loader loads BusConfig from YAML files, remembering the last loaded path
// to support Reload.
type Loader struct {
	lastPath string
}

// New returns a ready-to-use Loader.
func New() *Loader {
	return &Loader{}
}

// Load reads and parses a configuration file from path.
func (l *Loader) Load(path string) (*domainconfig.BusConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 - config path is trusted input
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return nil, err
	}

	l.lastPath = path
	return cfg, nil
}

// Parse parses configuration from YAML bytes, applying defaults and
// validating the result.
func (l *Loader) Parse(data []byte) (*domainconfig.BusConfig, error) {
	cfg := domainconfig.DefaultBusConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	domainconfig.ApplyDefaults(&cfg)

	if err := domainconfig.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Reload reloads configuration from the last path given to Load.
func (l *Loader) Reload() (*domainconfig.BusConfig, error) {
	if l.lastPath == "" {
		return nil, ErrNoConfigurationLoaded
	}
	return l.Load(l.lastPath)
}
