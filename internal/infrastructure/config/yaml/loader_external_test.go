package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yamlconfig "github.com/kodflow/msgbus/internal/infrastructure/config/yaml"
)

func TestLoader_LoadParsesAndDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_queue_size: 16\nlogging:\n  console: true\n"), 0o600))

	l := yamlconfig.New()
	cfg, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.MaxQueueSize)
	assert.True(t, cfg.Logging.Console)
	assert.Equal(t, ".", cfg.NameSeparator)
}

func TestLoader_LoadMissingFile(t *testing.T) {
	t.Parallel()

	l := yamlconfig.New()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoader_ParseInvalidYAML(t *testing.T) {
	t.Parallel()

	l := yamlconfig.New()
	_, err := l.Parse([]byte("not: [valid"))
	assert.Error(t, err)
}

func TestLoader_ParseFailsValidation(t *testing.T) {
	t.Parallel()

	l := yamlconfig.New()
	_, err := l.Parse([]byte("max_queue_size: -5\n"))
	assert.Error(t, err)
}

func TestLoader_ReloadWithoutLoadFirst(t *testing.T) {
	t.Parallel()

	l := yamlconfig.New()
	_, err := l.Reload()
	assert.ErrorIs(t, err, yamlconfig.ErrNoConfigurationLoaded)
}

func TestLoader_ReloadAfterLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_queue_size: 8\n"), 0o600))

	l := yamlconfig.New()
	_, err := l.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("max_queue_size: 99\n"), 0o600))
	cfg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.MaxQueueSize)
}
