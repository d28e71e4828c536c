package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should fall back to defaults without sources", func(t *testing.T) {
		serve := serveCmdForTest(t)

		cfg, service, err := loadConfig(t.Context(), serve)

		require.NoError(t, err)
		assert.Equal(t, config.Default().Server.Port, cfg.Server.Port)
		assert.Equal(t, "railway_db", cfg.Database.Name)
		assert.Equal(t, config.SourceDefault, service.GetSource("registry.database"))
	})

	t.Run("Should layer CLI flags over the YAML file", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "docbridge.yaml")
		yamlBody := "server:\n  host: 10.0.0.5\n  port: 6060\ndatabase:\n  name: yamldb\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(yamlBody), 0o600))

		serve := serveCmdForTest(t, "--config", cfgPath, "--port", "9090")
		cfg, service, err := loadConfig(t.Context(), serve)

		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5", cfg.Server.Host)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "yamldb", cfg.Database.Name)
		assert.Equal(t, config.SourceYAML, service.GetSource("server.host"))
		assert.Equal(t, config.SourceCLI, service.GetSource("server.port"))
	})

	t.Run("Should let environment variables win over CLI flags", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "7001")

		serve := serveCmdForTest(t, "--port", "9090")
		cfg, service, err := loadConfig(t.Context(), serve)

		require.NoError(t, err)
		assert.Equal(t, 7001, cfg.Server.Port)
		assert.Equal(t, config.SourceEnv, service.GetSource("server.port"))
	})
}

func TestServeCmdFlags(t *testing.T) {
	t.Run("Should declare every server flag the provider maps", func(t *testing.T) {
		serve := ServeCmd()
		for _, name := range []string{"host", "port", "cors", "timeout", "mongo-url", "mongo-db"} {
			assert.NotNil(t, serve.Flags().Lookup(name), "missing flag %q", name)
		}
	})
}
