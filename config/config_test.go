package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/junioryono/beans/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads; godotenv.Load only fills unset
// variables, so tests unset instead of setting to "".
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		config.EnvConfigLocation,
		config.EnvClasspath,
		config.EnvAddr,
		config.EnvLogLevel,
		config.EnvLogFormat,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "classpath:beans.xml", cfg.ConfigLocation)
	assert.Equal(t, ".", cfg.Classpath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvConfigLocation, "/srv/beans.yaml")
	t.Setenv(config.EnvAddr, "127.0.0.1:9000")
	t.Setenv(config.EnvLogLevel, "DEBUG")
	t.Setenv(config.EnvLogFormat, "JSON")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/beans.yaml", cfg.ConfigLocation)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvAddr, ":7000")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"BEANS_CLASSPATH=/opt/app/conf\nBEANS_ADDR=:9999\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/app/conf", cfg.Classpath)
	assert.Equal(t, ":7000", cfg.Addr, "environment wins over the file")
}

func TestLoad_SkipsMissingFiles(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("BEANS_ADDR=:7001\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("BEANS_ADDR=:7002\nBEANS_LOG_LEVEL=warn\n"), 0o600))

	cfg, err := config.Load(filepath.Join(dir, "missing.env"), first, second)
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Addr, "earlier files win")
	assert.Equal(t, "warn", cfg.Log.Level, "files after a missing one are still read")
}

func TestLoad_UnreadableFile(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestLogConfig_Configure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel logrus.Level
		wantJSON  bool
		wantErr   bool
	}{
		{name: "text", cfg: config.LogConfig{Level: "warn", Format: "text"}, wantLevel: logrus.WarnLevel},
		{name: "empty format", cfg: config.LogConfig{Level: "info"}, wantLevel: logrus.InfoLevel},
		{name: "json", cfg: config.LogConfig{Level: "debug", Format: "json"}, wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "bad level", cfg: config.LogConfig{Level: "loud", Format: "text"}, wantErr: true},
		{name: "bad format", cfg: config.LogConfig{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := logrus.New()
			logger.SetOutput(io.Discard)

			err := tt.cfg.Configure(logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
