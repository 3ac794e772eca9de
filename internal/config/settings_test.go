package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-schemaform/internal/config"
)

func TestDefaults_AreValid(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	require.NoError(t, s.Validate())
	assert.Equal(t, "0.0.0.0:5001", s.Addr())
	assert.Equal(t, "http://localhost:5001", s.BrowseURL())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	s.SchemaPath = " "
	s.Port = 70000
	s.LogFormat = "xml"
	s.Theme = "neon"

	err := s.Validate()
	require.ErrorIs(t, err, config.ErrInvalidSettings)
	for _, fragment := range []string{"schema path is required", "port 70000 out of range", "invalid log format", `unknown theme "neon"`} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schemaform.yaml")
	content := "schema: configs/whisper_config_schema.yaml\nport: 8080\ntheme: dark\nremote_timeout: 3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := config.Defaults()
	require.NoError(t, s.LoadFile(path))

	assert.Equal(t, "configs/whisper_config_schema.yaml", s.SchemaPath)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, 3*time.Second, s.RemoteTimeout)
	assert.Equal(t, config.DefaultHost, s.Host)
	require.NoError(t, s.Validate())
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	require.Error(t, s.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1"), 0o600))
	require.Error(t, s.LoadFile(path))
}
