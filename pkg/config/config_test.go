package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	require.NoError(t, Init(customConfigPath))

	assert.Equal(t, filepath.Join(tempDir, "custom", "path"), GetConfigDir())
	assert.Equal(t, customConfigPath, GetConfigFilePath())
}

// TestConfigDirectoryCreation validates directory is created
func TestConfigDirectoryCreation(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "new", "config", "location", "config.toml")

	require.NoError(t, Init(configPath))

	info, err := os.Stat(GetConfigDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestDefaults validates the built-in defaults
func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, Init(filepath.Join(tempDir, "config.toml")))

	assert.Equal(t, 30, GetInt("api.timeout"))
	assert.Equal(t, "UploadFile-CLI/0.1.0", GetString("api.user_agent"))
	assert.Equal(t, "http://localhost:8787/upload", GetString("upload.url"))
	assert.Equal(t, "file", GetString("upload.field"))
	assert.Equal(t, "text", GetString("output.format"))
	assert.Equal(t, "info", GetString("log.level"))
	assert.Equal(t, filepath.Join(tempDir, "uploadfile.log"), GetString("log.file"))
	assert.False(t, GetBool("some.bool.key"))
}

// TestUserConfigOverridesDefaults validates that the TOML file wins over defaults
func TestUserConfigOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	contents := "[upload]\nurl = \"https://files.example.com/api/upload\"\nfield = \"attachment\"\n\n[api]\ntimeout = 5\n"
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0600))

	require.NoError(t, Init(configPath))

	assert.Equal(t, "https://files.example.com/api/upload", GetString("upload.url"))
	assert.Equal(t, "attachment", GetString("upload.field"))
	assert.Equal(t, 5, GetInt("api.timeout"))
	// Untouched keys keep their defaults
	assert.Equal(t, "text", GetString("output.format"))
}

// TestEnvOverridesFile validates UPLOADFILE_* variables win over the file
func TestEnvOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[upload]\nurl = \"https://file.example.com\"\n"), 0600))
	t.Setenv("UPLOADFILE_UPLOAD_URL", "https://env.example.com/upload")
	t.Setenv("UPLOADFILE_API_TIMEOUT", "7")

	require.NoError(t, Init(configPath))

	assert.Equal(t, "https://env.example.com/upload", GetString("upload.url"))
	assert.Equal(t, 7, GetInt("api.timeout"))
	assert.Equal(t, "file", GetString("upload.field"))
}

// TestMalformedConfigFails validates that a broken file is reported
func TestMalformedConfigFails(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[upload\nurl = "), 0600))

	err := Init(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), configPath)
}

// TestReinitResetsOverrides validates that Init starts from a clean slate
func TestReinitResetsOverrides(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, Init(filepath.Join(tempDir, "a", "config.toml")))

	Set("upload.field", "changed")
	assert.Equal(t, "changed", GetString("upload.field"))

	require.NoError(t, Init(filepath.Join(tempDir, "b", "config.toml")))
	assert.Equal(t, "file", GetString("upload.field"))
}

// TestExpandPath validates tilde expansion for log.file
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	require.NoError(t, Init(filepath.Join(t.TempDir(), "config.toml")))
	Set("log.file", "~/logs/upload.log")

	assert.Equal(t, filepath.Join(home, "logs", "upload.log"), GetString("log.file"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}
