package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/nextdata/internal/errors"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "revenue_page.html", cfg.File)
	assert.Equal(t, []string{"utf-8", "cp950", "latin-1"}, cfg.Encodings)
	assert.Equal(t, "regex", cfg.Locator)
	assert.False(t, cfg.StrictExit)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_DefaultsAreIndependent(t *testing.T) {
	a := NewConfig()
	a.Encodings[0] = "latin-1"

	b := NewConfig()
	assert.Equal(t, "utf-8", b.Encodings[0])
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
file: "pages/2330.html"
encodings: [big5, utf-8]
locator: dom
strict_exit: true
debug: true
`
	path := filepath.Join(t.TempDir(), "nextdata.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "pages/2330.html", cfg.File)
	assert.Equal(t, []string{"big5", "utf-8"}, cfg.Encodings)
	assert.Equal(t, "dom", cfg.Locator)
	assert.True(t, cfg.StrictExit)
	assert.True(t, cfg.Debug)
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nextdata.yml")
	require.NoError(t, os.WriteFile(path, []byte("strict_exit: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "revenue_page.html", cfg.File)
	assert.Equal(t, []string{"utf-8", "cp950", "latin-1"}, cfg.Encodings)
	assert.True(t, cfg.StrictExit)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("encodings: [unclosed array\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".nextdata.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`file: "found.html"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `file: "found.html"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	assert.Empty(t, FindConfigFileFrom(t.TempDir()))
}

func TestConfig_FindConfigFileSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nextdata.yml"), 0o755))

	assert.Empty(t, FindConfigFileFrom(dir))
}

func TestConfig_Apply(t *testing.T) {
	cfg := NewConfig()
	cfg.Apply(Overrides{})
	assert.Equal(t, NewConfig(), cfg, "empty overrides change nothing")

	cfg.Apply(Overrides{
		File:       "other.html",
		Encodings:  []string{"latin-1"},
		Locator:    "dom",
		StrictExit: true,
		Debug:      true,
	})
	assert.Equal(t, "other.html", cfg.File)
	assert.Equal(t, []string{"latin-1"}, cfg.Encodings)
	assert.Equal(t, "dom", cfg.Locator)
	assert.True(t, cfg.StrictExit)
	assert.True(t, cfg.Debug)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		cause  error
	}{
		{"empty file", func(c *Config) { c.File = "" }, errors.ErrInvalidConfig},
		{"no encodings", func(c *Config) { c.Encodings = nil }, errors.ErrInvalidConfig},
		{"unknown encoding", func(c *Config) { c.Encodings = []string{"utf-8", "ebcdic"} }, errors.ErrUnsupportedEncoding},
		{"unknown locator", func(c *Config) { c.Locator = "xpath" }, errors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeConfig, errors.TypeOf(err))
			assert.True(t, stderrors.Is(err, tt.cause))
		})
	}
}

func TestLoadConfigWithCLI_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nextdata.yml")
	require.NoError(t, os.WriteFile(path, []byte("file: from-config.html\nencodings: [cp950]\n"), 0o644))

	cfg, err := LoadConfigWithCLI(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "from-config.html", cfg.File)
	assert.Equal(t, []string{"cp950"}, cfg.Encodings)

	cfg, err = LoadConfigWithCLI(path, Overrides{File: "from-cli.html"})
	require.NoError(t, err)
	assert.Equal(t, "from-cli.html", cfg.File)
	assert.Equal(t, []string{"cp950"}, cfg.Encodings)
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{Encodings: []string{"UTF8", "Big5"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"UTF8", "Big5"}, cfg.Encodings)
}

func TestLoadConfigWithCLI_Errors(t *testing.T) {
	_, err := LoadConfigWithCLI("/non/existent/nextdata.yml", Overrides{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeConfig, errors.TypeOf(err))

	_, err = LoadConfigWithCLI("", Overrides{Locator: "css"})
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "unknown locator 'css'")
}
