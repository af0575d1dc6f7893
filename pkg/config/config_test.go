// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test settings layering, validation and generation

package config

import (
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/paths"
)

func setupPaths(t *testing.T) (paths.Paths, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvDataDir, filepath.Join(dir, "data"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv("LABELWIRES_LANGUAGE", "")
	t.Setenv("LABELWIRES_DEFAULT_CSV_DELIMITER", "")
	t.Setenv("LABELWIRES_HISTORY_LIMIT", "")
	os.Unsetenv("LABELWIRES_LANGUAGE")
	os.Unsetenv("LABELWIRES_DEFAULT_CSV_DELIMITER")
	os.Unsetenv("LABELWIRES_HISTORY_LIMIT")
	return paths.New(), dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p, _ := setupPaths(t)

	s, err := Load(p, "")
	require.NoError(t, err)

	assert.Equal(t, "en", s.Language)
	assert.Equal(t, "|", s.DefaultCSVDelimiter)
	assert.Equal(t, '|', s.Delimiter())
	assert.Equal(t, 0, s.HistoryLimit)
	assert.Equal(t, p.DataDir(), s.DefaultSaveLocation)
	assert.Equal(t, p.DataDir(), s.CSVSaveLocation)
	assert.Empty(t, s.FilePath)
}

func TestLoad_TOMLFile(t *testing.T) {
	p, _ := setupPaths(t)
	writeFile(t, p.SettingsPath(), `
language = "de"
default_csv_delimiter = ";"
history_limit = 25
csv_save_location = "/exports"
`)

	s, err := Load(p, "")
	require.NoError(t, err)

	assert.Equal(t, "de", s.Language)
	assert.Equal(t, ';', s.Delimiter())
	assert.Equal(t, 25, s.HistoryLimit)
	assert.Equal(t, "/exports", s.CSVSaveLocation)
	assert.Equal(t, p.DataDir(), s.DefaultSaveLocation)
	assert.Equal(t, p.SettingsPath(), s.FilePath)
}

func TestLoad_YAMLFile(t *testing.T) {
	p, dir := setupPaths(t)
	path := filepath.Join(dir, "settings.yaml")
	writeFile(t, path, "language: fr\ndefault_csv_delimiter: \",\"\n")

	s, err := Load(p, path)
	require.NoError(t, err)

	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, ',', s.Delimiter())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p, _ := setupPaths(t)
	writeFile(t, p.SettingsPath(), `history_limit = 10`)
	t.Setenv("LABELWIRES_HISTORY_LIMIT", "3")
	t.Setenv("LABELWIRES_DEFAULT_CSV_DELIMITER", "\t")

	s, err := Load(p, "")
	require.NoError(t, err)

	assert.Equal(t, 3, s.HistoryLimit)
	assert.Equal(t, '\t', s.Delimiter())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    lwerrors.ErrorCode
	}{
		{
			name:    "unparsable file",
			content: "language = [",
			code:    lwerrors.ErrConfigParse,
		},
		{
			name:    "multi character delimiter",
			content: `default_csv_delimiter = "||"`,
			code:    lwerrors.ErrConfigValid,
		},
		{
			name:    "quote delimiter",
			content: `default_csv_delimiter = '"'`,
			code:    lwerrors.ErrConfigValid,
		},
		{
			name:    "negative history limit",
			content: `history_limit = -1`,
			code:    lwerrors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := setupPaths(t)
			writeFile(t, p.SettingsPath(), tt.content)

			_, err := Load(p, "")
			require.Error(t, err)
			assert.True(t, lwerrors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestGenerateConfigContent(t *testing.T) {
	p, _ := setupPaths(t)
	s, err := Defaults(p)
	require.NoError(t, err)

	content, err := GenerateConfigContent(s)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# labelwires settings")

	var decoded Settings
	require.NoError(t, toml.Unmarshal(content, &decoded))
	assert.Equal(t, s.Language, decoded.Language)
	assert.Equal(t, s.DefaultCSVDelimiter, decoded.DefaultCSVDelimiter)
	assert.Equal(t, s.DefaultSaveLocation, decoded.DefaultSaveLocation)
	assert.Empty(t, decoded.FilePath)
}
