package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/findbar/internal/logging"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Search.CaseSensitive)
	assert.False(t, cfg.Search.WholeWord)
	assert.False(t, cfg.Search.Regex)
	assert.Equal(t, 4, cfg.View.TabWidth)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "findbar.toml", `
[search]
case_sensitive = true
regex = true

[view]
tab_width = 8

[logging]
level = "debug"
file = "/tmp/findbar.log"
`)

	cfg, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)
	assert.True(t, cfg.Search.CaseSensitive)
	assert.False(t, cfg.Search.WholeWord)
	assert.True(t, cfg.Search.Regex)
	assert.Equal(t, 8, cfg.View.TabWidth)
	assert.Equal(t, 0.1, cfg.View.ScrollMargin, "unset keys keep their defaults")
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "/tmp/findbar.log", cfg.Logging.File)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "findbar.yml", `
search:
  whole_word: true
view:
  scroll_margin: 0.2
`)

	cfg, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)
	assert.True(t, cfg.Search.WholeWord)
	assert.Equal(t, 0.2, cfg.View.ScrollMargin)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "findbar.yaml", "")

	cfg, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "none.toml"), noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadWithEnv("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "findbar.json", "{}")

	_, err := LoadWithEnv(path, noEnv)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantLine int
	}{
		{"toml syntax", "bad.toml", "[search]\ncase_sensitive = = true\n", 2},
		{"toml unknown key", "bad.toml", "[search]\nfuzzy = true\n", 2},
		{"yaml syntax", "bad.yaml", "search:\n  regex: [true\n", 0},
		{"yaml unknown key", "bad.yaml", "search:\n  fuzzy: true\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			_, err := LoadWithEnv(path, noEnv)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, path, perr.Path)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, perr.Line)
			}
			assert.NotNil(t, perr.Unwrap())
		})
	}
}

func TestLoadValidation(t *testing.T) {
	path := writeFile(t, "findbar.toml", "[view]\ntab_width = 0\n")

	_, err := LoadWithEnv(path, noEnv)
	assert.ErrorIs(t, err, ErrValidationFailed)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "view.tab_width", verr.Path)
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("[search]\nregex = true\n"), FormatTOML)
	require.NoError(t, err)
	assert.True(t, cfg.Search.Regex)

	_, err = LoadFromReader(strings.NewReader(""), Format("ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "findbar.toml", "[search]\nregex = true\n")

	cfg, err := LoadWithEnv(path, envMap(map[string]string{
		"FINDBAR_SEARCH_REGEX":          "off",
		"FINDBAR_SEARCH_CASE_SENSITIVE": "yes",
		"FINDBAR_VIEW_TAB_WIDTH":        "2",
		"FINDBAR_LOG_LEVEL":             "WARN",
		"FINDBAR_LOG_FILE":              "out.log",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.Search.Regex, "environment wins over the file")
	assert.True(t, cfg.Search.CaseSensitive)
	assert.Equal(t, 2, cfg.View.TabWidth)
	assert.Equal(t, logging.LevelWarn, cfg.LogLevel())
	assert.Equal(t, "out.log", cfg.Logging.File)
}

func TestEnvOverrideErrors(t *testing.T) {
	_, err := LoadWithEnv("", envMap(map[string]string{"FINDBAR_SEARCH_WHOLE_WORD": "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FINDBAR_SEARCH_WHOLE_WORD")

	_, err = LoadWithEnv("", envMap(map[string]string{"FINDBAR_LOG_LEVEL": "loud"}))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestEnvVars(t *testing.T) {
	names := EnvVars()

	assert.Len(t, names, 7)
	assert.Contains(t, names, "FINDBAR_SEARCH_REGEX")
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"1", true, false},
		{"ON", true, false},
		{"yes", true, false},
		{"false", false, false},
		{"off", false, false},
		{"", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		got, err := parseBool(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
