package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DRUMKIT_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 25, cfg.List.PageSize)
	assert.Equal(t, []int{10, 25, 50, 100}, cfg.List.PageSizes)
	assert.Equal(t, 100, cfg.List.TotalRecords)
	assert.Equal(t, filepath.Join(home, ".local", "share", "drumkit", "cache.db"), cfg.Cache.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "drumkit.toml")
	body := `
[api]
base_url = "http://localhost:9999"
timeout = "3s"

[list]
page_size = 50

[ui]
timezone = "America/Chicago"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("DRUMKIT_CONFIG", path)
	t.Setenv("DRUMKIT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 50, cfg.List.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "America/Chicago", cfg.UI.Location().String())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DRUMKIT_CONFIG", filepath.Join(dir, "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := Config{
		API:  APIConfig{Timeout: time.Second},
		List: ListConfig{PageSize: 25, PageSizes: []int{10, 25}, TotalRecords: 100},
	}
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"zero page size":    func(c *Config) { c.List.PageSize = 0 },
		"empty page sizes":  func(c *Config) { c.List.PageSizes = nil },
		"negative size":     func(c *Config) { c.List.PageSizes = []int{10, -1} },
		"negative timeout":  func(c *Config) { c.API.Timeout = -time.Second },
		"unknown time zone": func(c *Config) { c.UI.Timezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			c.List.PageSizes = append([]int(nil), base.List.PageSizes...)
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg", "config.toml")

	cfg, err := Load()
	require.NoError(t, err)
	cfg.List.PageSize = 10
	cfg.API.Timeout = 7 * time.Second

	t.Setenv("DRUMKIT_CONFIG", path)
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, got.List.PageSize)
	assert.Equal(t, 7*time.Second, got.API.Timeout)
}

func TestLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, time.Local, UIConfig{}.Location())
	assert.Equal(t, time.Local, UIConfig{Timezone: "nowhere/none"}.Location())
}

func TestPathAndDefaults(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, ".config", "drumkit", "config.toml"), Path())
	t.Setenv("DRUMKIT_CONFIG", "/tmp/elsewhere.toml")
	assert.Equal(t, "/tmp/elsewhere.toml", Path())

	t.Setenv("DRUMKIT_LIST_PAGE_SIZE", "50")
	d := Defaults()
	assert.Equal(t, 25, d.List.PageSize)
	assert.Equal(t, DefaultBaseURL, d.API.BaseURL)
	assert.NoError(t, d.Validate())
}
