package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "GOOGLE_APPLICATION_CREDENTIALS",
		"JOB_SCRAPER_SPREADSHEET_ID", "JOB_SCRAPER_DRIVER", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.Equal(t, Default().Browser, cfg.Browser)
	assert.Equal(t, 10*time.Minute, cfg.RunTimeout)
	assert.Equal(t, "Job Listings", cfg.Sheets.SpreadsheetName)
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
browser:
  driver: chromedp
  headless: false
  navigation_timeout: 45s
sheets:
  enabled: false
output:
  dir: out
telegram:
  token: abc
  chat_id: 42
log:
  level: debug
  format: json
run_timeout: 5m
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "chromedp", cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 45*time.Second, cfg.Browser.NavigationTimeout)
	//untouched keys keep their defaults
	assert.Equal(t, 1920, cfg.Browser.ViewportWidth)
	assert.False(t, cfg.Sheets.Enabled)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Minute, cfg.RunTimeout)

	opts := cfg.BrowserOptions(zap.NewNop())
	assert.Equal(t, "chromedp", opts.Driver)
	assert.Equal(t, 1080, opts.Height)
	assert.Equal(t, 45*time.Second, opts.NavigationTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")
	t.Setenv("JOB_SCRAPER_SPREADSHEET_ID", "sheet-id")
	t.Setenv("JOB_SCRAPER_DRIVER", "chromedp")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "telegram:\n  token: file-token\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
	assert.Equal(t, "/secrets/sa.json", cfg.Sheets.CredentialsPath)
	assert.Equal(t, "sheet-id", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "chromedp", cfg.Browser.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
		want string
	}{
		{"bad yaml", "browser: [", nil, "error parsing"},
		{"bad driver", "browser:\n  driver: selenium\n", nil, "Driver"},
		{"bad chat id", "", map[string]string{"TELEGRAM_CHAT_ID": "abc"}, "TELEGRAM_CHAT_ID"},
		{"zero timeout", "run_timeout: 0s\n", nil, "run_timeout"},
		{"no spreadsheet", "sheets:\n  spreadsheet_name: \"\"\n", nil, "spreadsheet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
