// Load envs from .env
// Load YAML config
// Override from env
// Validate config

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/logger"
)

const DefaultPath = "configs/config.yaml"

type BrowserConfig struct {
	Driver            string        `yaml:"driver" validate:"oneof=playwright chromedp"`
	Headless          bool          `yaml:"headless"`
	UserAgent         string        `yaml:"user_agent"`
	ViewportWidth     int           `yaml:"viewport_width" validate:"gt=0"`
	ViewportHeight    int           `yaml:"viewport_height" validate:"gt=0"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	HumanScroll       bool          `yaml:"human_scroll"`
	//Paths
	CookiesPath   string `yaml:"cookies_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsPath string `yaml:"credentials_path" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"JOB_SCRAPER_SPREADSHEET_ID"`
	SpreadsheetName string `yaml:"spreadsheet_name"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type TelegramConfig struct {
	Token  string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether a run summary should be sent.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

type Config struct {
	Browser    BrowserConfig  `yaml:"browser"`
	Sheets     SheetsConfig   `yaml:"sheets"`
	Output     OutputConfig   `yaml:"output"`
	Telegram   TelegramConfig `yaml:"telegram"`
	Log        logger.Config  `yaml:"log"`
	RunTimeout time.Duration  `yaml:"run_timeout"`

	// Path is the file the config was read from, empty when defaults were used.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Driver:            browser.DriverPlaywright,
			Headless:          true,
			UserAgent:         browser.DefaultUserAgent,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
			NavigationTimeout: 30 * time.Second,
			HumanScroll:       true,
			ScreenshotDir:     "logs/screenshots",
		},
		Sheets: SheetsConfig{
			Enabled:         true,
			CredentialsPath: "credentials.json",
			SpreadsheetName: "Job Listings",
		},
		Output:     OutputConfig{Dir: "."},
		Log:        logger.Config{Level: "info", Format: "console"},
		RunTimeout: 10 * time.Minute,
	}
}

// Load reads .env, then the YAML file at path, then env overrides. A missing
// file is not an error; defaults are used and Path stays empty.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		cfg.Path = path
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		cfg.Sheets.CredentialsPath = creds
	}
	if id := os.Getenv("JOB_SCRAPER_SPREADSHEET_ID"); id != "" {
		cfg.Sheets.SpreadsheetID = id
	}
	if driver := os.Getenv("JOB_SCRAPER_DRIVER"); driver != "" {
		cfg.Browser.Driver = driver
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.RunTimeout <= 0 {
		return errors.New("invalid config: run_timeout must be positive")
	}
	if c.Browser.NavigationTimeout <= 0 {
		return errors.New("invalid config: browser.navigation_timeout must be positive")
	}
	if c.Sheets.Enabled && c.Sheets.SpreadsheetID == "" && c.Sheets.SpreadsheetName == "" {
		return errors.New("invalid config: sheets needs spreadsheet_id or spreadsheet_name")
	}
	return nil
}

// BrowserOptions maps the browser section onto driver options.
func (c *Config) BrowserOptions(log *zap.Logger) browser.Options {
	return browser.Options{
		Driver:            c.Browser.Driver,
		Headless:          c.Browser.Headless,
		UserAgent:         c.Browser.UserAgent,
		Width:             c.Browser.ViewportWidth,
		Height:            c.Browser.ViewportHeight,
		NavigationTimeout: c.Browser.NavigationTimeout,
		CookiesPath:       c.Browser.CookiesPath,
		Logger:            log,
	}
}
