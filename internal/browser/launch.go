package browser

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Options struct {
	Driver            string
	Headless          bool
	UserAgent         string
	Width             int
	Height            int
	NavigationTimeout time.Duration
	CookiesPath       string
	Logger            *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Driver:            DriverPlaywright,
		Headless:          true,
		UserAgent:         DefaultUserAgent,
		Width:             1920,
		Height:            1080,
		NavigationTimeout: 30 * time.Second,
		Logger:            zap.NewNop(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Driver == "" {
		o.Driver = d.Driver
	}
	if o.UserAgent == "" {
		o.UserAgent = d.UserAgent
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = d.Width, d.Height
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = d.NavigationTimeout
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}

// Launch starts the configured driver. The caller must Close the session.
func Launch(ctx context.Context, opts Options) (Session, error) {
	opts = opts.withDefaults()
	switch opts.Driver {
	case DriverPlaywright:
		m, err := NewPlaywright(ctx, opts)
		if err != nil {
			return nil, err
		}
		return m, nil
	case DriverChromedp:
		m, err := NewChromedp(ctx, opts)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown browser driver %q", opts.Driver)
	}
}
