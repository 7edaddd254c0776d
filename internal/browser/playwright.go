package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	opts    Options
}

func NewPlaywright(ctx context.Context, opts Options) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(opts.UserAgent),
		Viewport:  &playwright.Size{Width: opts.Width, Height: opts.Height},
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if opts.CookiesPath != "" {
		cookies, err := LoadCookies(opts.CookiesPath)
		if err != nil {
			opts.Logger.Warn("⚠️ Could not load cookies, continuing", zap.String("path", opts.CookiesPath), zap.Error(err))
		} else if err := bctx.AddCookies(cookies); err != nil {
			opts.Logger.Warn("⚠️ Could not add cookies, continuing", zap.Error(err))
		} else {
			opts.Logger.Info("🍪 Loaded cookies", zap.Int("count", len(cookies)))
		}
	}

	return &PlaywrightManager{pw: pw, browser: b, context: bctx, opts: opts}, nil
}

func (pm *PlaywrightManager) NewPage() (Page, error) {
	p, err := pm.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}
	return &playwrightPage{page: p, timeout: float64(pm.opts.NavigationTimeout.Milliseconds())}, nil
}

func (pm *PlaywrightManager) Close() error {
	var firstErr error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			firstErr = err
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type playwrightPage struct {
	page    playwright.Page
	timeout float64
}

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(p.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) Find(sel Selector) ([]Element, error) {
	return wrapLocators(p.page.Locator(sel.CSS()).All())
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (p *playwrightPage) Scroll(dy float64) error {
	return p.page.Mouse().Wheel(0, dy)
}

type playwrightElement struct {
	loc playwright.Locator
}

func wrapLocators(locs []playwright.Locator, err error) ([]Element, error) {
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(locs))
	for i, l := range locs {
		out[i] = &playwrightElement{loc: l}
	}
	return out, nil
}

func (e *playwrightElement) Text() (string, error) {
	return e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(2000)})
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	return e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(2000)})
}

func (e *playwrightElement) Find(sel Selector) ([]Element, error) {
	return wrapLocators(e.loc.Locator(sel.CSS()).All())
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)})
}
