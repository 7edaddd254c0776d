package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromedpManager drives Chrome over the DevTools protocol. Pages are
// snapshots of the live DOM, refreshed after every navigation, click and
// scroll.
type ChromedpManager struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opts        Options
}

func NewChromedp(ctx context.Context, opts Options) (*ChromedpManager, error) {
	opts = opts.withDefaults()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	bctx, cancel := chromedp.NewContext(allocCtx)

	//run with no actions to start the browser now instead of on first use
	if err := chromedp.Run(bctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("could not start chrome: %w", err)
	}
	if opts.CookiesPath != "" {
		opts.Logger.Warn("⚠️ Cookie files are only applied by the playwright driver")
	}

	return &ChromedpManager{ctx: bctx, cancel: cancel, allocCancel: allocCancel, opts: opts}, nil
}

func (m *ChromedpManager) NewPage() (Page, error) {
	p := &chromedpPage{m: m}
	hp, err := NewHTMLPage("", WithLoader(p.load), WithClicker(p.click))
	if err != nil {
		return nil, err
	}
	p.HTMLPage = hp
	return p, nil
}

func (m *ChromedpManager) Close() error {
	m.cancel()
	m.allocCancel()
	return nil
}

type chromedpPage struct {
	*HTMLPage
	m *ChromedpManager
}

// bound derives an action context from the browser context base that also
// ends when the caller's context does.
func bound(base, caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(base, timeout)
	stop := context.AfterFunc(caller, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (p *chromedpPage) run(caller context.Context, actions ...chromedp.Action) (string, error) {
	ctx, cancel := bound(p.m.ctx, caller, p.m.opts.NavigationTimeout)
	defer cancel()

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	if err := chromedp.Run(ctx, actions...); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromedpPage) load(ctx context.Context, url string) (string, error) {
	return p.run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery))
}

func (p *chromedpPage) click(ctx context.Context, css string, index int) (string, error) {
	js := fmt.Sprintf("document.querySelectorAll(%q)[%d].click()", css, index)
	return p.run(ctx, chromedp.Evaluate(js, nil))
}

func (p *chromedpPage) Scroll(dy float64) error {
	html, err := p.run(context.Background(), chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %f)", dy), nil))
	if err != nil {
		return err
	}
	return p.SetHTML(html)
}

func (p *chromedpPage) Screenshot(path string) error {
	ctx, cancel := context.WithTimeout(p.m.ctx, p.m.opts.NavigationTimeout)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
