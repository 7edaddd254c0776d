package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/search"
)

// Lookup is one candidate in a fallback chain. With Attr set the attribute
// of the first match is read instead of its text.
type Lookup struct {
	Selector browser.Selector
	Attr     string
}

// Classes builds a chain of class name lookups.
func Classes(names ...string) []Lookup {
	out := make([]Lookup, len(names))
	for i, n := range names {
		out[i] = Lookup{Selector: browser.Class(n)}
	}
	return out
}

// Field is an ordered fallback chain. The first lookup whose first match
// yields non-empty trimmed text wins; Format is applied to that value only.
type Field struct {
	Chain   []Lookup
	Default string
	Format  func(string) string
}

func (f Field) extract(card browser.Element) (string, error) {
	for _, l := range f.Chain {
		els, err := card.Find(l.Selector)
		if err != nil {
			return "", fmt.Errorf("lookup %s: %w", l.Selector, err)
		}
		if len(els) == 0 {
			continue
		}
		var v string
		if l.Attr != "" {
			v, err = els[0].Attribute(l.Attr)
		} else {
			v, err = els[0].Text()
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", l.Selector, err)
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if f.Format != nil {
			v = f.Format(v)
		}
		return v, nil
	}
	return f.Default, nil
}

// PrepareFunc runs after the settle delay and before cards are read.
type PrepareFunc func(ctx context.Context, page browser.Page, f *search.Filters, log *zap.Logger, d browser.Delayer)

// Site describes how one board is searched and read.
type Site struct {
	Source   search.Source
	BuildURL func(f *search.Filters) string
	Origin   string

	SettleMin time.Duration
	SettleMax time.Duration
	Prepare   PrepareFunc

	Containers []browser.Selector
	Generic    browser.Selector

	Title      Field
	Company    Field
	Salary     Field
	PostedDate Field
	Summary    Field

	// LinkFragment picks the first anchor whose href contains it.
	LinkFragment string
}

// Debugger captures the page when a board yields no cards.
type Debugger interface {
	CaptureAndLog(page browser.Page, name, message string) error
}

type Option func(*Extractor)

func WithDebugger(d Debugger) Option { return func(e *Extractor) { e.debug = d } }

// WithoutScroll skips the human-like scroll on drivers that support it.
func WithoutScroll() Option { return func(e *Extractor) { e.noScroll = true } }

// Extractor is the scrape engine shared by every board.
type Extractor struct {
	site     Site
	log      *zap.Logger
	delay    browser.Delayer
	debug    Debugger
	noScroll bool
}

func NewExtractor(site Site, log *zap.Logger, delay browser.Delayer, opts ...Option) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	if delay == nil {
		delay = browser.RandomDelayer{}
	}
	e := &Extractor{
		site:  site,
		log:   log.With(zap.String("source", string(site.Source))),
		delay: delay,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Extractor) Source() search.Source { return e.site.Source }
func (e *Extractor) Name() string          { return string(e.site.Source) }

func (e *Extractor) Scrape(ctx context.Context, page browser.Page, f *search.Filters) ([]JobListing, error) {
	name := e.Name()
	target := e.site.BuildURL(f)
	e.log.Info("🌐 Visiting search page", zap.String("url", target))

	if err := page.Navigate(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to load %s search page: %w", name, err)
	}
	if err := e.delay.Wait(ctx, e.site.SettleMin, e.site.SettleMax); err != nil {
		return nil, err
	}
	if e.site.Prepare != nil {
		e.site.Prepare(ctx, page, f, e.log, e.delay)
	}
	if s, ok := page.(browser.Scroller); ok && !e.noScroll {
		if err := browser.HumanScroll(ctx, s, e.delay); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.log.Warn("⚠️ Scroll failed", zap.Error(err))
		}
	}

	cards, err := e.containers(page)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s listings: %w", name, err)
	}
	if len(cards) == 0 {
		e.log.Warn(fmt.Sprintf("⚠️ No jobs found on %s. The page structure might have changed.", name))
		if e.debug != nil {
			if err := e.debug.CaptureAndLog(page, strings.ToLower(name)+"_empty", "No listing cards on "+name); err != nil {
				e.log.Debug("debug capture failed", zap.Error(err))
			}
		}
		return nil, nil
	}
	if len(cards) > MaxListings {
		cards = cards[:MaxListings]
	}

	var jobs []JobListing
	for i, card := range cards {
		job, err := e.listing(card)
		if err != nil {
			e.log.Warn(fmt.Sprintf("⚠️ Error parsing %s job", name), zap.Int("index", i), zap.Error(err))
			continue
		}
		if job.Title == "" || job.Company == "" {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (e *Extractor) containers(page browser.Page) ([]browser.Element, error) {
	for _, sel := range e.site.Containers {
		cards, err := page.Find(sel)
		if err != nil {
			return nil, err
		}
		if len(cards) > 0 {
			e.log.Info(fmt.Sprintf("Found %d jobs on %s", len(cards), e.Name()), zap.Stringer("selector", sel))
			return cards, nil
		}
	}
	if e.site.Generic.Value == "" {
		return nil, nil
	}
	cards, err := page.Find(e.site.Generic)
	if err != nil {
		return nil, err
	}
	if len(cards) > 0 {
		e.log.Info(fmt.Sprintf("Found %d jobs on %s using generic selector", len(cards), e.Name()))
	}
	return cards, nil
}

func (e *Extractor) listing(card browser.Element) (JobListing, error) {
	job := JobListing{Source: e.site.Source}
	var err error
	fields := []struct {
		dst *string
		f   Field
	}{
		{&job.Title, e.site.Title},
		{&job.Company, e.site.Company},
		{&job.Salary, e.site.Salary},
		{&job.PostedDate, e.site.PostedDate},
		{&job.Summary, e.site.Summary},
	}
	for _, fd := range fields {
		if *fd.dst, err = fd.f.extract(card); err != nil {
			return JobListing{}, err
		}
	}
	if job.Link, err = e.link(card); err != nil {
		return JobListing{}, err
	}
	return job, nil
}

func (e *Extractor) link(card browser.Element) (string, error) {
	anchors, err := card.Find(browser.Tag("a"))
	if err != nil {
		return "", fmt.Errorf("lookup links: %w", err)
	}
	for _, a := range anchors {
		href, err := a.Attribute("href")
		if err != nil {
			return "", fmt.Errorf("read href: %w", err)
		}
		if href == "" {
			continue
		}
		//match on the resolved URL, as a browser reports it
		if abs := e.absolute(href); strings.Contains(abs, e.site.LinkFragment) {
			return abs, nil
		}
	}
	return NotAvailable, nil
}

func (e *Extractor) absolute(href string) string {
	if e.site.Origin == "" {
		return href
	}
	base, err := url.Parse(e.site.Origin)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
