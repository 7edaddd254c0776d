package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadFunc fetches the HTML of url.
type LoadFunc func(ctx context.Context, url string) (string, error)

// ClickFunc clicks the index-th match of css in a live page and returns the
// resulting HTML.
type ClickFunc func(ctx context.Context, css string, index int) (string, error)

// HTMLPage answers queries from an HTML snapshot. Without a loader Navigate
// only records the URL; without a clicker Click records the attempt and
// returns ErrNotInteractive.
type HTMLPage struct {
	doc   *goquery.Document
	load  LoadFunc
	click ClickFunc

	Visited []string
	Clicked []string
}

type HTMLOption func(*HTMLPage)

func WithLoader(fn LoadFunc) HTMLOption  { return func(p *HTMLPage) { p.load = fn } }
func WithClicker(fn ClickFunc) HTMLOption { return func(p *HTMLPage) { p.click = fn } }

func NewHTMLPage(html string, opts ...HTMLOption) (*HTMLPage, error) {
	p := &HTMLPage{}
	for _, o := range opts {
		o(p)
	}
	if err := p.SetHTML(html); err != nil {
		return nil, err
	}
	return p, nil
}

// SetHTML replaces the snapshot.
func (p *HTMLPage) SetHTML(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse html: %w", err)
	}
	p.doc = doc
	return nil
}

func (p *HTMLPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Visited = append(p.Visited, url)
	if p.load == nil {
		return nil
	}
	html, err := p.load(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return p.SetHTML(html)
}

func (p *HTMLPage) Find(sel Selector) ([]Element, error) {
	css := sel.CSS()
	var out []Element
	p.doc.Find(css).Each(func(i int, s *goquery.Selection) {
		out = append(out, &htmlElement{page: p, sel: s, css: css, index: i})
	})
	return out, nil
}

func (p *HTMLPage) clickAt(ctx context.Context, css string, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Clicked = append(p.Clicked, css)
	if p.click == nil {
		return ErrNotInteractive
	}
	html, err := p.click(ctx, css, index)
	if err != nil {
		return err
	}
	return p.SetHTML(html)
}

type htmlElement struct {
	page  *HTMLPage
	sel   *goquery.Selection
	css   string // empty for nested matches
	index int
}

func (e *htmlElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e *htmlElement) Attribute(name string) (string, error) {
	v, _ := e.sel.Attr(name)
	return v, nil
}

func (e *htmlElement) Find(sel Selector) ([]Element, error) {
	var out []Element
	e.sel.Find(sel.CSS()).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &htmlElement{page: e.page, sel: s})
	})
	return out, nil
}

// Click is only supported for elements found from the page root.
func (e *htmlElement) Click(ctx context.Context) error {
	if e.css == "" {
		return ErrNotInteractive
	}
	return e.page.clickAt(ctx, e.css, e.index)
}
