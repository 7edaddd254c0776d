package browser

import (
	"context"
	"errors"
	"strings"
)

// ErrNotInteractive is returned by pages that can be queried but not driven,
// such as a static HTML snapshot.
var ErrNotInteractive = errors.New("page is not interactive")

type By int

const (
	ByClass By = iota
	ByCSS
	ByTag
)

// Selector is a driver independent locator.
type Selector struct {
	By    By
	Value string
}

func Class(name string) Selector { return Selector{By: ByClass, Value: name} }
func CSS(expr string) Selector   { return Selector{By: ByCSS, Value: expr} }
func Tag(name string) Selector   { return Selector{By: ByTag, Value: name} }

// CSS renders the selector for CSS based drivers. A class value with spaces
// ("metadata salary") matches elements carrying all of those classes.
func (s Selector) CSS() string {
	if s.By == ByClass {
		return "." + strings.Join(strings.Fields(s.Value), ".")
	}
	return s.Value
}

func (s Selector) String() string {
	switch s.By {
	case ByClass:
		return "class=" + s.Value
	case ByTag:
		return "tag=" + s.Value
	default:
		return "css=" + s.Value
	}
}

// Page is one browser tab.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Find(sel Selector) ([]Element, error)
}

// Element is a node found on a Page. Attribute returns "" when the
// attribute is absent.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, error)
	Find(sel Selector) ([]Element, error)
	Click(ctx context.Context) error
}

// Screenshotter is implemented by pages that can capture themselves.
type Screenshotter interface {
	Screenshot(path string) error
}

// Scroller is implemented by pages that can scroll the viewport.
type Scroller interface {
	Scroll(dy float64) error
}

// Session owns the browser process. Close releases it.
type Session interface {
	NewPage() (Page, error)
	Close() error
}
