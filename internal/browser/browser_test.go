package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<div class="card metadata salary"><h2 class="title">Go Dev</h2><a href="/job/1">apply</a></div>
<div class="card"><h2 class="title">  Rust Dev </h2><time datetime="2024-05-01">May 1</time></div>
<button data-test="apply-filters">Apply</button>
</body></html>`

func TestSelectorCSS(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{Class("jobTitle"), ".jobTitle"},
		{Class("metadata salary"), ".metadata.salary"},
		{CSS("div[data-testid='jobListing']"), "div[data-testid='jobListing']"},
		{Tag("a"), "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sel.CSS(), tt.sel.String())
	}
}

func TestHTMLPageFind(t *testing.T) {
	p, err := NewHTMLPage(fixture)
	require.NoError(t, err)

	cards, err := p.Find(Class("card"))
	require.NoError(t, err)
	require.Len(t, cards, 2)

	titles, err := cards[1].Find(Class("title"))
	require.NoError(t, err)
	require.Len(t, titles, 1)
	text, _ := titles[0].Text()
	assert.Equal(t, "  Rust Dev ", text)

	times, _ := cards[1].Find(Tag("time"))
	require.Len(t, times, 1)
	dt, _ := times[0].Attribute("datetime")
	assert.Equal(t, "2024-05-01", dt)
	missing, err := times[0].Attribute("title")
	assert.NoError(t, err)
	assert.Empty(t, missing)

	salary, _ := p.Find(Class("metadata salary"))
	assert.Len(t, salary, 1)
}

func TestHTMLPageNavigate(t *testing.T) {
	p, err := NewHTMLPage(fixture, WithLoader(func(_ context.Context, url string) (string, error) {
		if url == "https://bad" {
			return "", errors.New("net::ERR_NAME_NOT_RESOLVED")
		}
		return `<p class="loaded">ok</p>`, nil
	}))
	require.NoError(t, err)

	require.NoError(t, p.Navigate(context.Background(), "https://good"))
	found, _ := p.Find(Class("loaded"))
	assert.Len(t, found, 1)

	err = p.Navigate(context.Background(), "https://bad")
	assert.ErrorContains(t, err, "ERR_NAME_NOT_RESOLVED")
	assert.Equal(t, []string{"https://good", "https://bad"}, p.Visited)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Navigate(ctx, "https://good"), context.Canceled)
}

func TestHTMLPageClick(t *testing.T) {
	static, err := NewHTMLPage(fixture)
	require.NoError(t, err)
	buttons, _ := static.Find(CSS("[data-test='apply-filters']"))
	require.Len(t, buttons, 1)
	assert.ErrorIs(t, buttons[0].Click(context.Background()), ErrNotInteractive)
	assert.Equal(t, []string{"[data-test='apply-filters']"}, static.Clicked)

	var gotCSS string
	var gotIndex int
	live, err := NewHTMLPage(fixture, WithClicker(func(_ context.Context, css string, index int) (string, error) {
		gotCSS, gotIndex = css, index
		return `<p class="applied">done</p>`, nil
	}))
	require.NoError(t, err)
	cards, _ := live.Find(Class("card"))
	require.NoError(t, cards[1].Click(context.Background()))
	assert.Equal(t, ".card", gotCSS)
	assert.Equal(t, 1, gotIndex)
	applied, _ := live.Find(Class("applied"))
	assert.Len(t, applied, 1)

	//nested matches have no page-level path to click
	live2, _ := NewHTMLPage(fixture, WithClicker(func(context.Context, string, int) (string, error) { return "", nil }))
	cards, _ = live2.Find(Class("card"))
	links, _ := cards[0].Find(Tag("a"))
	assert.ErrorIs(t, links[0].Click(context.Background()), ErrNotInteractive)
}

func TestDelayers(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, NoDelay{}.Wait(ctx, time.Hour, 2*time.Hour))

	start := time.Now()
	require.NoError(t, RandomDelayer{}.Wait(ctx, 5*time.Millisecond, 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, NoDelay{}.Wait(cancelled, 0, 0), context.Canceled)
	assert.ErrorIs(t, RandomDelayer{}.Wait(cancelled, time.Hour, time.Hour), context.Canceled)
}

type fakeScroller struct{ steps []float64 }

func (f *fakeScroller) Scroll(dy float64) error {
	f.steps = append(f.steps, dy)
	return nil
}

func TestHumanScroll(t *testing.T) {
	s := &fakeScroller{}
	require.NoError(t, HumanScroll(context.Background(), s, NoDelay{}))
	assert.Equal(t, []float64{540, 540, 540, 540, 540, -200}, s.steps)
}

func TestLoadCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	data := `[{"name":"li_at","value":"abc","domain":".linkedin.com","path":"/","expires":1893456000,"httpOnly":true,"secure":true,"sameSite":"Lax"},
	{"name":"plain","value":"1","domain":"example.com"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	assert.Equal(t, "li_at", cookies[0].Name)
	assert.Equal(t, ".linkedin.com", *cookies[0].Domain)
	assert.Equal(t, 1893456000.0, *cookies[0].Expires)
	assert.True(t, *cookies[0].HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[0].SameSite)

	assert.Equal(t, "/", *cookies[1].Path)
	assert.Nil(t, cookies[1].Expires)
	assert.Nil(t, cookies[1].SameSite)

	_, err = LoadCookies(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBoundEndsWithCaller(t *testing.T) {
	caller, cancelCaller := context.WithCancel(context.Background())
	ctx, cancel := bound(context.Background(), caller, time.Minute)
	defer cancel()

	require.NoError(t, ctx.Err())
	cancelCaller()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("action context still running after the caller was cancelled")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestBoundTimeout(t *testing.T) {
	ctx, cancel := bound(context.Background(), context.Background(), 10*time.Millisecond)
	defer cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestLaunchUnknownDriver(t *testing.T) {
	_, err := Launch(context.Background(), Options{Driver: "selenium"})
	assert.ErrorContains(t, err, "selenium")
}

func TestPlaywrightLive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	s, err := Launch(context.Background(), DefaultOptions())
	if err != nil {
		t.Skipf("playwright not installed: %v", err)
	}
	defer s.Close()

	p, err := s.NewPage()
	require.NoError(t, err)
	require.NoError(t, p.Navigate(context.Background(), "data:text/html,<h1 class='x'>hi</h1>"))
	els, err := p.Find(Class("x"))
	require.NoError(t, err)
	require.Len(t, els, 1)
	text, _ := els[0].Text()
	assert.Equal(t, "hi", text)
}
