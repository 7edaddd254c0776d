package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/export"
	"go-job-scraper/internal/reporter"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

func TestValuesFromFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   search.Values
		wantOK bool
	}{
		{
			name: "repeated and comma lists",
			args: []string{"--job_title", "go dev", "--sources", "Indeed", "--sources", "LinkedIn", "--keywords", "go,rust", "--remote", "--salary_min", "90000"},
			want: search.Values{
				search.KeyJobTitle:  "go dev",
				search.KeySources:   "Indeed,LinkedIn",
				search.KeyKeywords:  "go,rust",
				search.KeyRemote:    "true",
				search.KeySalaryMin: "90000",
			},
			wantOK: true,
		},
		{
			name:   "location without title still skips the prompt",
			args:   []string{"--location", "Austin"},
			want:   search.Values{search.KeyLocation: "Austin"},
			wantOK: true,
		},
		{
			name:   "config only",
			args:   []string{"--config", "other.yaml"},
			want:   search.Values{},
			wantOK: false,
		},
		{
			name:   "nothing",
			want:   search.Values{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			registerFlags(fs)
			require.NoError(t, fs.Parse(tt.args))

			got, ok := valuesFromFlags(fs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValuesFromFlagsMissingTitle(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--remote"}))

	v, _ := valuesFromFlags(fs)
	_, err := search.Build(v)
	assert.ErrorIs(t, err, search.ErrJobTitleRequired)
}

type fakeSession struct {
	page   browser.Page
	closed bool
}

func (s *fakeSession) NewPage() (browser.Page, error) { return s.page, nil }
func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type staticScraper struct {
	src    search.Source
	jobs   []scraper.JobListing
	cancel context.CancelFunc
}

func (s staticScraper) Source() search.Source { return s.src }
func (s staticScraper) Name() string          { return string(s.src) }
func (s staticScraper) Scrape(context.Context, browser.Page, *search.Filters) ([]scraper.JobListing, error) {
	if s.cancel != nil {
		s.cancel()
	}
	return s.jobs, nil
}

type recordingNotifier struct {
	session *fakeSession
	calls   int
	stats   reporter.Stats
	res     *export.Result
	closed  bool
	errs    []error
}

func (n *recordingNotifier) SendError(err error) error {
	n.errs = append(n.errs, err)
	return nil
}

func (n *recordingNotifier) SendSummary(_ *search.Filters, s reporter.Stats, res *export.Result) error {
	n.calls++
	n.stats, n.res = s, res
	n.closed = n.session.closed
	return nil
}

func newTestPipeline(t *testing.T, out *bytes.Buffer) (*pipeline, *fakeSession, *recordingNotifier) {
	t.Helper()
	page, err := browser.NewHTMLPage("<html></html>")
	require.NoError(t, err)
	session := &fakeSession{page: page}
	notifier := &recordingNotifier{session: session}
	log := zaptest.NewLogger(t)

	p := &pipeline{
		log:    log,
		out:    out,
		launch: func(context.Context) (browser.Session, error) { return session, nil },
		scrapers: []scraper.Scraper{
			staticScraper{src: search.Indeed, jobs: []scraper.JobListing{
				{Source: search.Indeed, Title: "Python Developer", Company: "Acme", Salary: "N/A", Link: "N/A", PostedDate: "1 day ago", Summary: "N/A"},
			}},
			staticScraper{src: search.LinkedIn, jobs: []scraper.JobListing{
				{Source: search.LinkedIn, Title: "Java Developer", Company: "Initech", Salary: "N/A", Link: "N/A", PostedDate: "N/A", Summary: "N/A"},
			}},
		},
		exporter: export.NewExporter(log, export.NewCSVSink(t.TempDir())),
		notify:   notifier,
	}
	return p, session, notifier
}

func TestPipelineRun(t *testing.T) {
	var out bytes.Buffer
	p, session, notifier := newTestPipeline(t, &out)

	f := &search.Filters{JobTitle: "developer", Keywords: []string{"python"}, Sources: search.AllSources}
	require.NoError(t, p.run(context.Background(), f))

	text := out.String()
	assert.Contains(t, text, "Scraping job listings for 'developer' in 'any location'")
	assert.Contains(t, text, "✅ 1 jobs (out of 2 total) found and saved to CSV")
	assert.Contains(t, text, "Total jobs found: 2")
	assert.Contains(t, text, "- Indeed: 1\n- LinkedIn: 1")
	assert.True(t, strings.HasSuffix(text, "🏁 Job search complete!\n"))

	assert.True(t, session.closed)
	require.Equal(t, 1, notifier.calls)
	assert.True(t, notifier.closed, "browser must be closed before reporting")
	assert.Equal(t, 1, notifier.stats.Matched)
	require.NotNil(t, notifier.res)
	assert.Equal(t, "CSV", notifier.res.Sink)
}

func TestPipelineNoMatches(t *testing.T) {
	var out bytes.Buffer
	p, _, notifier := newTestPipeline(t, &out)

	f := &search.Filters{JobTitle: "developer", Companies: []string{"Globex"}, Sources: search.AllSources}
	require.NoError(t, p.run(context.Background(), f))

	assert.Contains(t, out.String(), "❌ No matching jobs found. Try broadening your search criteria.")
	assert.Contains(t, out.String(), "Jobs after filtering: 0")
	assert.Nil(t, notifier.res)
}

func TestPipelineBrowserFailure(t *testing.T) {
	var out bytes.Buffer
	p, _, notifier := newTestPipeline(t, &out)
	p.launch = func(context.Context) (browser.Session, error) { return nil, errors.New("chromium not installed") }

	err := p.run(context.Background(), &search.Filters{JobTitle: "developer", Sources: search.AllSources})
	assert.ErrorContains(t, err, "chromium not installed")
	assert.Contains(t, out.String(), "Could not initialize web browser")
	assert.NotContains(t, out.String(), "Job Search Statistics")
	assert.Zero(t, notifier.calls)
	require.Len(t, notifier.errs, 1)
	assert.ErrorContains(t, notifier.errs[0], "chromium not installed")
}

func TestPipelineSavesAfterRunContextEnds(t *testing.T) {
	var out bytes.Buffer
	p, _, notifier := newTestPipeline(t, &out)

	//the first board ends the run, the second never starts
	ctx, cancel := context.WithCancel(context.Background())
	first := p.scrapers[0].(staticScraper)
	first.cancel = cancel
	p.scrapers[0] = first

	require.NoError(t, p.run(ctx, &search.Filters{JobTitle: "developer", Sources: search.AllSources}))

	assert.Contains(t, out.String(), "✅ 1 jobs (out of 1 total) found and saved to CSV")
	require.NotNil(t, notifier.res)
	assert.Equal(t, 1, notifier.res.Rows)
	assert.Empty(t, notifier.errs)
}

func TestPipelineSaveFailureAlerts(t *testing.T) {
	var out bytes.Buffer
	p, _, notifier := newTestPipeline(t, &out)
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, nil, 0644))
	p.exporter = export.NewExporter(zaptest.NewLogger(t), export.NewCSVSink(filepath.Join(blocked, "out")))

	require.NoError(t, p.run(context.Background(), &search.Filters{JobTitle: "developer", Sources: search.AllSources}))

	assert.Contains(t, out.String(), "❌ Could not save results")
	assert.Contains(t, out.String(), "Total jobs found: 2")
	assert.Nil(t, notifier.res)
	require.Len(t, notifier.errs, 1)
	assert.ErrorContains(t, notifier.errs[0], "could not save 2 jobs")
}
