package export

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)

func sampleListings() []scraper.JobListing {
	return []scraper.JobListing{
		{Source: search.Indeed, Title: "Python Developer", Company: "Acme", Salary: "$100,000 - $120,000", Link: "https://www.indeed.com/viewjob?jk=1", PostedDate: "2 days ago", Summary: "APIs, pipelines"},
		{Source: search.LinkedIn, Title: "Go Engineer", Company: "Initech", Salary: "N/A", Link: "N/A", PostedDate: "2024-04-30", Summary: "Location: Remote"},
	}
}

func sampleFilters() *search.Filters {
	return &search.Filters{
		JobTitle:   "python developer",
		Location:   "New York",
		DatePosted: search.Last7Days,
		SalaryMin:  80000,
		Remote:     true,
		Sources:    []search.Source{search.Indeed, search.LinkedIn},
		Keywords:   []string{"python", "django"},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleListings(), sampleFilters())
	require.Len(t, rows, 5)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"Filters:",
		"Job Title: python developer, Location: New York, Date Posted: 7d, Salary Min: 80000, Remote: Yes, Sources: [Indeed, LinkedIn], Keywords: [python, django]",
	}, rows[1])
	assert.Empty(t, rows[2])
	assert.Equal(t, "Python Developer", rows[3][1])
	assert.Equal(t, "LinkedIn", rows[4][0])
}

func TestRowsWithoutFilters(t *testing.T) {
	rows := Rows(sampleListings(), nil)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
}

func TestWorksheetName(t *testing.T) {
	tests := []struct {
		name string
		f    *search.Filters
		want string
	}{
		{"no filters", nil, "2024-05-01"},
		{"title only", &search.Filters{JobTitle: "nurse"}, "2024-05-01 - nurse"},
		{"title and location", &search.Filters{JobTitle: "go developer", Location: "Berlin"}, "2024-05-01 - go developer Berlin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorksheetName(fixedNow, tt.f))
		})
	}
}

type fakeWorksheet struct {
	cleared bool
	rows    [][]string
	err     error
}

func (w *fakeWorksheet) Clear(context.Context) error {
	w.cleared = true
	return nil
}

func (w *fakeWorksheet) AppendRows(_ context.Context, rows [][]string) error {
	if w.err != nil {
		return w.err
	}
	w.rows = append(w.rows, rows...)
	return nil
}

type fakeWorkbook struct {
	sheets map[string]*fakeWorksheet
	err    error
}

func (b *fakeWorkbook) Worksheet(_ context.Context, name string) (Worksheet, error) {
	if b.err != nil {
		return nil, b.err
	}
	ws, ok := b.sheets[name]
	if !ok {
		ws = &fakeWorksheet{}
		b.sheets[name] = ws
	}
	return ws, nil
}

func newExporter(t *testing.T, sinks ...Sink) *Exporter {
	e := NewExporter(zaptest.NewLogger(t), sinks...)
	e.now = func() time.Time { return fixedNow }
	return e
}

func newCSV(dir string) *CSVSink {
	s := NewCSVSink(dir)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestExportToSheets(t *testing.T) {
	wb := &fakeWorkbook{sheets: map[string]*fakeWorksheet{}}
	dir := t.TempDir()

	res, err := newExporter(t, NewSheetsSink(wb), newCSV(dir)).Export(context.Background(), sampleListings(), sampleFilters())
	require.NoError(t, err)
	assert.Equal(t, Result{Sink: "Google Sheets", Location: "2024-05-01 - python developer New York", Rows: 2}, res)

	ws := wb.sheets["2024-05-01 - python developer New York"]
	require.NotNil(t, ws)
	assert.True(t, ws.cleared)
	assert.Equal(t, Rows(sampleListings(), sampleFilters()), ws.rows)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "fallback must not run when sheets succeed")
}

func TestExportFallsBackToCSV(t *testing.T) {
	wb := &fakeWorkbook{err: errors.New("invalid_grant")}
	dir := t.TempDir()

	res, err := newExporter(t, NewSheetsSink(wb), newCSV(dir)).Export(context.Background(), sampleListings(), sampleFilters())
	require.NoError(t, err)
	assert.Equal(t, "CSV", res.Sink)
	assert.Equal(t, filepath.Join(dir, "job_listings_20240501_093015.csv"), res.Location)

	records := readCSV(t, res.Location)
	want := Rows(sampleListings(), sampleFilters())
	require.Len(t, records, len(want))
	for _, rec := range records {
		assert.Len(t, rec, len(Header))
	}
	assert.Equal(t, Header, records[0])
	assert.Equal(t, want[1], records[1][:2])
	assert.Equal(t, make([]string, len(Header)), records[2])
	assert.Equal(t, sampleListings()[0].Row(), records[3])
	assert.Equal(t, sampleListings()[1].Row(), records[4])
}

func TestCSVMatchesSheetsLayout(t *testing.T) {
	rows := Rows(sampleListings(), sampleFilters())

	ws := &fakeWorksheet{}
	wb := &fakeWorkbook{sheets: map[string]*fakeWorksheet{"jobs": ws}}
	_, err := NewSheetsSink(wb).Save(context.Background(), "jobs", rows)
	require.NoError(t, err)

	path, err := newCSV(t.TempDir()).Save(context.Background(), "jobs", rows)
	require.NoError(t, err)
	records := readCSV(t, path)

	require.Len(t, records, len(ws.rows))
	for i, row := range ws.rows {
		assert.Len(t, records[i], len(Header), "row %d", i)
		assert.Equal(t, row, records[i][:len(row)], "row %d", i)
	}
}

func TestExportFallsBackWithCancelledContext(t *testing.T) {
	wb := &fakeWorkbook{err: errors.New("context canceled")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newExporter(t, NewSheetsSink(wb), newCSV(t.TempDir())).Export(ctx, sampleListings(), sampleFilters())
	require.NoError(t, err)
	assert.Equal(t, "CSV", res.Sink)
	assert.Equal(t, 2, res.Rows)
	assert.Len(t, readCSV(t, res.Location), 5)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportAppendFailureFallsBack(t *testing.T) {
	wb := &fakeWorkbook{sheets: map[string]*fakeWorksheet{
		"2024-05-01 - python developer New York": {err: errors.New("quota exceeded")},
	}}
	res, err := newExporter(t, NewSheetsSink(wb), newCSV(t.TempDir())).Export(context.Background(), sampleListings(), sampleFilters())
	require.NoError(t, err)
	assert.Equal(t, "CSV", res.Sink)
}

func TestExportBothFail(t *testing.T) {
	wb := &fakeWorkbook{err: errors.New("invalid_grant")}
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, nil, 0644))

	_, err := newExporter(t, NewSheetsSink(wb), newCSV(filepath.Join(blocked, "out"))).Export(context.Background(), sampleListings(), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid_grant")
	assert.ErrorContains(t, err, "CSV")
}

func TestExportNoSink(t *testing.T) {
	_, err := newExporter(t).Export(context.Background(), sampleListings(), nil)
	assert.ErrorIs(t, err, ErrNoSink)
}
