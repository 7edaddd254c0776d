package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

var ErrNoSink = errors.New("no export destination configured")

// Sink persists rows under a worksheet name and reports where they went.
type Sink interface {
	Name() string
	Save(ctx context.Context, worksheet string, rows [][]string) (string, error)
}

type Result struct {
	Sink     string
	Location string
	Rows     int
}

// Exporter tries each sink in order and stops at the first success. Every
// sink receives the same rows.
type Exporter struct {
	sinks []Sink
	log   *zap.Logger
	now   func() time.Time
}

func NewExporter(log *zap.Logger, sinks ...Sink) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Exporter{log: log, now: time.Now}
	for _, s := range sinks {
		if s != nil {
			e.sinks = append(e.sinks, s)
		}
	}
	return e
}

func (e *Exporter) Export(ctx context.Context, listings []scraper.JobListing, f *search.Filters) (Result, error) {
	if len(e.sinks) == 0 {
		return Result{}, ErrNoSink
	}
	rows := Rows(listings, f)
	name := WorksheetName(e.now(), f)

	var errs []error
	for i, s := range e.sinks {
		loc, err := s.Save(ctx, name, rows)
		if err != nil {
			e.log.Error(fmt.Sprintf("❌ Error saving to %s", s.Name()), zap.String("stage", "export"), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			if i+1 < len(e.sinks) {
				e.log.Warn(fmt.Sprintf("⚠️ Could not save to %s. Saving to %s instead.", s.Name(), e.sinks[i+1].Name()))
			}
			continue
		}
		e.log.Info(fmt.Sprintf("✅ Job data saved to %s", s.Name()), zap.String("location", loc), zap.Int("jobs", len(listings)))
		return Result{Sink: s.Name(), Location: loc, Rows: len(listings)}, nil
	}
	return Result{}, errors.Join(errs...)
}
