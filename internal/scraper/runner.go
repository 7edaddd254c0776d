package scraper

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/search"
)

// Runner scrapes the requested boards one after another on a single page.
type Runner struct {
	scrapers map[search.Source]Scraper
	log      *zap.Logger
}

func NewRunner(log *zap.Logger, scrapers ...Scraper) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{scrapers: make(map[search.Source]Scraper, len(scrapers)), log: log}
	for _, s := range scrapers {
		r.scrapers[s.Source()] = s
	}
	return r
}

// Run returns the concatenated listings in board order. A failing board
// contributes nothing and does not stop the others.
func (r *Runner) Run(ctx context.Context, page browser.Page, f *search.Filters) []JobListing {
	var all []JobListing
	for _, src := range search.AllSources {
		if !f.Wants(src) {
			continue
		}
		s, ok := r.scrapers[src]
		if !ok {
			r.log.Warn("⚠️ No scraper registered", zap.String("source", string(src)))
			continue
		}
		if ctx.Err() != nil {
			r.log.Warn("⚠️ Run cancelled, skipping remaining boards", zap.Error(ctx.Err()))
			break
		}

		r.log.Info(fmt.Sprintf("▶️ Starting scraper: %s", s.Name()))
		jobs, err := s.Scrape(ctx, page, f)
		if err != nil {
			r.log.Error(fmt.Sprintf("❌ Error scraping %s", s.Name()),
				zap.String("source", string(src)), zap.String("stage", "scrape"), zap.Error(err))
			continue
		}
		r.log.Info(fmt.Sprintf("✅ Found %d jobs on %s", len(jobs), s.Name()))
		all = append(all, jobs...)
	}
	return all
}
