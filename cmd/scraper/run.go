package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/config"
	"go-job-scraper/internal/export"
	"go-job-scraper/internal/filter"
	"go-job-scraper/internal/logger"
	"go-job-scraper/internal/reporter"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/scraper/glassdoor"
	"go-job-scraper/internal/scraper/indeed"
	"go-job-scraper/internal/scraper/linkedin"
	"go-job-scraper/internal/scraper/ziprecruiter"
	"go-job-scraper/internal/search"
	"go-job-scraper/utils"
)

var (
	jobTitle        string
	location        string
	datePosted      string
	jobType         string
	experienceLevel string
	salaryMin       int
	remote          bool
	sources         []string
	keywords        []string
	companies       []string
	maxDaysOld      int
	configPath      string
)

func init() {
	registerFlags(rootCmd.Flags())
}

func registerFlags(f *pflag.FlagSet) {
	f.StringVar(&jobTitle, search.KeyJobTitle, "", "Job title to search for")
	f.StringVar(&location, search.KeyLocation, "", "Location to search in")
	f.StringVar(&datePosted, search.KeyDatePosted, "", "Filter by date posted (24h, 3d, 7d, 14d, 30d)")
	f.StringVar(&jobType, search.KeyJobType, "", "Filter by job type (full_time, part_time, contract, temporary, internship)")
	f.StringVar(&experienceLevel, search.KeyExperienceLevel, "", "Filter by experience level (entry, mid, senior)")
	f.IntVar(&salaryMin, search.KeySalaryMin, 0, "Minimum salary")
	f.BoolVar(&remote, search.KeyRemote, false, "Remote jobs only")
	f.StringSliceVar(&sources, search.KeySources, nil, "Sources to scrape (Indeed, Glassdoor, LinkedIn, ZipRecruiter)")
	f.StringSliceVar(&keywords, search.KeyKeywords, nil, "Keywords that must appear in job title")
	f.StringSliceVar(&companies, search.KeyCompanies, nil, "Companies to filter by")
	f.IntVar(&maxDaysOld, search.KeyMaxDaysOld, 0, "Maximum age of job posting in days")
	f.StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config file")
}

var searchKeys = map[string]bool{
	search.KeyJobTitle: true, search.KeyLocation: true, search.KeyDatePosted: true,
	search.KeyJobType: true, search.KeyExperienceLevel: true, search.KeySalaryMin: true,
	search.KeyRemote: true, search.KeySources: true, search.KeyKeywords: true,
	search.KeyCompanies: true, search.KeyMaxDaysOld: true,
}

// valuesFromFlags collects the search flags that were set on the command
// line. ok is false when none were.
func valuesFromFlags(fs *pflag.FlagSet) (v search.Values, ok bool) {
	v = search.Values{}
	fs.Visit(func(fl *pflag.Flag) {
		if !searchKeys[fl.Name] {
			return
		}
		if sv, isSlice := fl.Value.(pflag.SliceValue); isSlice {
			v[fl.Name] = strings.Join(sv.GetSlice(), ",")
			return
		}
		v[fl.Name] = fl.Value.String()
	})
	return v, len(v) > 0
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLog, err := logger.New(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer baseLog.Sync() //nolint:errcheck
	log := baseLog.With(zap.String("run_id", uuid.NewString()))
	if cfg.Path == "" {
		log.Warn("⚠️ Config file not found, using defaults", zap.String("path", configPath))
	}

	values, ok := valuesFromFlags(cmd.Flags())
	if !ok {
		values = NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Collect()
	}
	f, err := search.Build(values)
	if err != nil {
		if errors.Is(err, search.ErrJobTitleRequired) {
			log.Error("Job title is required.")
		}
		return err
	}
	log.Info("🔧 Starting job search", zap.Any("filters", f))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	p := &pipeline{
		log:      log,
		out:      cmd.OutOrStdout(),
		launch:   func(ctx context.Context) (browser.Session, error) { return browser.Launch(ctx, cfg.BrowserOptions(log)) },
		scrapers: newScrapers(cfg, log),
		exporter: newExporter(ctx, cfg, log),
	}
	if cfg.Telegram.Enabled() {
		tg, err := reporter.NewTelegramReporter(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Warn("⚠️ Telegram summary disabled", zap.Error(err))
		} else {
			p.notify = tg
		}
	}
	return p.run(ctx, f)
}

func newScrapers(cfg *config.Config, log *zap.Logger) []scraper.Scraper {
	opts := []scraper.Option{scraper.WithDebugger(utils.NewScreenShotDebugger(cfg.Browser.ScreenshotDir, log))}
	if !cfg.Browser.HumanScroll {
		opts = append(opts, scraper.WithoutScroll())
	}
	d := browser.RandomDelayer{}
	return []scraper.Scraper{
		indeed.NewScraper(log, d, opts...),
		glassdoor.NewScraper(log, d, opts...),
		linkedin.NewScraper(log, d, opts...),
		ziprecruiter.NewScraper(log, d, opts...),
	}
}

// newExporter wires Google Sheets first and the CSV file as fallback. A
// workbook that cannot be opened leaves only the CSV sink.
func newExporter(ctx context.Context, cfg *config.Config, log *zap.Logger) *export.Exporter {
	var sheets export.Sink
	if cfg.Sheets.Enabled {
		wb, err := export.NewGoogleWorkbook(ctx, export.GoogleConfig{
			CredentialsPath: cfg.Sheets.CredentialsPath,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			SpreadsheetName: cfg.Sheets.SpreadsheetName,
		})
		if err != nil {
			log.Warn("⚠️ Google Sheets unavailable, results will go to CSV", zap.Error(err))
		} else {
			sheets = export.NewSheetsSink(wb)
		}
	}
	return export.NewExporter(log, sheets, export.NewCSVSink(cfg.Output.Dir))
}

type notifier interface {
	SendSummary(f *search.Filters, s reporter.Stats, res *export.Result) error
	SendError(err error) error
}

// exportTimeout bounds saving once scraping is over, even when the run
// context has already expired.
const exportTimeout = 2 * time.Minute

// pipeline is one search run: scrape, filter, export, report.
type pipeline struct {
	log      *zap.Logger
	out      io.Writer
	launch   func(ctx context.Context) (browser.Session, error)
	scrapers []scraper.Scraper
	exporter *export.Exporter
	notify   notifier
}

func (p *pipeline) run(ctx context.Context, f *search.Filters) error {
	where := f.Location
	if where == "" {
		where = "any location"
	}
	fmt.Fprintf(p.out, "\n🔍 Scraping job listings for '%s' in '%s'...\n", f.JobTitle, where)

	all, err := p.scrape(ctx, f)
	if err != nil {
		p.log.Error("❌ Failed to set up browser", zap.String("stage", "browser"), zap.Error(err))
		fmt.Fprintln(p.out, "❌ Error: Could not initialize web browser. Check your browser installation.")
		p.alert(err)
		return err
	}

	matched := filter.Apply(all, filter.CriteriaFrom(f))

	var res *export.Result
	if len(matched) > 0 {
		r, err := p.save(ctx, matched, f)
		if err != nil {
			fmt.Fprintf(p.out, "❌ Could not save results: %v\n", err)
			p.alert(fmt.Errorf("could not save %d jobs: %w", len(matched), err))
		} else {
			res = &r
			fmt.Fprintf(p.out, "✅ %d jobs (out of %d total) found and saved to %s: %s\n", len(matched), len(all), r.Sink, r.Location)
		}
	} else {
		fmt.Fprintln(p.out, "❌ No matching jobs found. Try broadening your search criteria.")
	}

	stats := reporter.Compute(all, matched)
	if err := stats.Print(p.out); err != nil {
		return err
	}

	if p.notify != nil {
		if err := p.notify.SendSummary(f, stats, res); err != nil {
			p.log.Warn("⚠️ Failed to send Telegram summary", zap.Error(err))
		}
	}

	fmt.Fprintln(p.out, "\n🏁 Job search complete!")
	return nil
}

// save detaches from the run context so a timeout or Ctrl+C during
// scraping does not discard what was already collected.
func (p *pipeline) save(ctx context.Context, matched []scraper.JobListing, f *search.Filters) (export.Result, error) {
	ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exportTimeout)
	defer cancel()
	return p.exporter.Export(ectx, matched, f)
}

func (p *pipeline) alert(err error) {
	if p.notify == nil {
		return
	}
	if sendErr := p.notify.SendError(err); sendErr != nil {
		p.log.Warn("⚠️ Failed to send Telegram alert", zap.Error(sendErr))
	}
}

// scrape owns the browser session; it is closed before results are reported.
func (p *pipeline) scrape(ctx context.Context, f *search.Filters) ([]scraper.JobListing, error) {
	session, err := p.launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			p.log.Warn("⚠️ Failed to close browser", zap.Error(err))
		}
	}()

	page, err := session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return scraper.NewRunner(p.log, p.scrapers...).Run(ctx, page, f), nil
}
