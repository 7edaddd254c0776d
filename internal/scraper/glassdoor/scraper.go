package glassdoor

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

const (
	origin          = "https://www.glassdoor.com"
	defaultLocation = "united-states"
	summaryLimit    = 200
)

var (
	dateMap = map[search.DatePosted]string{
		search.Last24Hours: "1d", search.Last3Days: "3d", search.Last7Days: "7d",
		search.Last14Days: "14d", search.Last30Days: "30d",
	}
	typeMap = map[search.JobType]string{
		search.FullTime: "FULLTIME", search.PartTime: "PARTTIME", search.Contract: "CONTRACT",
		search.Temporary: "TEMPORARY", search.Internship: "INTERNSHIP",
	}
	expMap = map[search.ExperienceLevel]string{
		search.Entry: "ENTRYLEVEL", search.Mid: "MIDLEVEL", search.Senior: "SENIORLEVEL",
	}
)

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// BuildURL returns the Glassdoor SEO search URL. The IL/KO ranges are
// character offsets of the location and title inside the path. Filters are
// applied in the page, not in the URL.
func BuildURL(jobTitle, location string, _ *search.Filters) string {
	loc := defaultLocation
	if location != "" {
		loc = slug(location)
	}
	title := slug(jobTitle)
	locLen := utf8.RuneCountInString(loc)
	titleLen := utf8.RuneCountInString(title)
	return fmt.Sprintf("%s/Job/%s-%s-jobs-SRCH_IL.0,%d_IC1132348_KO%d,%d.htm",
		origin, loc, title, locLen, locLen+1, locLen+1+titleLen)
}

// Truncate cuts s to the summary limit and marks the cut.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= summaryLimit {
		return s
	}
	return string([]rune(s)[:summaryLimit]) + "..."
}

type step struct {
	css   string
	pause time.Duration
}

// filterSteps lists the clicks that apply f through the filter panel.
func filterSteps(f *search.Filters) []step {
	steps := []step{{"button[data-test='filters-more']", time.Second}}
	if v, ok := dateMap[f.DatePosted]; ok {
		steps = append(steps, step{fmt.Sprintf("[data-test='DATEPOSTED_%s']", v), time.Second})
	}
	if v, ok := typeMap[f.JobType]; ok {
		steps = append(steps, step{fmt.Sprintf("[data-test='JOBTYPE_%s']", v), time.Second})
	}
	if v, ok := expMap[f.ExperienceLevel]; ok {
		steps = append(steps, step{fmt.Sprintf("[data-test='EXPERIENCE_%s']", v), time.Second})
	}
	return append(steps, step{"[data-test='apply-filters']", 2 * time.Second})
}

func clickFirst(ctx context.Context, page browser.Page, css string) (bool, error) {
	els, err := page.Find(browser.CSS(css))
	if err != nil || len(els) == 0 {
		return false, err
	}
	return true, els[0].Click(ctx)
}

// prepare closes the sign-in modal and applies filters through the UI.
// Every click is best effort.
func prepare(ctx context.Context, page browser.Page, f *search.Filters, log *zap.Logger, d browser.Delayer) {
	clicked, err := clickFirst(ctx, page, "span.SVGInline.modal_closeIcon")
	if err != nil {
		log.Warn("⚠️ Could not close Glassdoor popup", zap.Error(err))
	} else if clicked {
		if d.Wait(ctx, time.Second, time.Second) != nil {
			return
		}
	}

	for _, s := range filterSteps(f) {
		clicked, err := clickFirst(ctx, page, s.css)
		if err != nil {
			log.Warn("⚠️ Error applying Glassdoor filter", zap.String("selector", s.css), zap.Error(err))
			continue
		}
		if !clicked {
			continue
		}
		if d.Wait(ctx, s.pause, s.pause) != nil {
			return
		}
	}
}

func Site() scraper.Site {
	return scraper.Site{
		Source:    search.Glassdoor,
		Origin:    origin,
		BuildURL:  func(f *search.Filters) string { return BuildURL(f.JobTitle, f.Location, f) },
		SettleMin: 4 * time.Second,
		SettleMax: 7 * time.Second,
		Prepare:   prepare,

		Containers: []browser.Selector{
			browser.Class("react-job-listing"),
			browser.Class("jobCard"),
			browser.Class("JobCard_jobCard__JGRMQ"),
		},
		Generic: browser.CSS("li[data-id]"),

		Title: scraper.Field{Chain: append(scraper.Classes("jobLink", "job-title", "jobTitle"),
			scraper.Lookup{Selector: browser.CSS("a[data-test='job-link']")})},
		Company: scraper.Field{Chain: append(scraper.Classes("d-flex", "employer-name", "companyName"),
			scraper.Lookup{Selector: browser.CSS("[data-test='employer-name']")})},
		Salary: scraper.Field{
			Chain: append(scraper.Classes("css-1hbqxax", "salary-estimate", "salaryEstimate"),
				scraper.Lookup{Selector: browser.CSS("[data-test='detailSalary']")}),
			Default: scraper.NotAvailable,
		},
		//listing cards show no posting date
		PostedDate: scraper.Field{Default: scraper.NotAvailable},
		Summary: scraper.Field{
			Chain:   scraper.Classes("jobDescriptionContent", "description", "jobDesc"),
			Default: scraper.NotAvailable,
			Format:  Truncate,
		},
		LinkFragment: "/job-listing/",
	}
}

func NewScraper(log *zap.Logger, d browser.Delayer, opts ...scraper.Option) *scraper.Extractor {
	return scraper.NewExtractor(Site(), log, d, opts...)
}
