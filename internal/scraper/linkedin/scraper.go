package linkedin

import (
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

const origin = "https://www.linkedin.com"

var (
	dateMap = map[search.DatePosted]string{
		search.Last24Hours: "r86400", search.Last3Days: "r259200", search.Last7Days: "r604800",
		search.Last14Days: "r1209600", search.Last30Days: "r2592000",
	}
	typeMap = map[search.JobType]string{
		search.FullTime: "F", search.PartTime: "P", search.Contract: "C",
		search.Temporary: "T", search.Internship: "I",
	}
	expMap = map[search.ExperienceLevel]string{
		search.Entry: "1", search.Mid: "2,3", search.Senior: "4,5",
	}
)

// escape encodes spaces as %20, which the guest search page expects.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildURL returns the LinkedIn guest job search URL. Salary has no URL
// parameter on this board.
func BuildURL(jobTitle, location string, f *search.Filters) string {
	u := origin + "/jobs/search/?keywords=" + escape(jobTitle)
	if location != "" {
		u += "&location=" + escape(location)
	}
	if f == nil {
		return u
	}
	if v, ok := dateMap[f.DatePosted]; ok {
		u += "&f_TPR=" + v
	}
	if v, ok := typeMap[f.JobType]; ok {
		u += "&f_JT=" + v
	}
	if v, ok := expMap[f.ExperienceLevel]; ok {
		u += "&f_E=" + v
	}
	if f.Remote {
		u += "&f_WT=2"
	}
	return u
}

func Site() scraper.Site {
	return scraper.Site{
		Source:    search.LinkedIn,
		Origin:    origin,
		BuildURL:  func(f *search.Filters) string { return BuildURL(f.JobTitle, f.Location, f) },
		SettleMin: 3 * time.Second,
		SettleMax: 6 * time.Second,

		Containers: []browser.Selector{
			browser.Class("base-search-card__info"),
			browser.Class("job-search-card"),
			browser.Class("jobs-search-results__list-item"),
		},
		Generic: browser.CSS("li.jobs-search-results__list-item"),

		Title: scraper.Field{Chain: scraper.Classes("base-search-card__title", "job-card-list__title", "job-title")},
		Company: scraper.Field{Chain: scraper.Classes(
			"base-search-card__subtitle", "job-card-container__company-name", "job-card-container__primary-description")},
		Salary: scraper.Field{Chain: scraper.Classes("job-search-card__salary-info", "salary-badge"), Default: scraper.NotAvailable},
		//machine readable date first, visible "2 days ago" otherwise
		PostedDate: scraper.Field{
			Chain: []scraper.Lookup{
				{Selector: browser.Tag("time"), Attr: "datetime"},
				{Selector: browser.Tag("time")},
			},
			Default: scraper.NotAvailable,
		},
		//cards carry no description, the location stands in for it
		Summary: scraper.Field{
			Chain:   scraper.Classes("job-search-card__location", "location"),
			Default: scraper.NotAvailable,
			Format:  func(s string) string { return "Location: " + s },
		},
		LinkFragment: "/jobs/view/",
	}
}

func NewScraper(log *zap.Logger, d browser.Delayer, opts ...scraper.Option) *scraper.Extractor {
	return scraper.NewExtractor(Site(), log, d, opts...)
}
