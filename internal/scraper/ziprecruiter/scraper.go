package ziprecruiter

import (
	"net/url"
	"time"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

const origin = "https://www.ziprecruiter.com"

var dateMap = map[search.DatePosted]string{
	search.Last24Hours: "1", search.Last3Days: "3", search.Last7Days: "7",
	search.Last14Days: "14", search.Last30Days: "30",
}

// BuildURL returns the ZipRecruiter search URL. Experience and salary have
// no URL parameter on this board.
func BuildURL(jobTitle, location string, f *search.Filters) string {
	u := origin + "/jobs-search?search=" + url.QueryEscape(jobTitle)
	if location != "" {
		u += "&location=" + url.QueryEscape(location)
	}
	if f == nil {
		return u
	}
	if v, ok := dateMap[f.DatePosted]; ok {
		u += "&days=" + v
	}
	switch f.JobType {
	case search.FullTime, search.PartTime, search.Contract, search.Temporary, search.Internship:
		u += "&employment_type=" + string(f.JobType)
	}
	if f.Remote {
		u += "&remote=true"
	}
	return u
}

func Site() scraper.Site {
	return scraper.Site{
		Source:    search.ZipRecruiter,
		Origin:    origin,
		BuildURL:  func(f *search.Filters) string { return BuildURL(f.JobTitle, f.Location, f) },
		SettleMin: 3 * time.Second,
		SettleMax: 6 * time.Second,

		Containers: []browser.Selector{
			browser.Class("job_result"),
			browser.Class("job_content"),
			browser.Class("jobList-item"),
		},
		Generic: browser.CSS("article[data-job-id]"),

		Title:        scraper.Field{Chain: scraper.Classes("job_title", "title", "jobTitle")},
		Company:      scraper.Field{Chain: scraper.Classes("hiring_company", "company", "companyName")},
		Salary:       scraper.Field{Chain: scraper.Classes("salary_estimate", "salary", "jobSalary"), Default: scraper.NotAvailable},
		PostedDate:   scraper.Field{Chain: scraper.Classes("job_posted", "posted", "datePosted"), Default: scraper.NotAvailable},
		Summary:      scraper.Field{Chain: scraper.Classes("job_snippet", "snippet", "jobSnippet"), Default: scraper.NotAvailable},
		LinkFragment: "/jobs/",
	}
}

func NewScraper(log *zap.Logger, d browser.Delayer, opts ...scraper.Option) *scraper.Extractor {
	return scraper.NewExtractor(Site(), log, d, opts...)
}
