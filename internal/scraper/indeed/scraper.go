package indeed

import (
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

const origin = "https://www.indeed.com"

var (
	dateMap = map[search.DatePosted]string{
		search.Last24Hours: "1", search.Last3Days: "3", search.Last7Days: "7",
		search.Last14Days: "14", search.Last30Days: "30",
	}
	typeMap = map[search.JobType]string{
		search.FullTime: "fulltime", search.PartTime: "parttime", search.Contract: "contract",
		search.Temporary: "temporary", search.Internship: "internship",
	}
	expMap = map[search.ExperienceLevel]string{
		search.Entry: "entry_level", search.Mid: "mid_level", search.Senior: "senior_level",
	}
)

// BuildURL returns the Indeed search URL. Unknown filter values are left out.
func BuildURL(jobTitle, location string, f *search.Filters) string {
	u := origin + "/jobs?q=" + url.QueryEscape(jobTitle)
	if location != "" {
		u += "&l=" + url.QueryEscape(location)
	}
	if f == nil {
		return u
	}
	if v, ok := dateMap[f.DatePosted]; ok {
		u += "&fromage=" + v
	}
	if v, ok := typeMap[f.JobType]; ok {
		u += "&jt=" + v
	}
	if v, ok := expMap[f.ExperienceLevel]; ok {
		u += "&explvl=" + v
	}
	if f.SalaryMin > 0 {
		u += "&salary=" + strconv.Itoa(f.SalaryMin)
	}
	if f.Remote {
		u += "&remotejob=1"
	}
	return u
}

func Site() scraper.Site {
	return scraper.Site{
		Source:    search.Indeed,
		Origin:    origin,
		BuildURL:  func(f *search.Filters) string { return BuildURL(f.JobTitle, f.Location, f) },
		SettleMin: 3 * time.Second,
		SettleMax: 6 * time.Second,

		Containers: []browser.Selector{
			browser.Class("job_seen_beacon"),
			browser.Class("jobsearch-ResultsList"),
			browser.Class("tapItem"),
		},
		Generic: browser.CSS("div[data-testid='jobListing']"),

		Title:        scraper.Field{Chain: scraper.Classes("jobTitle", "title", "jobName")},
		Company:      scraper.Field{Chain: scraper.Classes("companyName", "company", "companyInfo")},
		Salary:       scraper.Field{Chain: scraper.Classes("salary-snippet-container", "salaryOnly", "metadata salary"), Default: scraper.NotAvailable},
		PostedDate:   scraper.Field{Chain: scraper.Classes("date", "jobAge", "jobAgeDays"), Default: scraper.NotAvailable},
		Summary:      scraper.Field{Chain: scraper.Classes("job-snippet", "jobDescription", "summary"), Default: scraper.NotAvailable},
		LinkFragment: "job",
	}
}

func NewScraper(log *zap.Logger, d browser.Delayer, opts ...scraper.Option) *scraper.Extractor {
	return scraper.NewExtractor(Site(), log, d, opts...)
}
