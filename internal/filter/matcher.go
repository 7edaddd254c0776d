package filter

import (
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

// Criteria are the post-scrape filters. Zero values disable a check.
type Criteria struct {
	Keywords   []string
	Companies  []string
	MinSalary  int
	Sources    []search.Source
	MaxDaysOld int
}

func CriteriaFrom(f *search.Filters) Criteria {
	if f == nil {
		return Criteria{}
	}
	return Criteria{
		Keywords:   f.Keywords,
		Companies:  f.Companies,
		MinSalary:  f.SalaryMin,
		Sources:    f.Sources,
		MaxDaysOld: f.MaxDaysOld,
	}
}

func (c Criteria) empty() bool {
	return len(c.Keywords) == 0 && len(c.Companies) == 0 && c.MinSalary <= 0 &&
		len(c.Sources) == 0 && c.MaxDaysOld <= 0
}

// Apply keeps the listings that pass every enabled check, in input order.
// With no criteria the input is returned as is.
func Apply(listings []scraper.JobListing, c Criteria) []scraper.JobListing {
	if c.empty() {
		return listings
	}
	m := newMatcher(c)
	var out []scraper.JobListing
	for _, job := range listings {
		if shouldInclude(job, c, m) {
			out = append(out, job)
		}
	}
	return out
}

func shouldInclude(job scraper.JobListing, c Criteria, m *matcher) bool {
	//title must mention any keyword
	if len(c.Keywords) > 0 && !m.anyIn(job.Title, m.keywords) {
		return false
	}

	//company must match any of the wanted ones
	if len(c.Companies) > 0 && !m.anyIn(job.Company, m.companies) {
		return false
	}

	//unparseable salary fails a salary floor
	if c.MinSalary > 0 {
		v, ok := ParseSalary(job.Salary)
		if !ok || v < float64(c.MinSalary) {
			return false
		}
	}

	if len(c.Sources) > 0 && !hasSource(c.Sources, job.Source) {
		return false
	}

	if c.MaxDaysOld > 0 && !IsRecentJob(job.PostedDate, c.MaxDaysOld) {
		return false
	}
	return true
}

func hasSource(sources []search.Source, src search.Source) bool {
	for _, s := range sources {
		if s == src {
			return true
		}
	}
	return false
}
