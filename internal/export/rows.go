// Package export writes scraped listings to a spreadsheet, falling back to
// a local CSV file.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

var Header = []string{"Source", "Job Title", "Company", "Salary", "Job Link", "Date Posted", "Summary"}

// Rows lays out the export: header, then the filter summary and a blank
// spacer row when f is set, then one row per listing.
func Rows(listings []scraper.JobListing, f *search.Filters) [][]string {
	rows := [][]string{append([]string(nil), Header...)}
	if f != nil {
		if summary := FilterSummary(f); summary != "" {
			rows = append(rows, []string{"Filters:", summary}, []string{})
		}
	}
	for _, l := range listings {
		rows = append(rows, l.Row())
	}
	return rows
}

// FilterSummary renders the set filters as "Job Title: x, Location: y".
func FilterSummary(f *search.Filters) string {
	title := cases.Title(language.English)
	label := func(key string) string {
		return title.String(strings.ReplaceAll(key, "_", " "))
	}
	list := func(items []string) string {
		return "[" + strings.Join(items, ", ") + "]"
	}

	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, label(key)+": "+value)
		}
	}
	add(search.KeyJobTitle, f.JobTitle)
	add(search.KeyLocation, f.Location)
	add(search.KeyDatePosted, string(f.DatePosted))
	add(search.KeyJobType, string(f.JobType))
	add(search.KeyExperienceLevel, string(f.ExperienceLevel))
	if f.SalaryMin > 0 {
		add(search.KeySalaryMin, strconv.Itoa(f.SalaryMin))
	}
	if f.Remote {
		add(search.KeyRemote, "Yes")
	}
	if len(f.Sources) > 0 {
		names := make([]string, len(f.Sources))
		for i, s := range f.Sources {
			names[i] = string(s)
		}
		add(search.KeySources, list(names))
	}
	if len(f.Keywords) > 0 {
		add(search.KeyKeywords, list(f.Keywords))
	}
	if len(f.Companies) > 0 {
		add(search.KeyCompanies, list(f.Companies))
	}
	if f.MaxDaysOld > 0 {
		add(search.KeyMaxDaysOld, strconv.Itoa(f.MaxDaysOld))
	}
	return strings.Join(parts, ", ")
}

// WorksheetName is the run date, followed by title and location when known.
func WorksheetName(now time.Time, f *search.Filters) string {
	name := now.Format("2006-01-02")
	if f == nil {
		return name
	}
	var info []string
	for _, s := range []string{f.JobTitle, f.Location} {
		if s != "" {
			info = append(info, s)
		}
	}
	if len(info) > 0 {
		name += fmt.Sprintf(" - %s", strings.Join(info, " "))
	}
	return name
}
