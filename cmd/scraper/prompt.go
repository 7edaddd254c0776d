package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-job-scraper/internal/search"
)

type menu struct {
	title   string
	options []string
	values  map[string]string
	prompt  string
}

var (
	dateMenu = menu{
		title:   "⏱️ Date Posted Options:",
		options: []string{"1. Last 24 hours", "2. Last 3 days", "3. Last 7 days", "4. Last 14 days", "5. Last 30 days", "0. Any time"},
		values: map[string]string{
			"1": string(search.Last24Hours), "2": string(search.Last3Days), "3": string(search.Last7Days),
			"4": string(search.Last14Days), "5": string(search.Last30Days),
		},
		prompt: "Select an option (0-5): ",
	}
	jobTypeMenu = menu{
		title:   "💼 Job Type Options:",
		options: []string{"1. Full-time", "2. Part-time", "3. Contract", "4. Temporary", "5. Internship", "0. Any type"},
		values: map[string]string{
			"1": string(search.FullTime), "2": string(search.PartTime), "3": string(search.Contract),
			"4": string(search.Temporary), "5": string(search.Internship),
		},
		prompt: "Select an option (0-5): ",
	}
	experienceMenu = menu{
		title:   "🌟 Experience Level Options:",
		options: []string{"1. Entry level", "2. Mid level", "3. Senior level", "0. Any level"},
		values: map[string]string{
			"1": string(search.Entry), "2": string(search.Mid), "3": string(search.Senior),
		},
		prompt: "Select an option (0-3): ",
	}
	sourceMenu = menu{
		title:   "🔎 Job Sources Options:",
		options: []string{"1. Indeed", "2. Glassdoor", "3. LinkedIn", "4. ZipRecruiter", "5. All sources"},
		values: map[string]string{
			"1": string(search.Indeed), "2": string(search.Glassdoor),
			"3": string(search.LinkedIn), "4": string(search.ZipRecruiter),
		},
		prompt: "Select an option (1-5): ",
	}
)

// Prompter asks for the search configuration line by line. A closed input
// reads as blank answers.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ask(question string) string {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *Prompter) choose(m menu) (string, bool) {
	fmt.Fprintf(p.out, "\n%s\n", m.title)
	for _, o := range m.options {
		fmt.Fprintln(p.out, o)
	}
	v, ok := m.values[p.ask(m.prompt)]
	return v, ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Collect walks through every question. An empty job title stops early and
// leaves the title out so the builder rejects it.
func (p *Prompter) Collect() search.Values {
	fmt.Fprintln(p.out, "\n📋 Job Search Configuration")
	fmt.Fprintln(p.out, "============================")

	v := search.Values{}
	title := p.ask("🔍 Enter job title (required): ")
	if title == "" {
		return v
	}
	v[search.KeyJobTitle] = title
	v[search.KeyLocation] = p.ask("📍 Enter location (leave blank for any): ")

	if d, ok := p.choose(dateMenu); ok {
		v[search.KeyDatePosted] = d
	}
	if t, ok := p.choose(jobTypeMenu); ok {
		v[search.KeyJobType] = t
	}
	if e, ok := p.choose(experienceMenu); ok {
		v[search.KeyExperienceLevel] = e
	}

	if strings.ToLower(p.ask("\n🏠 Remote jobs only? (y/n): ")) == "y" {
		v[search.KeyRemote] = "true"
	}
	if s := p.ask("\n💰 Minimum salary (leave blank for any): "); isDigits(s) {
		v[search.KeySalaryMin] = s
	}

	//anything but 1-4 means every board
	if src, ok := p.choose(sourceMenu); ok {
		v[search.KeySources] = src
	}

	if k := p.ask("\n🔤 Keywords that must appear in job title (comma-separated, leave blank for any): "); k != "" {
		v[search.KeyKeywords] = k
	}
	if c := p.ask("\n🏢 Companies to filter by (comma-separated, leave blank for any): "); c != "" {
		v[search.KeyCompanies] = c
	}
	if d := p.ask("\n📅 Maximum age of job posting in days (leave blank for any): "); isDigits(d) {
		v[search.KeyMaxDaysOld] = d
	}
	return v
}
