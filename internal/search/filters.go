// Package search holds the user's search request: what to look for, where,
// and which boards and filters apply.
package search

import (
	"fmt"
	"strings"
)

// Source is a job board name as shown to the user and written to exports.
type Source string

const (
	Indeed       Source = "Indeed"
	Glassdoor    Source = "Glassdoor"
	LinkedIn     Source = "LinkedIn"
	ZipRecruiter Source = "ZipRecruiter"
)

// AllSources is the scrape order, regardless of the order the user listed them in.
var AllSources = []Source{Indeed, Glassdoor, LinkedIn, ZipRecruiter}

// ParseSource matches a board name case-insensitively.
func ParseSource(s string) (Source, error) {
	for _, src := range AllSources {
		if strings.EqualFold(strings.TrimSpace(s), string(src)) {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", s)
}

type DatePosted string

const (
	Last24Hours DatePosted = "24h"
	Last3Days   DatePosted = "3d"
	Last7Days   DatePosted = "7d"
	Last14Days  DatePosted = "14d"
	Last30Days  DatePosted = "30d"
)

type JobType string

const (
	FullTime   JobType = "full_time"
	PartTime   JobType = "part_time"
	Contract   JobType = "contract"
	Temporary  JobType = "temporary"
	Internship JobType = "internship"
)

type ExperienceLevel string

const (
	Entry  ExperienceLevel = "entry"
	Mid    ExperienceLevel = "mid"
	Senior ExperienceLevel = "senior"
)

// Filters is built once per run and shared read-only by every scraper and
// by the post-filter. Zero values mean "unset".
type Filters struct {
	JobTitle        string          `key:"job_title" validate:"required"`
	Location        string          `key:"location"`
	DatePosted      DatePosted      `key:"date_posted" validate:"omitempty,oneof=24h 3d 7d 14d 30d"`
	JobType         JobType         `key:"job_type" validate:"omitempty,oneof=full_time part_time contract temporary internship"`
	ExperienceLevel ExperienceLevel `key:"experience_level" validate:"omitempty,oneof=entry mid senior"`
	SalaryMin       int             `key:"salary_min" validate:"gte=0"`
	Remote          bool            `key:"remote"`
	Sources         []Source        `key:"sources" validate:"min=1,dive,oneof=Indeed Glassdoor LinkedIn ZipRecruiter"`
	Keywords        []string        `key:"keywords"`
	Companies       []string        `key:"companies"`
	MaxDaysOld      int             `key:"max_days_old" validate:"gte=0"`
}

// Wants reports whether src is one of the requested boards.
func (f *Filters) Wants(src Source) bool {
	for _, s := range f.Sources {
		if s == src {
			return true
		}
	}
	return false
}
