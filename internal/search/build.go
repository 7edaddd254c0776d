package search

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Keys understood by Build. Flag names and prompt answers use the same keys.
const (
	KeyJobTitle        = "job_title"
	KeyLocation        = "location"
	KeyDatePosted      = "date_posted"
	KeyJobType         = "job_type"
	KeyExperienceLevel = "experience_level"
	KeySalaryMin       = "salary_min"
	KeyRemote          = "remote"
	KeySources         = "sources"
	KeyKeywords        = "keywords"
	KeyCompanies       = "companies"
	KeyMaxDaysOld      = "max_days_old"
)

var ErrJobTitleRequired = errors.New("job title is required")

// Values is an abstract key/value source for a search. List values are
// comma-separated. Missing keys and empty strings are treated alike.
type Values map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("key"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Build turns raw values into validated Filters. It does not care whether
// the values came from flags or from an interactive prompt.
func Build(v Values) (*Filters, error) {
	f := &Filters{
		JobTitle:        strings.TrimSpace(v[KeyJobTitle]),
		Location:        strings.TrimSpace(v[KeyLocation]),
		DatePosted:      DatePosted(strings.TrimSpace(v[KeyDatePosted])),
		JobType:         JobType(strings.TrimSpace(v[KeyJobType])),
		ExperienceLevel: ExperienceLevel(strings.TrimSpace(v[KeyExperienceLevel])),
		Keywords:        SplitList(v[KeyKeywords]),
		Companies:       SplitList(v[KeyCompanies]),
	}
	if f.JobTitle == "" {
		return nil, ErrJobTitleRequired
	}

	var err error
	if f.SalaryMin, err = parseInt(v, KeySalaryMin); err != nil {
		return nil, err
	}
	if f.MaxDaysOld, err = parseInt(v, KeyMaxDaysOld); err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(v[KeyRemote]); s != "" {
		if f.Remote, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", KeyRemote, s, err)
		}
	}

	names := SplitList(v[KeySources])
	if len(names) == 0 {
		f.Sources = append([]Source(nil), AllSources...)
	}
	for _, name := range names {
		src, err := ParseSource(name)
		if err != nil {
			return nil, err
		}
		f.Sources = append(f.Sources, src)
	}

	if err := validate.Struct(f); err != nil {
		return nil, translate(err)
	}
	return f, nil
}

// SplitList splits a comma-separated value, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInt(v Values, key string) (int, error) {
	s := strings.TrimSpace(v[key])
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return ErrJobTitleRequired
	case "gte":
		return fmt.Errorf("%s must not be negative", fe.Field())
	default:
		return fmt.Errorf("invalid %s: %v", fe.Field(), fe.Value())
	}
}
