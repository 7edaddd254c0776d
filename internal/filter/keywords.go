package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// matcher does case-insensitive substring checks using Unicode case folding.
type matcher struct {
	fold      cases.Caser
	keywords  []string
	companies []string
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.keywords = m.foldAll(c.Keywords)
	m.companies = m.foldAll(c.Companies)
	return m
}

func (m *matcher) foldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = m.fold.String(s)
	}
	return out
}

func (m *matcher) anyIn(text string, needles []string) bool {
	text = m.fold.String(text)
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
