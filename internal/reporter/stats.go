package reporter

import (
	"fmt"
	"io"
	"strings"

	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/search"
)

type SourceCount struct {
	Source search.Source
	Count  int
}

// Stats summarises one run. BySource counts scraped listings before
// filtering, in order of first appearance.
type Stats struct {
	Total    int
	Matched  int
	BySource []SourceCount
}

func Compute(all, matched []scraper.JobListing) Stats {
	s := Stats{Total: len(all), Matched: len(matched)}
	idx := map[search.Source]int{}
	for _, j := range all {
		i, ok := idx[j.Source]
		if !ok {
			i = len(s.BySource)
			idx[j.Source] = i
			s.BySource = append(s.BySource, SourceCount{Source: j.Source})
		}
		s.BySource[i].Count++
	}
	return s
}

func (s Stats) String() string {
	var b strings.Builder
	b.WriteString("📊 Job Search Statistics:\n")
	fmt.Fprintf(&b, "Total jobs found: %d\n", s.Total)
	fmt.Fprintf(&b, "Jobs after filtering: %d\n", s.Matched)
	if len(s.BySource) > 0 {
		b.WriteString("\nJobs by source:\n")
		for _, c := range s.BySource {
			fmt.Fprintf(&b, "- %s: %d\n", c.Source, c.Count)
		}
	}
	return b.String()
}

func (s Stats) Print(w io.Writer) error {
	_, err := io.WriteString(w, "\n"+s.String())
	return err
}
