package filter

import (
	"regexp"
	"strconv"
	"strings"
)

var firstNumberRegex = regexp.MustCompile(`\d+`)

// IsRecentJob checks relative dates like "Posted 5 days ago" against
// maxDays. Anything without the literal "day", or without a number, passes.
func IsRecentJob(posted string, maxDays int) bool {
	if maxDays <= 0 || !strings.Contains(posted, "day") {
		return true
	}
	m := firstNumberRegex.FindString(posted)
	if m == "" {
		return true
	}
	days, err := strconv.Atoi(m)
	if err != nil {
		return true
	}
	return days <= maxDays
}
