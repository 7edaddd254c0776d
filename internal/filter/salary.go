package filter

import (
	"regexp"
	"strconv"
	"strings"

	"go-job-scraper/internal/scraper"
)

var salaryNumberRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseSalary returns a representative figure for a salary text: the mean
// of the first two numbers of a range, or the single number shown.
func ParseSalary(s string) (float64, bool) {
	if s == "" || s == scraper.NotAvailable {
		return 0, false
	}
	var nums []float64
	for _, tok := range salaryNumberRegex.FindAllString(s, 2) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
		if err != nil {
			return 0, false
		}
		nums = append(nums, v)
	}
	switch len(nums) {
	case 0:
		return 0, false
	case 1:
		return nums[0], true
	default:
		return (nums[0] + nums[1]) / 2, true
	}
}
