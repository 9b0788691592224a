package aggregation

import (
	"strconv"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// Sentinels rendered in place of GPA values when no usable data exists.
const (
	NoGPAData       = "No valid GPA data available"
	NoRecentGPAData = "No recent GPA data available"
)

// CGPA averages every parseable, positive semester GPA and rounds to two decimals.
// ok is false when no valid entry exists; callers must render NoGPAData instead of a number.
func CGPA(results []models.SemesterResult) (value float64, ok bool) {
	var sum float64
	var count int
	for _, result := range results {
		gpa, parsed := result.GPA.Float()
		if !parsed || gpa <= 0 {
			continue
		}
		sum += gpa
		count++
	}
	if count == 0 {
		return 0, false
	}
	return Round2(sum / float64(count)), true
}

// RecentGPA returns the most recent semester's GPA exactly as recorded.
func RecentGPA(results []models.SemesterResult) (string, bool) {
	if len(results) == 0 {
		return "", false
	}
	return results[len(results)-1].GPA.String(), true
}

// FormatFixed2 renders v with exactly two decimals.
func FormatFixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
