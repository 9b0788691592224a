package aggregation

import "github.com/noah-isme/campus-portal-api/internal/models"

// AttendanceDay is one recorded day from the student's perspective.
type AttendanceDay struct {
	Date    string
	Present bool
}

// AttendanceSummary totals a student's attendance for one course assignment.
// Present + Absent always equals Total.
type AttendanceSummary struct {
	Total      int
	Present    int
	Absent     int
	Percentage float64
	Days       []AttendanceDay
}

// Attendance counts every recorded day; a day counts as present only when the
// student's record is explicitly true.
func Attendance(days []models.AttendanceDay, studentID string) AttendanceSummary {
	summary := AttendanceSummary{Days: make([]AttendanceDay, 0, len(days))}
	for _, day := range days {
		present := day.Records[studentID]
		summary.Total++
		if present {
			summary.Present++
		}
		summary.Days = append(summary.Days, AttendanceDay{Date: day.Date, Present: present})
	}
	summary.Absent = summary.Total - summary.Present
	summary.Percentage = Percentage(summary.Present, summary.Total)
	return summary
}

// Percentage returns part/total*100 rounded to two decimals, or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}
