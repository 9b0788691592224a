package aggregation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func TestAttendanceSevenOfTen(t *testing.T) {
	days := make([]models.AttendanceDay, 0, 10)
	for i := 0; i < 10; i++ {
		days = append(days, models.AttendanceDay{
			Date:    fmt.Sprintf("2024-09-%02d", i+1),
			Records: map[string]bool{"stu-1": i < 7, "stu-2": true},
		})
	}

	summary := Attendance(days, "stu-1")
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 7, summary.Present)
	assert.Equal(t, 3, summary.Absent)
	assert.Equal(t, 70.0, summary.Percentage)
	assert.Equal(t, "70.00", FormatFixed2(summary.Percentage))
	assert.Len(t, summary.Days, 10)
	assert.True(t, summary.Days[0].Present)
	assert.False(t, summary.Days[9].Present)
}

func TestAttendanceMissingRecordCountsAbsent(t *testing.T) {
	days := []models.AttendanceDay{
		{Date: "2024-09-01", Records: map[string]bool{"other": true}},
		{Date: "2024-09-02"},
		{Date: "2024-09-03", Records: map[string]bool{"stu-1": true}},
	}
	summary := Attendance(days, "stu-1")
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, summary.Total, summary.Present+summary.Absent)
	assert.Equal(t, 33.33, summary.Percentage)
}

func TestAttendanceNoDays(t *testing.T) {
	summary := Attendance(nil, "stu-1")
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Percentage)
	assert.NotNil(t, summary.Days)
}
