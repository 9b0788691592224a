package models

// AttendanceSheet stores one entry per recorded day for a course assignment.
type AttendanceSheet struct {
	AssignCourseID string          `json:"-"`
	Attendances    []AttendanceDay `json:"attendances"`
}

// AttendanceDay maps student IDs to their presence on Date.
type AttendanceDay struct {
	Date    string          `json:"date"`
	Records map[string]bool `json:"records"`
}
