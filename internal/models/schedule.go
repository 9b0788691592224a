package models

// ClassSchedule holds the dated timetable of a class section.
type ClassSchedule struct {
	ClassID  string          `json:"-"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// ScheduleEntry is one dated session. Date is YYYY-MM-DD and Time is either
// "hh:mm am/pm" or 24-hour "HH:mm".
type ScheduleEntry struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Venue      string `json:"venue"`
	Course     string `json:"course"`
	Instructor string `json:"instructor"`
	Day        string `json:"day"`
}
