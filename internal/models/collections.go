package models

// Document collection names.
const (
	CollectionStudents      = "students"
	CollectionAssignCourses = "assignCourses"
	CollectionCourses       = "courses"
	CollectionInstructors   = "instructors"
	CollectionClasses       = "classes"
	CollectionSchedules     = "scheduleOfClasses"
	CollectionAttendances   = "attendances"
	CollectionMarks         = "studentsMarks"
	CollectionAccounts      = "accounts"
	CollectionAuditLogs     = "auditLogs"
)
