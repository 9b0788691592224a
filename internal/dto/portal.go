package dto

import "time"

// CourseSummary is one resolved course assignment. Missing related documents are
// rendered with placeholder labels and Resolved reports whether the assignment
// document itself was found.
type CourseSummary struct {
	AssignCourseID string `json:"assignCourseId"`
	CourseID       string `json:"courseId,omitempty"`
	CourseName     string `json:"courseName"`
	CourseCode     string `json:"courseCode,omitempty"`
	CreditHours    string `json:"creditHours"`
	InstructorName string `json:"instructorName"`
	ClassName      string `json:"className"`
	Resolved       bool   `json:"resolved"`
}

// CatalogueCourse is a course read directly from the catalogue.
type CatalogueCourse struct {
	CourseID         string `json:"courseId"`
	Name             string `json:"name"`
	Code             string `json:"code,omitempty"`
	CreditHours      string `json:"creditHours"`
	ExpectedSemester string `json:"expectedSemester,omitempty"`
	Resolved         bool   `json:"resolved"`
}

// UpcomingClass is a scheduled session with its resolved start time.
type UpcomingClass struct {
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Day        string    `json:"day,omitempty"`
	Venue      string    `json:"venue,omitempty"`
	Course     string    `json:"course"`
	Instructor string    `json:"instructor,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
}

// Upcoming class states.
const (
	UpcomingStateScheduled = "scheduled"
	UpcomingStateNone      = "no upcoming class"
)

// DashboardResponse is the home view.
type DashboardResponse struct {
	StudentName     string         `json:"studentName"`
	RollNumber      string         `json:"rollNumber,omitempty"`
	Semester        string         `json:"semester"`
	EnrolledCourses int            `json:"enrolledCourses"`
	RecentGPA       string         `json:"recentGpa"`
	CGPA            string         `json:"cgpa"`
	UpcomingState   string         `json:"upcomingState"`
	NextClass       *UpcomingClass `json:"nextClass"`
	SecondNextClass *UpcomingClass `json:"secondNextClass"`
}

// CoursesResponse lists current and completed courses.
type CoursesResponse struct {
	Current   []CourseSummary   `json:"current"`
	Completed []CatalogueCourse `json:"completed"`
}

// EnrollmentOption is an assignment offered for enrollment.
type EnrollmentOption struct {
	CourseSummary
	Enrolled bool `json:"enrolled"`
}

// EnrollmentResponse lists assignments open for enrollment.
type EnrollmentResponse struct {
	Options []EnrollmentOption `json:"options"`
}

// WithdrawalResponse lists courses that can still be withdrawn and those already withdrawn.
type WithdrawalResponse struct {
	Eligible  []CourseSummary `json:"eligible"`
	Withdrawn []CourseSummary `json:"withdrawn"`
}

// CourseActionRequest carries the assignment targeted by an enroll or withdraw action.
type CourseActionRequest struct {
	AssignCourseID string `json:"assignCourseId" validate:"required"`
}

// CourseActionResponse echoes the updated course list after a mutation.
type CourseActionResponse struct {
	AssignCourseID string   `json:"assignCourseId"`
	Courses        []string `json:"courses"`
}

// AttendanceCoursesResponse lists the courses whose attendance can be inspected.
type AttendanceCoursesResponse struct {
	Courses []CourseSummary `json:"courses"`
}

// AttendanceDay is one row of the attendance detail.
type AttendanceDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// AttendanceDetailResponse summarises attendance for one course assignment.
type AttendanceDetailResponse struct {
	AssignCourseID string          `json:"assignCourseId"`
	CourseName     string          `json:"courseName"`
	TotalClasses   int             `json:"totalClasses"`
	Present        int             `json:"present"`
	Absent         int             `json:"absent"`
	Percentage     float64         `json:"percentage"`
	PercentageText string          `json:"percentageText"`
	Days           []AttendanceDay `json:"days"`
}

// MarksCoursesResponse lists the courses whose marks can be inspected.
type MarksCoursesResponse struct {
	Courses []CourseSummary `json:"courses"`
}

// MarksCriterion is one assessment row of the marks detail.
type MarksCriterion struct {
	Assessment    string  `json:"assessment"`
	Weightage     float64 `json:"weightage"`
	TotalMarks    float64 `json:"totalMarks"`
	ObtainedMarks float64 `json:"obtainedMarks"`
	WeightedMarks float64 `json:"weightedMarks"`
	Missing       bool    `json:"missing,omitempty"`
}

// MarksDetailResponse is the weighted marks breakdown for one course assignment.
type MarksDetailResponse struct {
	AssignCourseID string           `json:"assignCourseId"`
	CourseName     string           `json:"courseName"`
	Criteria       []MarksCriterion `json:"criteria"`
	TotalWeighted  float64          `json:"totalWeighted"`
	Grade          string           `json:"grade"`
}

// ProfileResponse is the student profile view.
type ProfileResponse struct {
	StudentID        string `json:"studentId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	RollNumber       string `json:"rollNumber"`
	FatherName       string `json:"fatherName"`
	Gender           string `json:"gender"`
	Nationality      string `json:"nationality"`
	BloodGroup       string `json:"bloodGroup"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	CurrentAddress   string `json:"currentAddress"`
	PermanentAddress string `json:"permanentAddress"`
	DegreeProgram    string `json:"degreeProgram"`
	Batch            string `json:"batch"`
	Semester         string `json:"semester"`
	ClassName        string `json:"className"`
	ProfileURL       string `json:"profileUrl,omitempty"`
}

// TranscriptRow is one semester result.
type TranscriptRow struct {
	Semester string `json:"semester"`
	GPA      string `json:"gpa"`
}

// Transcript gathers results and the cumulative GPA.
type Transcript struct {
	StudentName string          `json:"studentName"`
	RollNumber  string          `json:"rollNumber"`
	Rows        []TranscriptRow `json:"rows"`
	CGPA        string          `json:"cgpa"`
}
