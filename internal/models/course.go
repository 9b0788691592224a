package models

// CourseAssignment links a course, an instructor and a class section for a term.
type CourseAssignment struct {
	ID           string `json:"-"`
	CourseID     string `json:"courseId"`
	InstructorID string `json:"instructorId"`
	ClassID      string `json:"classId"`
	Term         string `json:"term,omitempty"`
}

// Course is a catalogue entry.
type Course struct {
	ID               string `json:"-"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	CreditHours      Scalar `json:"creditHours"`
	ExpectedSemester Scalar `json:"expectedSemester"`
}

// Instructor teaches course assignments.
type Instructor struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Class is a student section.
type Class struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}
