package models

// DefaultGrade is reported when no grade has been recorded yet.
const DefaultGrade = "I"

// MarksSheet stores the grading criteria and per-student marks of a course assignment.
type MarksSheet struct {
	AssignCourseID  string         `json:"-"`
	CriteriaDefined []Criterion    `json:"criteriaDefined"`
	MarksOfStudents []StudentMarks `json:"marksOfStudents"`
}

// Criterion is one graded assessment component.
type Criterion struct {
	Assessment string `json:"assessment"`
	Weightage  Scalar `json:"weightage"`
	TotalMarks Scalar `json:"totalMarks"`
}

// StudentMarks holds marks obtained per assessment name.
type StudentMarks struct {
	StudentID string            `json:"studentId"`
	Marks     map[string]Scalar `json:"marks"`
	Grade     string            `json:"grade"`
}

// ForStudent returns the marks entry for studentID.
func (m *MarksSheet) ForStudent(studentID string) (*StudentMarks, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.MarksOfStudents {
		if m.MarksOfStudents[i].StudentID == studentID {
			return &m.MarksOfStudents[i], true
		}
	}
	return nil, false
}
