package models

// Student is the root document of every portal view, keyed by the student's identity.
type Student struct {
	ID               string           `json:"-"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	RollNumber       string           `json:"rollNumber"`
	FatherName       string           `json:"fatherName"`
	Gender           string           `json:"gender"`
	Nationality      string           `json:"nationality"`
	BloodGroup       string           `json:"bloodGroup"`
	City             string           `json:"city"`
	CurrentAddress   string           `json:"currentAddress"`
	PermanentAddress string           `json:"permanentAddress"`
	Phone            string           `json:"phone"`
	DegreeProgram    string           `json:"degreeProgram"`
	Batch            string           `json:"batch"`
	Semester         Scalar           `json:"semester"`
	ClassID          string           `json:"classId"`
	ProfileURL       string           `json:"profileUrl"`
	EnrolledCourses  []string         `json:"enrolledCourses"`
	CurrentCourses   []string         `json:"currentCourses"`
	CompletedCourses []string         `json:"completedCourses"`
	WithdrawCourses  []string         `json:"withdrawCourses"`
	Results          []SemesterResult `json:"results"`
}

// SemesterResult records the GPA earned in one semester.
type SemesterResult struct {
	Semester Scalar `json:"semester"`
	GPA      Scalar `json:"gpa"`
}

// Student array fields mutated through set-union appends.
const (
	FieldEnrolledCourses = "enrolledCourses"
	FieldWithdrawCourses = "withdrawCourses"
)

// ProfilePatch lists the contact fields a student may edit.
type ProfilePatch struct {
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	City             *string `json:"city,omitempty" validate:"omitempty,max=120"`
	CurrentAddress   *string `json:"currentAddress,omitempty" validate:"omitempty,max=255"`
	PermanentAddress *string `json:"permanentAddress,omitempty" validate:"omitempty,max=255"`
	ProfileURL       *string `json:"profileUrl,omitempty" validate:"omitempty,url"`
}

// Fields returns the patch as a document field map, skipping absent values.
func (p ProfilePatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.City != nil {
		fields["city"] = *p.City
	}
	if p.CurrentAddress != nil {
		fields["currentAddress"] = *p.CurrentAddress
	}
	if p.PermanentAddress != nil {
		fields["permanentAddress"] = *p.PermanentAddress
	}
	if p.ProfileURL != nil {
		fields["profileUrl"] = *p.ProfileURL
	}
	return fields
}
