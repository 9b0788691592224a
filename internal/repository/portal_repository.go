package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// LookupObserver receives timing for every document read.
type LookupObserver interface {
	ObserveDocumentLookup(collection string, found bool, duration time.Duration)
}

// PortalRepository exposes typed access to the portal collections over a DocumentStore.
type PortalRepository struct {
	store    DocumentStore
	observer LookupObserver
}

// NewPortalRepository constructs a PortalRepository. observer may be nil.
func NewPortalRepository(store DocumentStore, observer LookupObserver) *PortalRepository {
	return &PortalRepository{store: store, observer: observer}
}

func (r *PortalRepository) get(ctx context.Context, collection, id string, dest interface{}) error {
	if strings.TrimSpace(id) == "" {
		return ErrDocumentNotFound
	}
	start := time.Now()
	err := r.store.Get(ctx, collection, id, dest)
	if r.observer != nil {
		r.observer.ObserveDocumentLookup(collection, err == nil, time.Since(start))
	}
	return err
}

// Student fetches the root student document.
func (r *PortalRepository) Student(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.get(ctx, models.CollectionStudents, id, &student); err != nil {
		return nil, err
	}
	student.ID = id
	return &student, nil
}

// Assignment fetches a course assignment.
func (r *PortalRepository) Assignment(ctx context.Context, id string) (*models.CourseAssignment, error) {
	var assignment models.CourseAssignment
	if err := r.get(ctx, models.CollectionAssignCourses, id, &assignment); err != nil {
		return nil, err
	}
	assignment.ID = id
	return &assignment, nil
}

// Course fetches a catalogue course.
func (r *PortalRepository) Course(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.get(ctx, models.CollectionCourses, id, &course); err != nil {
		return nil, err
	}
	course.ID = id
	return &course, nil
}

// Instructor fetches an instructor.
func (r *PortalRepository) Instructor(ctx context.Context, id string) (*models.Instructor, error) {
	var instructor models.Instructor
	if err := r.get(ctx, models.CollectionInstructors, id, &instructor); err != nil {
		return nil, err
	}
	instructor.ID = id
	return &instructor, nil
}

// Class fetches a class section.
func (r *PortalRepository) Class(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	if err := r.get(ctx, models.CollectionClasses, id, &class); err != nil {
		return nil, err
	}
	class.ID = id
	return &class, nil
}

// Schedule fetches the timetable of a class.
func (r *PortalRepository) Schedule(ctx context.Context, classID string) (*models.ClassSchedule, error) {
	var schedule models.ClassSchedule
	if err := r.get(ctx, models.CollectionSchedules, classID, &schedule); err != nil {
		return nil, err
	}
	schedule.ClassID = classID
	return &schedule, nil
}

// Attendance fetches the attendance sheet of a course assignment.
func (r *PortalRepository) Attendance(ctx context.Context, assignCourseID string) (*models.AttendanceSheet, error) {
	var sheet models.AttendanceSheet
	if err := r.get(ctx, models.CollectionAttendances, assignCourseID, &sheet); err != nil {
		return nil, err
	}
	sheet.AssignCourseID = assignCourseID
	return &sheet, nil
}

// Marks fetches the marks sheet of a course assignment.
func (r *PortalRepository) Marks(ctx context.Context, assignCourseID string) (*models.MarksSheet, error) {
	var sheet models.MarksSheet
	if err := r.get(ctx, models.CollectionMarks, assignCourseID, &sheet); err != nil {
		return nil, err
	}
	sheet.AssignCourseID = assignCourseID
	return &sheet, nil
}

// AccountByEmail fetches the sign-in account keyed by lower-cased email.
func (r *PortalRepository) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	id := strings.ToLower(strings.TrimSpace(email))
	var account models.Account
	if err := r.get(ctx, models.CollectionAccounts, id, &account); err != nil {
		return nil, err
	}
	account.ID = id
	return &account, nil
}

// ListAssignments scans the whole assignCourses collection.
func (r *PortalRepository) ListAssignments(ctx context.Context) ([]models.CourseAssignment, error) {
	docs, err := r.store.List(ctx, models.CollectionAssignCourses)
	if err != nil {
		return nil, err
	}
	assignments := make([]models.CourseAssignment, 0, len(docs))
	for _, doc := range docs {
		var assignment models.CourseAssignment
		if err := json.Unmarshal(doc.Data, &assignment); err != nil {
			return nil, fmt.Errorf("decode assignment %s: %w", doc.ID, err)
		}
		assignment.ID = doc.ID
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// AppendEnrolledCourse adds assignCourseID to the student's enrolledCourses.
func (r *PortalRepository) AppendEnrolledCourse(ctx context.Context, studentID, assignCourseID string) error {
	return r.store.ArrayUnion(ctx, models.CollectionStudents, studentID, models.FieldEnrolledCourses, assignCourseID)
}

// AppendWithdrawnCourse adds assignCourseID to the student's withdrawCourses.
func (r *PortalRepository) AppendWithdrawnCourse(ctx context.Context, studentID, assignCourseID string) error {
	return r.store.ArrayUnion(ctx, models.CollectionStudents, studentID, models.FieldWithdrawCourses, assignCourseID)
}

// UpdateProfile merges contact fields into the student document.
func (r *PortalRepository) UpdateProfile(ctx context.Context, studentID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.store.Update(ctx, models.CollectionStudents, studentID, fields)
}

// SaveAuditLog persists an audit entry.
func (r *PortalRepository) SaveAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log == nil || log.ID == "" {
		return errors.New("audit log requires an id")
	}
	return r.store.Put(ctx, models.CollectionAuditLogs, log.ID, log)
}
