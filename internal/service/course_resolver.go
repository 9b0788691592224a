package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// Placeholder labels for related documents that could not be resolved.
const (
	UnknownCourse      = "Unknown Course"
	UnknownInstructor  = "Unknown Instructor"
	UnknownClass       = "Unknown Class"
	UnknownCreditHours = "Unknown"
)

type courseDocumentReader interface {
	Assignment(ctx context.Context, id string) (*models.CourseAssignment, error)
	Course(ctx context.Context, id string) (*models.Course, error)
	Instructor(ctx context.Context, id string) (*models.Instructor, error)
	Class(ctx context.Context, id string) (*models.Class, error)
}

type placeholderRecorder interface {
	RecordPlaceholder(kind string)
}

// CourseResolver joins course assignments with their course, instructor and class
// documents. Every missing document degrades to a placeholder label so a row is
// produced for every requested ID.
type CourseResolver struct {
	docs    courseDocumentReader
	metrics placeholderRecorder
	logger  *zap.Logger
}

// NewCourseResolver constructs a CourseResolver.
func NewCourseResolver(docs courseDocumentReader, metrics placeholderRecorder, logger *zap.Logger) *CourseResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseResolver{docs: docs, metrics: metrics, logger: logger}
}

// ResolveAssignments resolves assignment IDs concurrently and returns rows in input order.
func (r *CourseResolver) ResolveAssignments(ctx context.Context, assignCourseIDs []string) []dto.CourseSummary {
	rows := make([]dto.CourseSummary, len(assignCourseIDs))
	var wg sync.WaitGroup
	for i, id := range assignCourseIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			rows[i] = r.resolveID(ctx, id)
		}(i, id)
	}
	wg.Wait()
	return rows
}

// ResolveLoaded resolves already fetched assignments concurrently, preserving order.
func (r *CourseResolver) ResolveLoaded(ctx context.Context, assignments []models.CourseAssignment) []dto.CourseSummary {
	rows := make([]dto.CourseSummary, len(assignments))
	var wg sync.WaitGroup
	for i := range assignments {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rows[i] = r.resolve(ctx, &assignments[i])
		}(i)
	}
	wg.Wait()
	return rows
}

// ResolveCatalogue reads course IDs straight from the catalogue, concurrently and in input order.
func (r *CourseResolver) ResolveCatalogue(ctx context.Context, courseIDs []string) []dto.CatalogueCourse {
	rows := make([]dto.CatalogueCourse, len(courseIDs))
	var wg sync.WaitGroup
	for i, id := range courseIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			row := dto.CatalogueCourse{CourseID: id, Name: UnknownCourse, CreditHours: UnknownCreditHours}
			course, ok := r.course(ctx, id)
			if ok {
				row.Name = nonEmpty(course.Name, UnknownCourse)
				row.Code = course.Code
				row.CreditHours = nonEmpty(course.CreditHours.String(), UnknownCreditHours)
				row.ExpectedSemester = course.ExpectedSemester.String()
				row.Resolved = true
			}
			rows[i] = row
		}(i, id)
	}
	wg.Wait()
	return rows
}

func (r *CourseResolver) resolveID(ctx context.Context, assignCourseID string) dto.CourseSummary {
	assignment, err := r.docs.Assignment(ctx, assignCourseID)
	if err != nil {
		r.degrade(ctx, "assignment", assignCourseID, err)
		return placeholderSummary(assignCourseID)
	}
	return r.resolve(ctx, assignment)
}

func (r *CourseResolver) resolve(ctx context.Context, assignment *models.CourseAssignment) dto.CourseSummary {
	row := placeholderSummary(assignment.ID)
	row.CourseID = assignment.CourseID
	row.Resolved = true

	if course, ok := r.course(ctx, assignment.CourseID); ok {
		row.CourseName = nonEmpty(course.Name, UnknownCourse)
		row.CourseCode = course.Code
		row.CreditHours = nonEmpty(course.CreditHours.String(), UnknownCreditHours)
	}
	if instructor, err := r.docs.Instructor(ctx, assignment.InstructorID); err != nil {
		r.degrade(ctx, "instructor", assignment.InstructorID, err)
	} else {
		row.InstructorName = nonEmpty(instructor.Name, UnknownInstructor)
	}
	if class, err := r.docs.Class(ctx, assignment.ClassID); err != nil {
		r.degrade(ctx, "class", assignment.ClassID, err)
	} else {
		row.ClassName = nonEmpty(class.Name, UnknownClass)
	}
	return row
}

func (r *CourseResolver) course(ctx context.Context, courseID string) (*models.Course, bool) {
	course, err := r.docs.Course(ctx, courseID)
	if err != nil {
		r.degrade(ctx, "course", courseID, err)
		return nil, false
	}
	return course, true
}

func (r *CourseResolver) degrade(ctx context.Context, kind, id string, err error) {
	if r.metrics != nil {
		r.metrics.RecordPlaceholder(kind)
	}
	if errors.Is(err, repository.ErrDocumentNotFound) || ctx.Err() != nil {
		return
	}
	r.logger.Warn("document lookup failed, using placeholder",
		zap.String("kind", kind),
		zap.String("id", id),
		zap.Error(err))
}

func placeholderSummary(assignCourseID string) dto.CourseSummary {
	return dto.CourseSummary{
		AssignCourseID: assignCourseID,
		CourseName:     UnknownCourse,
		CreditHours:    UnknownCreditHours,
		InstructorName: UnknownInstructor,
		ClassName:      UnknownClass,
	}
}

func nonEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
