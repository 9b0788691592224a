package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type enrollmentRepository interface {
	Assignment(ctx context.Context, id string) (*models.CourseAssignment, error)
	ListAssignments(ctx context.Context) ([]models.CourseAssignment, error)
	AppendEnrolledCourse(ctx context.Context, studentID, assignCourseID string) error
}

type auditRecorder interface {
	Record(ctx context.Context, log models.AuditLog)
}

// EnrollmentService lists open course assignments and enrolls students into them.
type EnrollmentService struct {
	guard     *ViewGuard
	repo      enrollmentRepository
	resolver  *CourseResolver
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// EnrollmentServiceParams groups constructor dependencies.
type EnrollmentServiceParams struct {
	Guard     *ViewGuard
	Repo      enrollmentRepository
	Resolver  *CourseResolver
	Audit     auditRecorder
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(params EnrollmentServiceParams) *EnrollmentService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		guard:     params.Guard,
		repo:      params.Repo,
		resolver:  params.Resolver,
		audit:     params.Audit,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Options scans every course assignment, skipping those whose course the student has
// already completed, and flags the ones the student is enrolled in.
func (s *EnrollmentService) Options(ctx context.Context, identity models.Identity) (*dto.EnrollmentResponse, error) {
	var resp *dto.EnrollmentResponse
	err := s.guard.Run(ctx, identity, ViewEnrollment, func(ctx context.Context, student *models.Student) error {
		assignments, err := s.repo.ListAssignments(ctx)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course assignments")
		}

		completed := stringSet(student.CompletedCourses)
		open := make([]models.CourseAssignment, 0, len(assignments))
		for _, assignment := range assignments {
			if _, done := completed[assignment.CourseID]; done {
				continue
			}
			open = append(open, assignment)
		}

		enrolled := stringSet(student.EnrolledCourses)
		rows := s.resolver.ResolveLoaded(ctx, open)
		resp = &dto.EnrollmentResponse{Options: make([]dto.EnrollmentOption, 0, len(rows))}
		for _, row := range rows {
			_, isEnrolled := enrolled[row.AssignCourseID]
			resp.Options = append(resp.Options, dto.EnrollmentOption{CourseSummary: row, Enrolled: isEnrolled})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Enroll appends an assignment to the student's enrolled courses. Repeating the call is a no-op.
func (s *EnrollmentService) Enroll(ctx context.Context, identity models.Identity, req dto.CourseActionRequest, meta models.RequestMeta) (*dto.CourseActionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	student, err := s.guard.Load(ctx, identity)
	if err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment(ctx, req.AssignCourseID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course assignment")
	}
	if _, done := stringSet(student.CompletedCourses)[assignment.CourseID]; done {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course already completed")
	}

	if err := s.repo.AppendEnrolledCourse(ctx, student.ID, assignment.ID); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll in course")
	}

	s.logger.Info("student enrolled", zap.String("student_id", student.ID), zap.String("assign_course_id", assignment.ID))
	recordAudit(ctx, s.audit, models.AuditLog{
		StudentID:  student.ID,
		Action:     models.AuditActionEnroll,
		Resource:   models.CollectionAssignCourses,
		ResourceID: assignment.ID,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
		CreatedAt:  s.now().UTC(),
	})

	return &dto.CourseActionResponse{
		AssignCourseID: assignment.ID,
		Courses:        aggregation.Unique(append(append([]string{}, student.EnrolledCourses...), assignment.ID)),
	}, nil
}

func recordAudit(ctx context.Context, audit auditRecorder, log models.AuditLog) {
	if audit == nil {
		return
	}
	audit.Record(ctx, log)
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
