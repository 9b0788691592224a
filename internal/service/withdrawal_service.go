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

type withdrawalRepository interface {
	AppendWithdrawnCourse(ctx context.Context, studentID, assignCourseID string) error
}

// WithdrawalService lists and files course withdrawals.
type WithdrawalService struct {
	guard     *ViewGuard
	repo      withdrawalRepository
	resolver  *CourseResolver
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewWithdrawalService constructs a WithdrawalService.
func NewWithdrawalService(guard *ViewGuard, repo withdrawalRepository, resolver *CourseResolver, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *WithdrawalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WithdrawalService{
		guard:     guard,
		repo:      repo,
		resolver:  resolver,
		audit:     audit,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns current courses still eligible for withdrawal and the ones already withdrawn.
func (s *WithdrawalService) List(ctx context.Context, identity models.Identity) (*dto.WithdrawalResponse, error) {
	var resp *dto.WithdrawalResponse
	err := s.guard.Run(ctx, identity, ViewWithdrawals, func(ctx context.Context, student *models.Student) error {
		current := aggregation.PartitionCourses(student).Current
		resp = &dto.WithdrawalResponse{
			Eligible:  s.resolver.ResolveAssignments(ctx, aggregation.PendingWithdrawals(current, student.WithdrawCourses)),
			Withdrawn: s.resolver.ResolveAssignments(ctx, aggregation.Unique(student.WithdrawCourses)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Withdraw appends a current course to the student's withdrawal list. Repeating the call is a no-op.
func (s *WithdrawalService) Withdraw(ctx context.Context, identity models.Identity, req dto.CourseActionRequest, meta models.RequestMeta) (*dto.CourseActionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid withdrawal payload")
	}
	student, err := s.guard.Load(ctx, identity)
	if err != nil {
		return nil, err
	}

	current := stringSet(aggregation.PartitionCourses(student).Current)
	if _, ok := current[req.AssignCourseID]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is not a current course")
	}

	if err := s.repo.AppendWithdrawnCourse(ctx, student.ID, req.AssignCourseID); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to withdraw from course")
	}

	s.logger.Info("student withdrew", zap.String("student_id", student.ID), zap.String("assign_course_id", req.AssignCourseID))
	recordAudit(ctx, s.audit, models.AuditLog{
		StudentID:  student.ID,
		Action:     models.AuditActionWithdraw,
		Resource:   models.CollectionAssignCourses,
		ResourceID: req.AssignCourseID,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
		CreatedAt:  s.now().UTC(),
	})

	return &dto.CourseActionResponse{
		AssignCourseID: req.AssignCourseID,
		Courses:        aggregation.Unique(append(append([]string{}, student.WithdrawCourses...), req.AssignCourseID)),
	}, nil
}
