package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// NoClassID is shown when the student record carries no class reference.
const NoClassID = "No Class ID"

type profileRepository interface {
	Class(ctx context.Context, id string) (*models.Class, error)
	UpdateProfile(ctx context.Context, studentID string, fields map[string]interface{}) error
}

// ProfileService reads and edits the student profile.
type ProfileService struct {
	guard     *ViewGuard
	repo      profileRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProfileService constructs a ProfileService.
func NewProfileService(guard *ViewGuard, repo profileRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{guard: guard, repo: repo, audit: audit, validator: validate, logger: logger, now: time.Now}
}

// Get returns the profile view.
func (s *ProfileService) Get(ctx context.Context, identity models.Identity) (*dto.ProfileResponse, error) {
	var resp *dto.ProfileResponse
	err := s.guard.Run(ctx, identity, ViewProfile, func(ctx context.Context, student *models.Student) error {
		resp = s.build(ctx, student)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Update applies contact field edits and returns the updated profile.
func (s *ProfileService) Update(ctx context.Context, identity models.Identity, patch models.ProfilePatch, meta models.RequestMeta) (*dto.ProfileResponse, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no profile fields supplied")
	}

	student, err := s.guard.Load(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(ctx, student.ID, fields); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	applyPatch(student, patch)

	recordAudit(ctx, s.audit, models.AuditLog{
		StudentID:  student.ID,
		Action:     models.AuditActionProfileUpdate,
		Resource:   models.CollectionStudents,
		ResourceID: student.ID,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
		CreatedAt:  s.now().UTC(),
	})
	return s.build(ctx, student), nil
}

func (s *ProfileService) build(ctx context.Context, student *models.Student) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		StudentID:        student.ID,
		Name:             student.Name,
		Email:            student.Email,
		RollNumber:       student.RollNumber,
		FatherName:       student.FatherName,
		Gender:           student.Gender,
		Nationality:      student.Nationality,
		BloodGroup:       student.BloodGroup,
		Phone:            student.Phone,
		City:             student.City,
		CurrentAddress:   student.CurrentAddress,
		PermanentAddress: student.PermanentAddress,
		DegreeProgram:    student.DegreeProgram,
		Batch:            student.Batch,
		Semester:         student.Semester.String(),
		ClassName:        s.className(ctx, student.ClassID),
		ProfileURL:       student.ProfileURL,
	}
}

func (s *ProfileService) className(ctx context.Context, classID string) string {
	if classID == "" {
		return NoClassID
	}
	class, err := s.repo.Class(ctx, classID)
	if err != nil {
		if !errors.Is(err, repository.ErrDocumentNotFound) {
			s.logger.Warn("failed to load class", zap.String("class_id", classID), zap.Error(err))
		}
		return UnknownClass
	}
	return nonEmpty(class.Name, UnknownClass)
}

func applyPatch(student *models.Student, patch models.ProfilePatch) {
	if patch.Phone != nil {
		student.Phone = *patch.Phone
	}
	if patch.City != nil {
		student.City = *patch.City
	}
	if patch.CurrentAddress != nil {
		student.CurrentAddress = *patch.CurrentAddress
	}
	if patch.PermanentAddress != nil {
		student.PermanentAddress = *patch.PermanentAddress
	}
	if patch.ProfileURL != nil {
		student.ProfileURL = *patch.ProfileURL
	}
}
