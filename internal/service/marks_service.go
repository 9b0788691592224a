package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type marksReader interface {
	Marks(ctx context.Context, assignCourseID string) (*models.MarksSheet, error)
}

// MarksService exposes weighted marks for a student's courses.
type MarksService struct {
	guard    *ViewGuard
	sheets   marksReader
	resolver *CourseResolver
}

// NewMarksService constructs a MarksService.
func NewMarksService(guard *ViewGuard, sheets marksReader, resolver *CourseResolver) *MarksService {
	return &MarksService{guard: guard, sheets: sheets, resolver: resolver}
}

// Courses lists the student's current courses with credit hours and class names.
func (s *MarksService) Courses(ctx context.Context, identity models.Identity) (*dto.MarksCoursesResponse, error) {
	var resp *dto.MarksCoursesResponse
	err := s.guard.Run(ctx, identity, ViewMarks, func(ctx context.Context, student *models.Student) error {
		current := aggregation.PartitionCourses(student).Current
		resp = &dto.MarksCoursesResponse{Courses: s.resolver.ResolveAssignments(ctx, current)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Detail returns the weighted breakdown of the student's marks for one course assignment.
func (s *MarksService) Detail(ctx context.Context, identity models.Identity, assignCourseID string) (*dto.MarksDetailResponse, error) {
	var resp *dto.MarksDetailResponse
	err := s.guard.Run(ctx, identity, ViewMarksDetail, func(ctx context.Context, student *models.Student) error {
		course := s.resolver.ResolveAssignments(ctx, []string{assignCourseID})[0]
		noRecords := appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("No records for %s found.", course.CourseName))

		sheet, err := s.sheets.Marks(ctx, assignCourseID)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return noRecords
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
		}
		entry, ok := sheet.ForStudent(student.ID)
		if !ok {
			return noRecords
		}

		weighted := aggregation.Weighted(sheet.CriteriaDefined, entry.Marks)
		resp = &dto.MarksDetailResponse{
			AssignCourseID: assignCourseID,
			CourseName:     course.CourseName,
			Criteria:       make([]dto.MarksCriterion, 0, len(weighted.Criteria)),
			TotalWeighted:  weighted.Total,
			Grade:          nonEmpty(entry.Grade, models.DefaultGrade),
		}
		for _, item := range weighted.Criteria {
			resp.Criteria = append(resp.Criteria, dto.MarksCriterion{
				Assessment:    item.Assessment,
				Weightage:     item.Weightage,
				TotalMarks:    item.TotalMarks,
				ObtainedMarks: item.Obtained,
				WeightedMarks: item.Weighted,
				Missing:       item.Missing,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
