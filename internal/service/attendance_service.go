package service

import (
	"context"
	"errors"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type attendanceReader interface {
	Attendance(ctx context.Context, assignCourseID string) (*models.AttendanceSheet, error)
}

// AttendanceService exposes per-course attendance for a student.
type AttendanceService struct {
	guard    *ViewGuard
	sheets   attendanceReader
	resolver *CourseResolver
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(guard *ViewGuard, sheets attendanceReader, resolver *CourseResolver) *AttendanceService {
	return &AttendanceService{guard: guard, sheets: sheets, resolver: resolver}
}

// Courses lists the student's current courses.
func (s *AttendanceService) Courses(ctx context.Context, identity models.Identity) (*dto.AttendanceCoursesResponse, error) {
	var resp *dto.AttendanceCoursesResponse
	err := s.guard.Run(ctx, identity, ViewAttendance, func(ctx context.Context, student *models.Student) error {
		current := aggregation.PartitionCourses(student).Current
		resp = &dto.AttendanceCoursesResponse{Courses: s.resolver.ResolveAssignments(ctx, current)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Detail summarises the student's attendance for one course assignment.
func (s *AttendanceService) Detail(ctx context.Context, identity models.Identity, assignCourseID string) (*dto.AttendanceDetailResponse, error) {
	var resp *dto.AttendanceDetailResponse
	err := s.guard.Run(ctx, identity, ViewAttendanceDetail, func(ctx context.Context, student *models.Student) error {
		sheet, err := s.sheets.Attendance(ctx, assignCourseID)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return appErrors.Clone(appErrors.ErrNotFound, "No attendance records found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
		}

		summary := aggregation.Attendance(sheet.Attendances, student.ID)
		course := s.resolver.ResolveAssignments(ctx, []string{assignCourseID})[0]

		resp = &dto.AttendanceDetailResponse{
			AssignCourseID: assignCourseID,
			CourseName:     course.CourseName,
			TotalClasses:   summary.Total,
			Present:        summary.Present,
			Absent:         summary.Absent,
			Percentage:     summary.Percentage,
			PercentageText: aggregation.FormatFixed2(summary.Percentage) + "%",
			Days:           make([]dto.AttendanceDay, 0, len(summary.Days)),
		}
		for _, day := range summary.Days {
			status := dto.AttendanceAbsent
			if day.Present {
				status = dto.AttendancePresent
			}
			resp.Days = append(resp.Days, dto.AttendanceDay{Date: day.Date, Status: status})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
