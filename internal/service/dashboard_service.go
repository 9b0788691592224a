package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

type scheduleReader interface {
	Schedule(ctx context.Context, classID string) (*models.ClassSchedule, error)
}

// DashboardService composes the home view.
type DashboardService struct {
	guard     *ViewGuard
	schedules scheduleReader
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Guard     *ViewGuard
	Schedules scheduleReader
	Location  *time.Location
	Logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		guard:     params.Guard,
		schedules: params.Schedules,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the dashboard for identity.
func (s *DashboardService) Get(ctx context.Context, identity models.Identity) (*dto.DashboardResponse, error) {
	var resp *dto.DashboardResponse
	err := s.guard.Run(ctx, identity, ViewDashboard, func(ctx context.Context, student *models.Student) error {
		resp = &dto.DashboardResponse{
			StudentName:     student.Name,
			RollNumber:      student.RollNumber,
			Semester:        student.Semester.String(),
			EnrolledCourses: len(aggregation.Unique(student.EnrolledCourses)),
			RecentGPA:       aggregation.NoRecentGPAData,
			CGPA:            aggregation.NoGPAData,
			UpcomingState:   dto.UpcomingStateNone,
		}
		if recent, ok := aggregation.RecentGPA(student.Results); ok {
			resp.RecentGPA = recent
		}
		if cgpa, ok := aggregation.CGPA(student.Results); ok {
			resp.CGPA = aggregation.FormatFixed2(cgpa)
		}

		next, secondNext := aggregation.Upcoming(s.scheduleEntries(ctx, student.ClassID), s.now(), s.location)
		resp.NextClass = toUpcomingDTO(next)
		resp.SecondNextClass = toUpcomingDTO(secondNext)
		if resp.NextClass != nil {
			resp.UpcomingState = dto.UpcomingStateScheduled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *DashboardService) scheduleEntries(ctx context.Context, classID string) []models.ScheduleEntry {
	if classID == "" {
		return nil
	}
	schedule, err := s.schedules.Schedule(ctx, classID)
	if err != nil {
		if !errors.Is(err, repository.ErrDocumentNotFound) {
			s.logger.Warn("failed to load class schedule", zap.String("class_id", classID), zap.Error(err))
		}
		return nil
	}
	return schedule.Schedule
}

func toUpcomingDTO(class *aggregation.UpcomingClass) *dto.UpcomingClass {
	if class == nil {
		return nil
	}
	return &dto.UpcomingClass{
		Date:       class.Date,
		Time:       class.Time,
		Day:        class.Day,
		Venue:      class.Venue,
		Course:     class.Course,
		Instructor: class.Instructor,
		StartsAt:   class.StartsAt,
	}
}
