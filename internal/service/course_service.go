package service

import (
	"context"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

// CourseService lists a student's current and completed courses.
type CourseService struct {
	guard    *ViewGuard
	resolver *CourseResolver
}

// NewCourseService constructs a CourseService.
func NewCourseService(guard *ViewGuard, resolver *CourseResolver) *CourseService {
	return &CourseService{guard: guard, resolver: resolver}
}

// List returns resolved current assignments and completed catalogue courses.
func (s *CourseService) List(ctx context.Context, identity models.Identity) (*dto.CoursesResponse, error) {
	var resp *dto.CoursesResponse
	err := s.guard.Run(ctx, identity, ViewCourses, func(ctx context.Context, student *models.Student) error {
		partition := aggregation.PartitionCourses(student)
		resp = &dto.CoursesResponse{
			Current:   s.resolver.ResolveAssignments(ctx, partition.Current),
			Completed: s.resolver.ResolveCatalogue(ctx, partition.Completed),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
