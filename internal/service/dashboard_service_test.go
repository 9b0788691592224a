package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

func TestDashboardServiceGet(t *testing.T) {
	fx := newPortalFixture(t)
	svc := NewDashboardService(DashboardServiceParams{Guard: fx.guard, Schedules: fx.repo})
	svc.now = func() time.Time { return time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC) }

	resp, err := svc.Get(context.Background(), stuIdentity)
	require.NoError(t, err)

	assert.Equal(t, "Ayesha Khan", resp.StudentName)
	assert.Equal(t, "5", resp.Semester)
	assert.Equal(t, 2, resp.EnrolledCourses)
	assert.Equal(t, "3.9", resp.RecentGPA)
	assert.Equal(t, "3.70", resp.CGPA)
	assert.Equal(t, dto.UpcomingStateScheduled, resp.UpcomingState)
	require.NotNil(t, resp.NextClass)
	require.NotNil(t, resp.SecondNextClass)
	assert.Equal(t, "2024-09-01", resp.NextClass.Date)
	assert.Equal(t, "2024-09-02", resp.SecondNextClass.Date)
	assert.Equal(t, time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC), resp.NextClass.StartsAt)
}

func TestDashboardServiceUsesConfiguredLocation(t *testing.T) {
	fx := newPortalFixture(t)
	karachi := time.FixedZone("PKT", 5*3600)
	svc := NewDashboardService(DashboardServiceParams{Guard: fx.guard, Schedules: fx.repo, Location: karachi})
	svc.now = func() time.Time { return time.Date(2024, 9, 3, 10, 0, 0, 0, time.UTC) }

	resp, err := svc.Get(context.Background(), stuIdentity)
	require.NoError(t, err)
	assert.Equal(t, dto.UpcomingStateNone, resp.UpcomingState)
	assert.Nil(t, resp.NextClass)
	assert.Nil(t, resp.SecondNextClass)
}

func TestDashboardServiceWithoutClassOrResults(t *testing.T) {
	fx := newPortalFixture(t)
	svc := NewDashboardService(DashboardServiceParams{Guard: fx.guard, Schedules: fx.repo})

	resp, err := svc.Get(context.Background(), models.Identity{StudentID: "stu-2", Resolved: true})
	require.NoError(t, err)
	assert.Equal(t, aggregation.NoGPAData, resp.CGPA)
	assert.Equal(t, aggregation.NoRecentGPAData, resp.RecentGPA)
	assert.Equal(t, dto.UpcomingStateNone, resp.UpcomingState)
	assert.Equal(t, 0, resp.EnrolledCourses)
}

func TestDashboardServiceRequiresIdentity(t *testing.T) {
	fx := newPortalFixture(t)
	svc := NewDashboardService(DashboardServiceParams{Guard: fx.guard, Schedules: fx.repo})

	_, err := svc.Get(context.Background(), models.Identity{})
	assert.ErrorIs(t, err, appErrors.ErrNoIdentity)
}
