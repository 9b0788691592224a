package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/lifecycle"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type stubStudents struct {
	student *models.Student
	err     error
}

func (s stubStudents) Student(_ context.Context, id string) (*models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	student := *s.student
	student.ID = id
	return &student, nil
}

type countingSuperseded struct {
	mu    sync.Mutex
	views []string
}

func (c *countingSuperseded) RecordSuperseded(view string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = append(c.views, view)
}

func TestViewGuardRejectsUnresolvedIdentity(t *testing.T) {
	guard := NewViewGuard(stubStudents{student: &models.Student{}}, nil, nil, nil)
	called := false
	err := guard.Run(context.Background(), models.Identity{StudentID: "stu-1"}, ViewDashboard, func(context.Context, *models.Student) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNoIdentity.Code, appErr.Code)
	assert.Equal(t, "No authenticated user found", appErr.Message)
}

func TestViewGuardMissingStudent(t *testing.T) {
	fx := newPortalFixture(t)
	err := fx.guard.Run(context.Background(), models.Identity{StudentID: "ghost", Resolved: true}, ViewProfile, func(context.Context, *models.Student) error {
		return nil
	})
	assert.ErrorIs(t, err, appErrors.ErrStudentNotFound)
}

func TestViewGuardStoreFailureIsInternal(t *testing.T) {
	guard := NewViewGuard(stubStudents{err: errors.New("connection refused")}, nil, nil, nil)
	err := guard.Run(context.Background(), stuIdentity, ViewProfile, func(context.Context, *models.Student) error { return nil })
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestViewGuardDiscardsSupersededLoad(t *testing.T) {
	metrics := &countingSuperseded{}
	guard := NewViewGuard(stubStudents{student: &models.Student{Name: "Ayesha"}}, lifecycle.NewTracker(nil), metrics, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	staleErr := make(chan error, 1)
	go func() {
		staleErr <- guard.Run(context.Background(), stuIdentity, ViewMarks, func(ctx context.Context, _ *models.Student) error {
			close(entered)
			<-release
			return ctx.Err()
		})
	}()
	<-entered

	fresh := guard.Run(context.Background(), stuIdentity, ViewMarks, func(context.Context, *models.Student) error { return nil })
	require.NoError(t, fresh)
	close(release)

	err := <-staleErr
	assert.ErrorIs(t, err, appErrors.ErrSuperseded)
	assert.Equal(t, []string{ViewMarks}, metrics.views)
}

func TestViewGuardLoadSkipsLifecycle(t *testing.T) {
	fx := newPortalFixture(t)
	student, err := fx.guard.Load(context.Background(), stuIdentity)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", student.ID)

	_, err = fx.guard.Load(context.Background(), models.Identity{})
	assert.ErrorIs(t, err, appErrors.ErrNoIdentity)
}
