package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseServiceList(t *testing.T) {
	fx := newPortalFixture(t)
	svc := NewCourseService(fx.guard, fx.resolver)

	resp, err := svc.List(context.Background(), stuIdentity)
	require.NoError(t, err)

	require.Len(t, resp.Current, 3)
	assert.Equal(t, []string{"a1", "a2", "a4"}, []string{resp.Current[0].AssignCourseID, resp.Current[1].AssignCourseID, resp.Current[2].AssignCourseID})
	assert.Equal(t, "Dr. Rahman", resp.Current[0].InstructorName)
	assert.Equal(t, UnknownCourse, resp.Current[2].CourseName)

	require.Len(t, resp.Completed, 1)
	assert.Equal(t, "Programming", resp.Completed[0].Name)
	assert.Equal(t, "3", resp.Completed[0].CreditHours)
}
