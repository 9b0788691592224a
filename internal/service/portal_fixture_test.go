package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/lifecycle"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

var stuIdentity = models.Identity{StudentID: "stu-1", Resolved: true}

type portalFixture struct {
	store    *repository.MemoryStore
	repo     *repository.PortalRepository
	guard    *ViewGuard
	resolver *CourseResolver
	audit    *recordingAudit
}

type recordingAudit struct {
	logs []models.AuditLog
}

func (a *recordingAudit) Record(_ context.Context, log models.AuditLog) {
	a.logs = append(a.logs, log)
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	put := func(collection, id string, doc interface{}) {
		require.NoError(t, store.Put(ctx, collection, id, doc))
	}

	put(models.CollectionStudents, "stu-1", map[string]interface{}{
		"name":             "Ayesha Khan",
		"email":            "ayesha@campus.edu",
		"rollNumber":       "BSCS-21-001",
		"semester":         5,
		"classId":          "k1",
		"city":             "Lahore",
		"enrolledCourses":  []string{"a1", "a2"},
		"currentCourses":   []string{"a1", "a2", "a4"},
		"completedCourses": []string{"c9"},
		"withdrawCourses":  []string{},
		"results": []map[string]interface{}{
			{"semester": 1, "gpa": "3.5"},
			{"semester": 2, "gpa": "not-a-number"},
			{"semester": 3, "gpa": "3.9"},
		},
	})
	put(models.CollectionStudents, "stu-2", map[string]interface{}{"name": "No Class Student"})

	put(models.CollectionAssignCourses, "a1", map[string]string{"courseId": "c1", "instructorId": "i1", "classId": "k1"})
	put(models.CollectionAssignCourses, "a2", map[string]string{"courseId": "c2", "instructorId": "i2", "classId": "k1"})
	put(models.CollectionAssignCourses, "a3", map[string]string{"courseId": "c9", "instructorId": "i1", "classId": "k1"})
	put(models.CollectionAssignCourses, "a5", map[string]string{"courseId": "c3", "instructorId": "i-gone", "classId": "k1"})

	put(models.CollectionCourses, "c1", map[string]interface{}{"name": "Calculus", "code": "MT-101", "creditHours": 3, "expectedSemester": 1})
	put(models.CollectionCourses, "c2", map[string]interface{}{"name": "Physics", "code": "PH-101", "creditHours": "4"})
	put(models.CollectionCourses, "c3", map[string]interface{}{"name": "Data Structures", "code": "CS-201", "creditHours": 3})
	put(models.CollectionCourses, "c9", map[string]interface{}{"name": "Programming", "code": "CS-101", "creditHours": 3, "expectedSemester": 1})

	put(models.CollectionInstructors, "i1", map[string]string{"name": "Dr. Rahman"})
	put(models.CollectionInstructors, "i2", map[string]string{"name": "Ms. Fatima"})
	put(models.CollectionClasses, "k1", map[string]string{"name": "BSCS-5A"})

	put(models.CollectionSchedules, "k1", map[string]interface{}{"schedule": []map[string]string{
		{"date": "2024-08-30", "time": "09:00am", "course": "Calculus", "venue": "R1", "day": "Friday"},
		{"date": "2024-09-02", "time": "10:00am", "course": "Physics", "venue": "R2", "day": "Monday"},
		{"date": "2024-09-01", "time": "09:00am", "course": "Calculus", "venue": "R1", "day": "Sunday"},
		{"date": "2024-09-03", "time": "14:30", "course": "Physics", "venue": "Lab", "day": "Tuesday"},
	}})

	days := make([]map[string]interface{}, 0, 10)
	for i := 1; i <= 10; i++ {
		days = append(days, map[string]interface{}{
			"date":    time.Date(2024, 9, i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			"records": map[string]bool{"stu-1": i <= 7, "stu-9": true},
		})
	}
	put(models.CollectionAttendances, "a1", map[string]interface{}{"attendances": days})

	put(models.CollectionMarks, "a1", map[string]interface{}{
		"criteriaDefined": []map[string]interface{}{
			{"assessment": "Quiz", "weightage": 20, "totalMarks": 10},
			{"assessment": "Final", "weightage": "80", "totalMarks": 100},
		},
		"marksOfStudents": []map[string]interface{}{
			{"studentId": "stu-9", "marks": map[string]interface{}{"Quiz": 10, "Final": 90}, "grade": "A"},
			{"studentId": "stu-1", "marks": map[string]interface{}{"Quiz": 8, "Final": 75}, "grade": "B+"},
		},
	})
	put(models.CollectionMarks, "a2", map[string]interface{}{
		"criteriaDefined": []map[string]interface{}{{"assessment": "Quiz", "weightage": 100, "totalMarks": 10}},
		"marksOfStudents": []map[string]interface{}{},
	})

	repo := repository.NewPortalRepository(store, nil)
	return &portalFixture{
		store:    store,
		repo:     repo,
		guard:    NewViewGuard(repo, lifecycle.NewTracker(nil), nil, nil),
		resolver: NewCourseResolver(repo, nil, nil),
		audit:    &recordingAudit{},
	}
}
