package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-portal-api/internal/lifecycle"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/service"
)

type portalServer struct {
	router *gin.Engine
	store  *repository.MemoryStore
}

func newPortalServer(t *testing.T) *portalServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := repository.NewMemoryStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	seed := map[string]map[string]interface{}{
		models.CollectionStudents: {"stu-1": map[string]interface{}{
			"name":             "Ayesha Khan",
			"semester":         5,
			"classId":          "k1",
			"enrolledCourses":  []string{"a1"},
			"currentCourses":   []string{"a1"},
			"completedCourses": []string{"c9"},
			"results":          []map[string]interface{}{{"semester": 1, "gpa": 3.5}, {"semester": 2, "gpa": "3.9"}},
		}},
		models.CollectionAccounts: {"ayesha@campus.edu": map[string]interface{}{
			"email": "ayesha@campus.edu", "studentId": "stu-1", "passwordHash": string(hash), "active": true,
		}},
		models.CollectionAssignCourses: {
			"a1": map[string]string{"courseId": "c1", "instructorId": "i1", "classId": "k1"},
			"a2": map[string]string{"courseId": "c2", "instructorId": "i1", "classId": "k1"},
		},
		models.CollectionCourses: {
			"c1": map[string]interface{}{"name": "Calculus", "code": "MT-101", "creditHours": 3},
			"c2": map[string]interface{}{"name": "Physics", "code": "PH-101", "creditHours": 4},
		},
		models.CollectionInstructors: {"i1": map[string]string{"name": "Dr. Rahman"}},
		models.CollectionClasses:     {"k1": map[string]string{"name": "BSCS-5A"}},
	}
	for collection, docs := range seed {
		for id, doc := range docs {
			require.NoError(t, store.Put(ctx, collection, id, doc))
		}
	}

	repo := repository.NewPortalRepository(store, nil)
	metrics := service.NewMetricsService()
	guard := service.NewViewGuard(repo, lifecycle.NewTracker(nil), metrics, nil)
	resolver := service.NewCourseResolver(repo, metrics, nil)
	audit := service.NewAuditService(repo, service.AuditConfig{Enabled: true}, nil)
	auth := service.NewAuthService(repo, audit, nil, nil, service.AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour})

	handlers := Handlers{
		Auth:       NewAuthHandler(auth),
		Dashboard:  NewDashboardHandler(service.NewDashboardService(service.DashboardServiceParams{Guard: guard, Schedules: repo})),
		Courses:    NewCourseHandler(service.NewCourseService(guard, resolver)),
		Enrollment: NewEnrollmentHandler(service.NewEnrollmentService(service.EnrollmentServiceParams{Guard: guard, Repo: repo, Resolver: resolver, Audit: audit})),
		Withdrawal: NewWithdrawalHandler(service.NewWithdrawalService(guard, repo, resolver, audit, nil, nil)),
		Attendance: NewAttendanceHandler(service.NewAttendanceService(guard, repo, resolver)),
		Marks:      NewMarksHandler(service.NewMarksService(guard, repo, resolver)),
		Profile:    NewProfileHandler(service.NewProfileService(guard, repo, audit, nil, nil)),
		Transcript: NewTranscriptHandler(service.NewTranscriptService(guard)),
		Metrics:    NewMetricsHandler(metrics, nil),
	}

	router := gin.New()
	router.Use(middleware.Metrics(metrics))
	RegisterRoutes(router, "/api/v1", handlers, middleware.JWT(auth))
	return &portalServer{router: router, store: store}
}

func (s *portalServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *portalServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "Ayesha@Campus.edu", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func TestPortalRoutesRequireIdentity(t *testing.T) {
	server := newPortalServer(t)

	for _, path := range []string{"/api/v1/me/dashboard", "/api/v1/me/courses", "/api/v1/me/profile", "/api/v1/me/marks/a1"} {
		rec := server.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "No authenticated user found", decode(t, rec).Error.Message, path)
	}
}

func TestPortalLoginRejectsBadPassword(t *testing.T) {
	server := newPortalServer(t)

	rec := server.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ayesha@campus.edu", "password": "wrong-pass"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortalDashboardAndCourses(t *testing.T) {
	server := newPortalServer(t)
	token := server.login(t)

	rec := server.do(t, http.MethodGet, "/api/v1/me/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dashboard := decode(t, rec).Data
	assert.Equal(t, "Ayesha Khan", dashboard["studentName"])
	assert.Equal(t, "3.70", dashboard["cgpa"])
	assert.Equal(t, "no upcoming class", dashboard["upcomingState"])

	rec = server.do(t, http.MethodGet, "/api/v1/me/courses", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var courses struct {
		Data struct {
			Current   []map[string]interface{} `json:"current"`
			Completed []map[string]interface{} `json:"completed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses.Data.Current, 1)
	assert.Equal(t, "Calculus", courses.Data.Current[0]["courseName"])
	require.Len(t, courses.Data.Completed, 1)
	assert.Equal(t, "Unknown Course", courses.Data.Completed[0]["name"])
}

func TestPortalEnrollIsIdempotentAndAudited(t *testing.T) {
	server := newPortalServer(t)
	token := server.login(t)

	for i := 0; i < 2; i++ {
		rec := server.do(t, http.MethodPost, "/api/v1/me/enrollment", token, map[string]string{"assignCourseId": "a2"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []interface{}{"a1", "a2"}, decode(t, rec).Data["courses"])
	}

	rec := server.do(t, http.MethodPost, "/api/v1/me/enrollment", token, map[string]string{"assignCourseId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	logs, err := server.store.List(context.Background(), models.CollectionAuditLogs)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestPortalAttendanceAndMarksNotFound(t *testing.T) {
	server := newPortalServer(t)
	token := server.login(t)

	rec := server.do(t, http.MethodGet, "/api/v1/me/attendance/a1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No attendance records found", decode(t, rec).Error.Message)

	rec = server.do(t, http.MethodGet, "/api/v1/me/marks/a1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No records for Calculus found.", decode(t, rec).Error.Message)
}

func TestPortalProfileUpdateAndTranscript(t *testing.T) {
	server := newPortalServer(t)
	token := server.login(t)

	rec := server.do(t, http.MethodPatch, "/api/v1/me/profile", token, map[string]string{"city": "Karachi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode(t, rec).Data
	assert.Equal(t, "Karachi", profile["city"])
	assert.Equal(t, "BSCS-5A", profile["className"])

	rec = server.do(t, http.MethodGet, "/api/v1/me/transcript", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="transcript-stu-1.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "3.70")
}

func TestPortalHealthAndMetrics(t *testing.T) {
	server := newPortalServer(t)

	rec := server.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = server.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	server.do(t, http.MethodGet, "/api/v1/me/dashboard", "", nil)
	rec = server.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
